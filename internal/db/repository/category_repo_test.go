package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenwarren/trivia-api/internal/category"
)

func TestCategoryRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(listCategories).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type"}).
			AddRow(1, "Science").
			AddRow(2, "Art"))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []category.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_ListEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(listCategories).WillReturnRows(sqlmock.NewRows([]string{"id", "type"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
