package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenwarren/trivia-api/internal/question"
)

// passthrough lets slice arguments reach the mock the way pgx's stdlib
// driver accepts them.
type passthrough struct{}

func (passthrough) ConvertValue(v any) (driver.Value, error) { return v, nil }

// idSet matches an id slice argument.
type idSet []int64

func (s idSet) Match(v driver.Value) bool {
	got, ok := v.([]int64)
	return ok && reflect.DeepEqual([]int64(s), got)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
		sqlmock.ValueConverterOption(passthrough{}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var questionColumns = []string{"id", "question", "answer", "category", "difficulty"}

func TestBuildFind(t *testing.T) {
	cases := []struct {
		name   string
		filter question.Filter
		query  string
		args   []any
	}{
		{
			name:   "all",
			filter: question.All(),
			query:  "SELECT id, question, answer, category, difficulty FROM questions ORDER BY id",
		},
		{
			name:   "category",
			filter: question.ByCategory(4),
			query:  "SELECT id, question, answer, category, difficulty FROM questions WHERE category = $1 ORDER BY id",
			args:   []any{int64(4)},
		},
		{
			name:   "substring",
			filter: question.BySubstring("Title"),
			query:  "SELECT id, question, answer, category, difficulty FROM questions WHERE strpos(lower(question), lower($1)) > 0 ORDER BY id",
			args:   []any{"Title"},
		},
		{
			name:   "category excluding",
			filter: question.ByCategory(2).Excluding([]int64{5, 9}),
			query:  "SELECT id, question, answer, category, difficulty FROM questions WHERE category = $1 AND NOT (id = ANY($2)) ORDER BY id",
			args:   []any{int64(2), []int64{5, 9}},
		},
		{
			name:   "empty exclusion set adds no clause",
			filter: question.Excluding(nil),
			query:  "SELECT id, question, answer, category, difficulty FROM questions ORDER BY id",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, args := buildFind(tc.filter)
			assert.Equal(t, tc.query, query)
			assert.Equal(t, tc.args, args)
		})
	}
}

func TestQuestionRepository_Find(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuestionRepository(db)

	query, _ := buildFind(question.ByCategory(1).Excluding([]int64{2}))
	mock.ExpectQuery(query).
		WithArgs(int64(1), idSet{2}).
		WillReturnRows(sqlmock.NewRows(questionColumns).
			AddRow(1, "Seed Q", "A", 1, 1).
			AddRow(3, "Other Q", "B", 1, 4))

	got, err := repo.Find(context.Background(), question.ByCategory(1).Excluding([]int64{2}))
	require.NoError(t, err)
	assert.Equal(t, []question.Question{
		{ID: 1, Question: "Seed Q", Answer: "A", Category: 1, Difficulty: 1},
		{ID: 3, Question: "Other Q", Answer: "B", Category: 1, Difficulty: 4},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_FindEmptyIsNotNil(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuestionRepository(db)

	query, _ := buildFind(question.All())
	mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(questionColumns))

	got, err := repo.Find(context.Background(), question.All())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuestionRepository_FindError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuestionRepository(db)

	query, _ := buildFind(question.All())
	mock.ExpectQuery(query).WillReturnError(errors.New("connection reset"))

	_, err := repo.Find(context.Background(), question.All())
	assert.Error(t, err)
}

func TestQuestionRepository_Get(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuestionRepository(db)

	mock.ExpectQuery(getQuestion).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(questionColumns).AddRow(7, "Q", "A", 2, 3))
	mock.ExpectQuery(getQuestion).WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(questionColumns))

	got, err := repo.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, question.Question{ID: 7, Question: "Q", Answer: "A", Category: 2, Difficulty: 3}, got)

	_, err = repo.Get(context.Background(), 8)
	assert.ErrorIs(t, err, question.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuestionRepository(db)

	mock.ExpectQuery(insertQuestion).
		WithArgs("What is the capital of France?", "Paris", int64(1), 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(24))

	id, err := repo.Create(context.Background(), question.Draft{
		Question:   "What is the capital of France?",
		Answer:     "Paris",
		Category:   1,
		Difficulty: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(24), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewQuestionRepository(db)

	mock.ExpectExec(deleteQuestion).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQuestion).WithArgs(int64(99999)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteQuestion).WithArgs(int64(6)).WillReturnError(errors.New("lock timeout"))

	assert.NoError(t, repo.Delete(context.Background(), 5))
	assert.ErrorIs(t, repo.Delete(context.Background(), 99999), question.ErrNotFound)

	err := repo.Delete(context.Background(), 6)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, question.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
