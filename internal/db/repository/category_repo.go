package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/brenwarren/trivia-api/internal/category"
)

// CategoryRepository reads categories from Postgres.
type CategoryRepository struct {
	db *sql.DB
}

var _ category.Repository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const listCategories = `SELECT id, type FROM categories ORDER BY id`

// List returns every category ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
