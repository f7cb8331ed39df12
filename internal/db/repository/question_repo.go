package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/brenwarren/trivia-api/internal/question"
)

// QuestionRepository stores questions in Postgres.
type QuestionRepository struct {
	db *sql.DB
}

var _ question.Repository = (*QuestionRepository)(nil)

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const (
	selectQuestions = `SELECT id, question, answer, category, difficulty FROM questions`
	getQuestion     = selectQuestions + ` WHERE id = $1`
	insertQuestion  = `INSERT INTO questions (question, answer, category, difficulty) VALUES ($1, $2, $3, $4) RETURNING id`
	deleteQuestion  = `DELETE FROM questions WHERE id = $1`
)

// buildFind renders the SELECT for filter. Clauses are ANDed, so category and
// exclusion filters intersect.
func buildFind(filter question.Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Term != "" {
		args = append(args, filter.Term)
		where = append(where, fmt.Sprintf("strpos(lower(question), lower($%d)) > 0", len(args)))
	}
	if len(filter.ExcludeIDs) > 0 {
		args = append(args, filter.ExcludeIDs)
		where = append(where, fmt.Sprintf("NOT (id = ANY($%d))", len(args)))
	}

	var b strings.Builder
	b.WriteString(selectQuestions)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY id")
	return b.String(), args
}

// Find returns the questions matching filter ordered by id.
func (r *QuestionRepository) Find(ctx context.Context, filter question.Filter) ([]question.Question, error) {
	query, args := buildFind(filter)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	out := make([]question.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Get loads one question by id.
func (r *QuestionRepository) Get(ctx context.Context, id int64) (question.Question, error) {
	q, err := scanQuestion(r.db.QueryRowContext(ctx, getQuestion, id))
	if errors.Is(err, sql.ErrNoRows) {
		return question.Question{}, question.ErrNotFound
	}
	return q, err
}

// Create inserts draft and returns the id Postgres assigned.
func (r *QuestionRepository) Create(ctx context.Context, draft question.Draft) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, insertQuestion, draft.Question, draft.Answer, draft.Category, draft.Difficulty).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return id, nil
}

// Delete removes the question with id, reporting ErrNotFound when nothing matched.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteQuestion, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question rows affected: %w", err)
	}
	if n == 0 {
		return question.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (question.Question, error) {
	var q question.Question
	if err := row.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return q, err
		}
		return q, fmt.Errorf("scan question: %w", err)
	}
	return q, nil
}
