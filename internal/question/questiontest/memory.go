// Package questiontest provides an in-memory question.Repository for tests.
package questiontest

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/brenwarren/trivia-api/internal/question"
)

// Memory is a goroutine-safe in-memory question.Repository.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]question.Question

	// FailWrites makes Create and Delete return the error when set.
	FailWrites error
	// FailReads makes Find and Get return the error when set.
	FailReads error
}

var _ question.Repository = (*Memory)(nil)

// NewMemory returns a repository seeded with qs. Seeded ids are kept; new
// ids continue after the largest one.
func NewMemory(qs ...question.Question) *Memory {
	m := &Memory{rows: make(map[int64]question.Question, len(qs))}
	for _, q := range qs {
		m.rows[q.ID] = q
		if q.ID > m.nextID {
			m.nextID = q.ID
		}
	}
	return m
}

func (m *Memory) Find(_ context.Context, filter question.Filter) ([]question.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return nil, m.FailReads
	}
	out := make([]question.Question, 0, len(m.rows))
	for _, q := range m.rows {
		if filter.Matches(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Get(_ context.Context, id int64) (question.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads != nil {
		return question.Question{}, m.FailReads
	}
	q, ok := m.rows[id]
	if !ok {
		return question.Question{}, question.ErrNotFound
	}
	return q, nil
}

func (m *Memory) Create(_ context.Context, d question.Draft) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return 0, m.FailWrites
	}
	m.nextID++
	m.rows[m.nextID] = question.Question{
		ID:         m.nextID,
		Question:   d.Question,
		Answer:     d.Answer,
		Category:   d.Category,
		Difficulty: d.Difficulty,
	}
	return m.nextID, nil
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	if _, ok := m.rows[id]; !ok {
		return question.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// Seq builds n questions with ids 1..n spread over categories 1..3.
func Seq(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		id := int64(i + 1)
		qs[i] = question.Question{
			ID:         id,
			Question:   "Question " + strconv.FormatInt(id, 10),
			Answer:     "Answer " + strconv.FormatInt(id, 10),
			Category:   id%3 + 1,
			Difficulty: int(id%5) + 1,
		}
	}
	return qs
}
