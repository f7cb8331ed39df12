package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/brenwarren/trivia-api/internal/question"
)

// AllCategories is the category id meaning "draw from every category".
const AllCategories int64 = 0

// Outcome labels a draw for metrics.
type Outcome string

const (
	OutcomeQuestion  Outcome = "question"
	OutcomeExhausted Outcome = "exhausted"
)

// Recorder observes draw outcomes (implemented by metrics.Registry).
type Recorder interface {
	ObserveDraw(outcome Outcome)
}

type questionFinder interface {
	Find(ctx context.Context, filter question.Filter) ([]question.Question, error)
}

// Selector picks the next quiz question. It keeps no state between calls
// apart from its random source.
type Selector struct {
	repo     questionFinder
	recorder Recorder
	logger   zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Options tweaks a Selector. A nil Rand is replaced by a time-seeded PCG.
type Options struct {
	Rand     *rand.Rand
	Recorder Recorder
}

func NewSelector(repo questionFinder, opts Options, logger zerolog.Logger) *Selector {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Selector{
		repo:     repo,
		recorder: opts.Recorder,
		logger:   logger.With().Str("component", "quiz_selector").Logger(),
		rng:      rng,
	}
}

// Next draws one question uniformly at random from the questions in
// categoryID (or every category for AllCategories) whose id is not in
// excluded. A nil question with a nil error means the pool is exhausted.
func (s *Selector) Next(ctx context.Context, categoryID int64, excluded []int64) (*question.Question, error) {
	filter := question.Excluding(excluded)
	if categoryID != AllCategories {
		filter = question.ByCategory(categoryID).Excluding(excluded)
	}

	pool, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load quiz candidates: %w", err)
	}

	if len(pool) == 0 {
		s.logger.Debug().
			Int64("category_id", categoryID).
			Int("excluded", len(excluded)).
			Msg("quiz pool exhausted")
		s.observe(OutcomeExhausted)
		return nil, nil
	}

	s.mu.Lock()
	idx := s.rng.IntN(len(pool))
	s.mu.Unlock()

	picked := pool[idx]
	s.observe(OutcomeQuestion)
	return &picked, nil
}

func (s *Selector) observe(outcome Outcome) {
	if s.recorder != nil {
		s.recorder.ObserveDraw(outcome)
	}
}
