// Package importer copies questions from external providers into the bank.
package importer

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/brenwarren/trivia-api/internal/category"
	"github.com/brenwarren/trivia-api/internal/question"
	"github.com/brenwarren/trivia-api/internal/question/external"
)

type questionCreator interface {
	Create(ctx context.Context, draft question.Draft) (int64, error)
}

type categoryLister interface {
	List(ctx context.Context) ([]category.Category, error)
}

// Report summarises one import run.
type Report struct {
	Imported int
	Skipped  int
	Failed   int
}

type Importer struct {
	questions  questionCreator
	categories categoryLister
	logger     zerolog.Logger
}

func New(questions questionCreator, categories categoryLister, logger zerolog.Logger) *Importer {
	return &Importer{
		questions:  questions,
		categories: categories,
		logger:     logger.With().Str("component", "importer").Logger(),
	}
}

// Run fetches amount items from src and stores those that map onto a known
// category. A failed create is counted and the run continues.
func (im *Importer) Run(ctx context.Context, src external.Source, amount int) (Report, error) {
	categories, err := im.categories.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load categories: %w", err)
	}

	items, err := src.Items(ctx, amount)
	if err != nil {
		return Report{}, fmt.Errorf("fetch from %s: %w", src.Name(), err)
	}

	logger := im.logger.With().Str("source", src.Name()).Logger()
	var report Report
	for _, item := range items {
		categoryID, ok := matchCategory(categories, item.Category)
		if !ok {
			logger.Debug().Str("category", item.Category).Msg("no matching category, skipping")
			report.Skipped++
			continue
		}

		id, err := im.questions.Create(ctx, question.Draft{
			Question:   strings.TrimSpace(item.Question),
			Answer:     strings.TrimSpace(item.Answer),
			Category:   categoryID,
			Difficulty: Difficulty(item.Difficulty),
		})
		if err != nil {
			logger.Warn().Err(err).Str("question", item.Question).Msg("import failed")
			report.Failed++
			continue
		}
		logger.Debug().Int64("question_id", id).Msg("question imported")
		report.Imported++
	}

	logger.Info().
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("import finished")
	return report, nil
}

// Difficulty maps provider difficulty names to the 1..3 scale. Unknown names
// map to 0 and fail validation.
func Difficulty(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return 1
	case "medium":
		return 2
	case "hard":
		return 3
	default:
		return 0
	}
}

// matchCategory compares leading words; either may be a prefix of the other
// so "sport_and_leisure" finds Sports and "arts_and_literature" finds Art.
func matchCategory(categories []category.Category, name string) (int64, bool) {
	word := leadingWord(name)
	if len(word) < 3 {
		return 0, false
	}
	for _, c := range categories {
		typ := leadingWord(c.Type)
		if typ == "" {
			continue
		}
		if strings.HasPrefix(word, typ) || strings.HasPrefix(typ, word) {
			return c.ID, true
		}
	}
	return 0, false
}

func leadingWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }); i >= 0 {
		s = s[:i]
	}
	return s
}
