package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Service implements the read and write operations over the question bank.
type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logger:   logger.With().Str("component", "question_service").Logger(),
	}
}

// Page is one page of the full question listing.
type Page struct {
	Questions []Question
	Total     int
}

// List returns the requested page of all questions ordered by id, along with
// the size of the whole collection.
func (s *Service) List(ctx context.Context, page int) (Page, error) {
	all, err := s.repo.Find(ctx, All())
	if err != nil {
		return Page{}, fmt.Errorf("list questions: %w", err)
	}
	return Page{Questions: Paginate(all, page), Total: len(all)}, nil
}

// Search returns every question whose text contains term, ignoring case. An
// empty term matches the whole collection.
func (s *Service) Search(ctx context.Context, term string) ([]Question, error) {
	found, err := s.repo.Find(ctx, BySubstring(term))
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return found, nil
}

// ByCategory returns the questions referencing categoryID.
func (s *Service) ByCategory(ctx context.Context, categoryID int64) ([]Question, error) {
	found, err := s.repo.Find(ctx, ByCategory(categoryID))
	if err != nil {
		return nil, fmt.Errorf("questions by category %d: %w", categoryID, err)
	}
	return found, nil
}

// Get loads a single question.
func (s *Service) Get(ctx context.Context, id int64) (Question, error) {
	return s.repo.Get(ctx, id)
}

// Create validates draft and stores it, returning the assigned id. A
// rejected draft yields *ValidationError, a storage failure *PersistenceError.
func (s *Service) Create(ctx context.Context, draft Draft) (int64, error) {
	if err := s.validate.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return 0, &ValidationError{Field: strings.ToLower(verrs[0].Field())}
		}
		return 0, &ValidationError{Field: "question"}
	}

	id, err := s.repo.Create(ctx, draft)
	if err != nil {
		s.logger.Error().Err(err).Msg("question insert failed")
		return 0, &PersistenceError{Op: "create", Err: err}
	}
	return id, nil
}

// Delete removes the question with id. ErrNotFound is returned untouched so
// callers can tell a missing row from a storage failure.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return err
	default:
		s.logger.Error().Err(err).Int64("question_id", id).Msg("question delete failed")
		return &PersistenceError{Op: "delete", Err: err}
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
