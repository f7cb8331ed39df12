package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Cache stores the ordered category list (implemented by Redis-backed RedisCache).
type Cache interface {
	Get(ctx context.Context) ([]Category, error)
	Set(ctx context.Context, categories []Category) error
}

// Store lists categories ordered by id, consulting the cache first when one
// is configured.
type Store struct {
	repo   Repository
	cache  Cache
	logger zerolog.Logger
}

// NewStore wires a category store. cache may be nil.
func NewStore(repo Repository, cache Cache, logger zerolog.Logger) *Store {
	return &Store{
		repo:   repo,
		cache:  cache,
		logger: logger.With().Str("component", "category_store").Logger(),
	}
}

// List returns every category ordered by id ascending. An empty collection
// is reported as ErrNoCategories.
func (s *Store) List(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if len(cached) > 0 {
			return cached, nil
		}
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, categories); err != nil {
			s.logger.Warn().Err(err).Msg("category cache write failed")
		}
	}
	return categories, nil
}

// Mapping lists categories and renders them as an id -> type mapping. An
// empty collection yields an empty mapping rather than an error.
func (s *Store) Mapping(ctx context.Context) (Mapping, error) {
	categories, err := s.List(ctx)
	if errors.Is(err, ErrNoCategories) {
		return Mapping{}, nil
	}
	if err != nil {
		return nil, err
	}
	return NewMapping(categories), nil
}
