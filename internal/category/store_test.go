package category

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) List(ctx context.Context) ([]Category, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]Category), args.Error(1)
	}
	return nil, args.Error(1)
}

type memoryCache struct {
	stored []Category
	sets   int
	getErr error
}

func (c *memoryCache) Get(context.Context) ([]Category, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.stored, nil
}

func (c *memoryCache) Set(_ context.Context, categories []Category) error {
	c.stored = categories
	c.sets++
	return nil
}

var seed = []Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
}

func TestStoreListFillsCache(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return(seed, nil).Once()
	cache := &memoryCache{}
	store := NewStore(repo, cache, zerolog.New(io.Discard))

	got, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	got, err = store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	assert.Equal(t, 1, cache.sets)
	repo.AssertExpectations(t)
}

func TestStoreListEmpty(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return([]Category{}, nil)
	cache := &memoryCache{}
	store := NewStore(repo, cache, zerolog.New(io.Discard))

	_, err := store.List(context.Background())
	assert.ErrorIs(t, err, ErrNoCategories)
	assert.Zero(t, cache.sets, "empty results must not be cached")
}

func TestStoreListCacheFailureFallsBackToRepo(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return(seed, nil)
	cache := &memoryCache{getErr: errors.New("redis down")}
	store := NewStore(repo, cache, zerolog.New(io.Discard))

	got, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestStoreListRepoError(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))
	store := NewStore(repo, nil, zerolog.New(io.Discard))

	_, err := store.List(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCategories)
}

func TestStoreWithoutCacheSeesEmptiedCollection(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return(seed, nil).Once()
	repo.On("List", mock.Anything).Return([]Category{}, nil).Once()
	store := NewStore(repo, nil, zerolog.New(io.Discard))

	got, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed, got)

	got, err = store.List(context.Background())
	assert.ErrorIs(t, err, ErrNoCategories)
	assert.Nil(t, got)
	repo.AssertExpectations(t)
}

func TestStoreMappingEmptyIsNotAnError(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything).Return([]Category{}, nil)
	store := NewStore(repo, nil, zerolog.New(io.Discard))

	m, err := store.Mapping(context.Background())
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestNewMapping(t *testing.T) {
	m := NewMapping(seed)
	assert.Equal(t, Mapping{"1": "Science", "2": "Art", "3": "Geography"}, m)
}
