package importer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/brenwarren/trivia-api/internal/category"
	"github.com/brenwarren/trivia-api/internal/question"
	"github.com/brenwarren/trivia-api/internal/question/external"
	"github.com/brenwarren/trivia-api/internal/question/questiontest"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Items(ctx context.Context, amount int) ([]external.Item, error) {
	args := m.Called(ctx, amount)
	items, _ := args.Get(0).([]external.Item)
	return items, args.Error(1)
}

type staticCategories []category.Category

func (s staticCategories) List(context.Context) ([]category.Category, error) {
	if len(s) == 0 {
		return nil, category.ErrNoCategories
	}
	return s, nil
}

var classic = staticCategories{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

func newImporter(repo question.Repository, cats staticCategories) *Importer {
	logger := zerolog.New(io.Discard)
	return New(question.NewService(repo, logger), cats, logger)
}

func TestRunImportsMatchingItems(t *testing.T) {
	repo := questiontest.NewMemory()
	src := &mockSource{}
	src.On("Items", mock.Anything, 4).Return([]external.Item{
		{Category: "Science & Nature", Question: " What is H? ", Answer: "Hydrogen", Difficulty: "easy"},
		{Category: "sport_and_leisure", Question: "Who won?", Answer: "Them", Difficulty: "hard"},
		{Category: "General Knowledge", Question: "Skip me", Answer: "Yes", Difficulty: "medium"},
		{Category: "Geography", Question: "Capital?", Answer: "Lima", Difficulty: "impossible"},
	}, nil)

	report, err := newImporter(repo, classic).Run(context.Background(), src, 4)
	require.NoError(t, err)
	assert.Equal(t, Report{Imported: 2, Skipped: 1, Failed: 1}, report)

	stored, err := repo.Find(context.Background(), question.All())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, question.Question{ID: 1, Question: "What is H?", Answer: "Hydrogen", Category: 1, Difficulty: 1}, stored[0])
	assert.Equal(t, int64(6), stored[1].Category)
	assert.Equal(t, 3, stored[1].Difficulty)
	src.AssertExpectations(t)
}

func TestRunFetchFailure(t *testing.T) {
	src := &mockSource{}
	src.On("Items", mock.Anything, 10).Return(nil, errors.New("timeout"))

	_, err := newImporter(questiontest.NewMemory(), classic).Run(context.Background(), src, 10)
	assert.ErrorContains(t, err, "fetch from mock")
}

func TestRunWithoutCategories(t *testing.T) {
	src := &mockSource{}

	_, err := newImporter(questiontest.NewMemory(), nil).Run(context.Background(), src, 10)
	assert.ErrorIs(t, err, category.ErrNoCategories)
	src.AssertNotCalled(t, "Items", mock.Anything, mock.Anything)
}

func TestMatchCategory(t *testing.T) {
	cases := map[string]int64{
		"Entertainment: Film": 5,
		"arts_and_literature": 2,
		"history":             4,
		"Science: Computers":  1,
	}
	for name, want := range cases {
		got, ok := matchCategory(classic, name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"", "music", "a", "Celebrities"} {
		_, ok := matchCategory(classic, name)
		assert.False(t, ok, name)
	}
}

func TestDifficulty(t *testing.T) {
	assert.Equal(t, 1, Difficulty("easy"))
	assert.Equal(t, 2, Difficulty(" Medium "))
	assert.Equal(t, 3, Difficulty("HARD"))
	assert.Equal(t, 0, Difficulty("impossible"))
}
