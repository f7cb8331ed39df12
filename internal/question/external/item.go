// Package external fetches questions from public trivia providers.
package external

import "context"

// Item is a provider question reduced to the fields the question bank keeps.
type Item struct {
	Category   string
	Question   string
	Answer     string
	Difficulty string
}

// Source is a provider that can be imported from.
type Source interface {
	Name() string
	Items(ctx context.Context, amount int) ([]Item, error)
}

var (
	_ Source = (*OpenTDBClient)(nil)
	_ Source = (*TriviaAPIClient)(nil)
)
