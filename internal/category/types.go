package category

import (
	"context"
	"errors"
	"strconv"
)

// ErrNoCategories is returned when the category collection is empty.
var ErrNoCategories = errors.New("no categories")

// Category groups questions under a label.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// Repository reads categories from persistent storage.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
}

// Mapping renders categories as {"<id>": "<type>"}.
type Mapping map[string]string

// NewMapping builds the id -> type mapping for a list of categories.
func NewMapping(categories []Category) Mapping {
	m := make(Mapping, len(categories))
	for _, c := range categories {
		m[strconv.FormatInt(c.ID, 10)] = c.Type
	}
	return m
}
