package question

import "context"

// PageSize is the fixed number of questions returned per page.
const PageSize = 10

// Question is a single trivia item.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Draft carries the fields of a question that has not been stored yet.
type Draft struct {
	Question   string `validate:"required"`
	Answer     string `validate:"required"`
	Category   int64  `validate:"required"`
	Difficulty int    `validate:"required"`
}

// Filter narrows a question query. Set fields combine by intersection and
// the zero Filter matches every question.
type Filter struct {
	// CategoryID restricts results to one category when non-nil.
	CategoryID *int64
	// Term keeps questions whose text contains it, ignoring case.
	Term string
	// ExcludeIDs drops questions the caller has already seen.
	ExcludeIDs []int64
}

// All matches the whole collection.
func All() Filter { return Filter{} }

// ByCategory matches questions referencing categoryID.
func ByCategory(categoryID int64) Filter {
	return Filter{CategoryID: &categoryID}
}

// BySubstring matches questions containing term.
func BySubstring(term string) Filter {
	return Filter{Term: term}
}

// Excluding matches questions whose id is not in ids.
func Excluding(ids []int64) Filter {
	return Filter{ExcludeIDs: ids}
}

// Excluding returns a copy of f that additionally drops ids.
func (f Filter) Excluding(ids []int64) Filter {
	f.ExcludeIDs = append(append([]int64(nil), f.ExcludeIDs...), ids...)
	return f
}

// Matches reports whether q satisfies every clause of f.
func (f Filter) Matches(q Question) bool {
	if f.CategoryID != nil && q.Category != *f.CategoryID {
		return false
	}
	if f.Term != "" && !containsFold(q.Question, f.Term) {
		return false
	}
	for _, id := range f.ExcludeIDs {
		if q.ID == id {
			return false
		}
	}
	return true
}

// Repository is the persistence collaborator for questions. Find results are
// ordered by id ascending.
type Repository interface {
	Find(ctx context.Context, filter Filter) ([]Question, error)
	Get(ctx context.Context, id int64) (Question, error)
	Create(ctx context.Context, draft Draft) (int64, error)
	Delete(ctx context.Context, id int64) error
}
