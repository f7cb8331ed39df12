package api

import (
	"errors"

	"github.com/brenwarren/trivia-api/internal/category"
	"github.com/brenwarren/trivia-api/internal/question"
)

// Policy decides what an empty primary result means.
type Policy int

const (
	// Strict turns an empty result into ErrEmptyResult.
	Strict Policy = iota
	// Permissive returns an empty result as a normal success.
	Permissive
)

// ErrEmptyResult is returned by the assemblers under the Strict policy.
var ErrEmptyResult = errors.New("empty result")

// CategoryList is the payload of GET /categories.
type CategoryList struct {
	Success    bool             `json:"success"`
	Categories category.Mapping `json:"categories"`
}

// QuestionList is the payload of the search and by-category listings.
type QuestionList struct {
	Success         bool                `json:"success"`
	Questions       []question.Question `json:"questions"`
	TotalQuestions  int                 `json:"total_questions"`
	CurrentCategory *int64              `json:"current_category"`
}

// QuestionPage is the payload of GET /questions.
type QuestionPage struct {
	QuestionList
	Categories category.Mapping `json:"categories"`
}

// QuizResult is the payload of POST /quizzes. Question is null once the pool
// is exhausted.
type QuizResult struct {
	Success  bool               `json:"success"`
	Question *question.Question `json:"question"`
}

// QuestionResult is the payload of GET /questions/{id}.
type QuestionResult struct {
	Success  bool              `json:"success"`
	Question question.Question `json:"question"`
}

// CreatedResult is the payload of POST /questions.
type CreatedResult struct {
	Success bool  `json:"success"`
	Created int64 `json:"created"`
}

// DeletedResult is the payload of DELETE /questions/{id}.
type DeletedResult struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// AssembleCategories shapes the category mapping.
func AssembleCategories(policy Policy, categories []category.Category) (CategoryList, error) {
	if len(categories) == 0 && policy == Strict {
		return CategoryList{}, ErrEmptyResult
	}
	return CategoryList{Success: true, Categories: category.NewMapping(categories)}, nil
}

// AssembleQuestions shapes a question listing. total is the size of the
// collection the questions were taken from and current the category the
// listing is scoped to, if any.
func AssembleQuestions(policy Policy, questions []question.Question, total int, current *int64) (QuestionList, error) {
	if len(questions) == 0 && policy == Strict {
		return QuestionList{}, ErrEmptyResult
	}
	return AssembleListing(questions, total, current), nil
}

// AssembleListing shapes a listing under the Permissive policy, which never
// fails. An empty result renders as [].
func AssembleListing(questions []question.Question, total int, current *int64) QuestionList {
	if questions == nil {
		questions = []question.Question{}
	}
	return QuestionList{
		Success:         true,
		Questions:       questions,
		TotalQuestions:  total,
		CurrentCategory: current,
	}
}

// AssemblePage shapes the paginated listing with the category mapping.
func AssemblePage(policy Policy, page question.Page, categories category.Mapping) (QuestionPage, error) {
	list, err := AssembleQuestions(policy, page.Questions, page.Total, nil)
	if err != nil {
		return QuestionPage{}, err
	}
	if categories == nil {
		categories = category.Mapping{}
	}
	return QuestionPage{QuestionList: list, Categories: categories}, nil
}

// AssembleQuiz shapes a quiz draw. Quiz draws are always permissive.
func AssembleQuiz(q *question.Question) QuizResult {
	return QuizResult{Success: true, Question: q}
}
