package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

const maxBodyBytes = 1 << 20

var (
	errEmptyBody     = errors.New("empty request body")
	errMalformedBody = errors.New("malformed request body")
	errInvalidID     = errors.New("invalid id")
)

// ID is an identifier sent by clients either as a JSON number or as a
// numeric string. null and "" decode to 0.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*id = 0
			return nil
		}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%w %s: %v", errInvalidID, data, err)
	}
	*id = ID(v)
	return nil
}

// CreateQuestionRequest is the body of POST /questions.
type CreateQuestionRequest struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   ID     `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// SearchRequest is the body of POST /questions/search. A missing searchTerm
// matches every question.
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// QuizCategory identifies the category a quiz draws from; ID 0 means all.
type QuizCategory struct {
	ID   ID     `json:"id"`
	Type string `json:"type,omitempty"`
}

// QuizRequest is the body of POST /quizzes. Missing fields default to an
// empty exclusion set and every category.
type QuizRequest struct {
	PreviousQuestions []ID         `json:"previous_questions"`
	QuizCategory      QuizCategory `json:"quiz_category"`
}

// Excluded returns the previously seen question ids.
func (q QuizRequest) Excluded() []int64 {
	out := make([]int64, len(q.PreviousQuestions))
	for i, id := range q.PreviousQuestions {
		out[i] = int64(id)
	}
	return out
}

// pageParam reads ?page=N, falling back to 1 when absent or non-numeric.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeJSON reads the request body into dst. An absent body yields
// errEmptyBody and leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("%w: %w", errMalformedBody, err)
	}
	return nil
}

// isFieldTypeError reports whether a decode failure came from a well-formed
// body carrying a value of the wrong type for a field.
func isFieldTypeError(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr) || errors.Is(err, errInvalidID)
}
