package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshal(t *testing.T) {
	cases := map[string]ID{
		`5`:    5,
		`"12"`: 12,
		`null`: 0,
		`""`:   0,
		` 7 `:  7,
	}
	for input, want := range cases {
		var got ID
		require.NoError(t, json.Unmarshal([]byte(input), &got), input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{`"science"`, `1.5`, `true`} {
		var got ID
		assert.Error(t, json.Unmarshal([]byte(input), &got), input)
	}
}

func TestQuizRequestExcluded(t *testing.T) {
	var req QuizRequest
	require.NoError(t, json.Unmarshal([]byte(`{"previous_questions":[1,"2"],"quiz_category":{"id":"3","type":"History"}}`), &req))

	assert.Equal(t, []int64{1, 2}, req.Excluded())
	assert.Equal(t, ID(3), req.QuizCategory.ID)
	assert.Empty(t, QuizRequest{}.Excluded())
}

func TestPageParam(t *testing.T) {
	cases := map[string]int{
		"/questions":          1,
		"/questions?page=":    1,
		"/questions?page=abc": 1,
		"/questions?page=3":   3,
		"/questions?page=0":   0,
		"/questions?page=-2":  -2,
	}
	for target, want := range cases {
		assert.Equal(t, want, pageParam(httptest.NewRequest(http.MethodGet, target, nil)), target)
	}
}

func TestDecodeJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	var search SearchRequest
	err := decodeJSON(rr, httptest.NewRequest(http.MethodPost, "/", nil), &search)
	assert.ErrorIs(t, err, errEmptyBody)

	err = decodeJSON(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"searchTerm":`)), &search)
	assert.ErrorIs(t, err, errMalformedBody)
	assert.False(t, isFieldTypeError(err))

	err = decodeJSON(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"searchTerm":7}`)), &search)
	assert.ErrorIs(t, err, errMalformedBody)
	assert.True(t, isFieldTypeError(err))

	var create CreateQuestionRequest
	err = decodeJSON(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"category":"art"}`)), &create)
	assert.True(t, isFieldTypeError(err))

	err = decodeJSON(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"searchTerm":"title"}`)), &search)
	require.NoError(t, err)
	assert.Equal(t, "title", search.SearchTerm)
}
