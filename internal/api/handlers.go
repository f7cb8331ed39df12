package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/brenwarren/trivia-api/internal/category"
	"github.com/brenwarren/trivia-api/internal/logging"
	"github.com/brenwarren/trivia-api/internal/question"
	"github.com/brenwarren/trivia-api/internal/quiz"
	httperrors "github.com/brenwarren/trivia-api/pkg/http/errors"
)

// Handlers exposes the trivia REST endpoints.
type Handlers struct {
	questions  *question.Service
	categories *category.Store
	selector   *quiz.Selector
	logger     zerolog.Logger
}

func NewHandlers(questions *question.Service, categories *category.Store, selector *quiz.Selector, logger zerolog.Logger) *Handlers {
	return &Handlers{
		questions:  questions,
		categories: categories,
		selector:   selector,
		logger:     logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts the endpoints on mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /categories/{id}/questions", h.QuestionsByCategory)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateQuestion)
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.HandleFunc("GET /questions/{id}", h.GetQuestion)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /quizzes", h.PlayQuiz)
}

// ListCategories handles GET /categories.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil && !errors.Is(err, category.ErrNoCategories) {
		h.internalError(w, r, err, "list categories failed")
		return
	}

	resp, err := AssembleCategories(Strict, categories)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	writeJSON(w, resp)
}

// ListQuestions handles GET /questions?page=N.
func (h *Handlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := h.questions.List(ctx, pageParam(r))
	if err != nil {
		h.internalError(w, r, err, "list questions failed")
		return
	}
	mapping, err := h.categories.Mapping(ctx)
	if err != nil {
		h.internalError(w, r, err, "list categories failed")
		return
	}

	resp, err := AssemblePage(Strict, page, mapping)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	writeJSON(w, resp)
}

// GetQuestion handles GET /questions/{id}.
func (h *Handlers) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	q, err := h.questions.Get(r.Context(), id)
	if errors.Is(err, question.ErrNotFound) {
		httperrors.RespondNotFound(w)
		return
	}
	if err != nil {
		h.internalError(w, r, err, "get question failed")
		return
	}
	writeJSON(w, QuestionResult{Success: true, Question: q})
}

// DeleteQuestion handles DELETE /questions/{id}.
func (h *Handlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.questions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, question.ErrNotFound) {
			httperrors.RespondNotFound(w)
			return
		}
		logger := h.log(r)
		logger.Warn().Err(err).Int64("question_id", id).Msg("delete rejected")
		httperrors.RespondUnprocessable(w)
		return
	}
	writeJSON(w, DeletedResult{Success: true, Deleted: id})
}

// CreateQuestion handles POST /questions.
func (h *Handlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		if isFieldTypeError(err) {
			logger := h.log(r)
			logger.Debug().Err(err).Msg("create rejected by field type")
			httperrors.RespondUnprocessable(w)
			return
		}
		httperrors.RespondBadRequest(w)
		return
	}

	id, err := h.questions.Create(r.Context(), question.Draft{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   int64(req.Category),
		Difficulty: req.Difficulty,
	})
	if err != nil {
		logger := h.log(r)
		var (
			verr *question.ValidationError
			perr *question.PersistenceError
		)
		switch {
		case errors.As(err, &verr):
			logger.Debug().Str("field", verr.Field).Msg("create rejected by validation")
		case errors.As(err, &perr):
			logger.Error().Err(perr.Err).Msg("create failed in storage")
		default:
			logger.Error().Err(err).Msg("create failed")
		}
		httperrors.RespondUnprocessable(w)
		return
	}
	writeJSON(w, CreatedResult{Success: true, Created: id})
}

// SearchQuestions handles POST /questions/search.
func (h *Handlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		httperrors.RespondBadRequest(w)
		return
	}

	found, err := h.questions.Search(r.Context(), req.SearchTerm)
	if err != nil {
		h.internalError(w, r, err, "search failed")
		return
	}

	writeJSON(w, AssembleListing(found, len(found), nil))
}

// QuestionsByCategory handles GET /categories/{id}/questions.
func (h *Handlers) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	found, err := h.questions.ByCategory(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err, "list questions by category failed")
		return
	}

	writeJSON(w, AssembleListing(found, len(found), &id))
}

// PlayQuiz handles POST /quizzes.
func (h *Handlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		httperrors.RespondBadRequest(w)
		return
	}

	q, err := h.selector.Next(r.Context(), int64(req.QuizCategory.ID), req.Excluded())
	if err != nil {
		h.internalError(w, r, err, "quiz draw failed")
		return
	}
	writeJSON(w, AssembleQuiz(q))
}

func (h *Handlers) log(r *http.Request) zerolog.Logger {
	return logging.FromContextOr(r.Context(), h.logger)
}

func (h *Handlers) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger := h.log(r)
	logger.Error().Err(err).Msg(msg)
	httperrors.RespondInternalError(w)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
