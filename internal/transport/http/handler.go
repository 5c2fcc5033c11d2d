package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"quiz-progress-service/internal/app"
	"quiz-progress-service/internal/domain"
	"quiz-progress-service/internal/share"
)

// Deps are the collaborators the transport layer serves.
type Deps struct {
	Service         *app.ProgressService
	Views           *app.ViewRenderer
	Shares          *share.Builder
	Intents         *share.Dispatcher
	TargetURL       string
	DefaultLanguage string
	Logger          *slog.Logger
}

// Handler exposes progress use cases over HTTP and websockets.
type Handler struct {
	Deps
	ws *WSHandler
}

func NewHandler(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.DefaultLanguage == "" {
		deps.DefaultLanguage = "en"
	}
	h := &Handler{Deps: deps}
	h.ws = newWSHandler(h)
	return h
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /v1/catalog", h.getCatalog)
	mux.HandleFunc("GET /v1/users/{user}/stats", h.getStats)
	mux.HandleFunc("POST /v1/users/{user}/completions", h.postCompletion)
	mux.HandleFunc("GET /v1/users/{user}/share", h.getShare)
	mux.HandleFunc("GET /ws", h.ws.ServeWS)
}

type catalogResponse struct {
	Quizzes             []catalogQuiz `json:"quizzes"`
	TotalPossiblePoints int           `json:"totalPossiblePoints"`
}

type catalogQuiz struct {
	ID        string `json:"id"`
	Section   string `json:"section,omitempty"`
	Questions int    `json:"questions"`
	Points    int    `json:"points"`
}

type completionRequest struct {
	QuizID         string `json:"quizId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}

type shareResponse struct {
	Payload share.Payload `json:"payload"`
	URL     string        `json:"url"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	cat := h.Service.Catalog()
	resp := catalogResponse{TotalPossiblePoints: cat.TotalPossiblePoints()}
	for _, quiz := range cat.AllQuizzes() {
		resp.Quizzes = append(resp.Quizzes, catalogQuiz{
			ID:        quiz.ID,
			Section:   quiz.Section,
			Questions: len(quiz.Questions),
			Points:    quiz.Points(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	user := r.PathValue("user")
	stats := h.Service.Stats(r.Context(), user)
	writeJSON(w, http.StatusOK, h.Views.Render(stats, h.language(r)))
}

func (h *Handler) postCompletion(w http.ResponseWriter, r *http.Request) {
	var req completionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid completion payload"})
		return
	}

	stats, err := h.Service.CompleteQuiz(r.Context(), r.PathValue("user"), domain.QuizOutcome{
		QuizID:         strings.TrimSpace(req.QuizID),
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.Logger.Error("complete quiz failed", "user", r.PathValue("user"), "error", err)
		}
		writeJSON(w, status, errorPayload{Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.Views.Render(stats, h.language(r)))
}

func (h *Handler) getShare(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sharePayload(r, r.PathValue("user")))
}

func (h *Handler) sharePayload(r *http.Request, user string) shareResponse {
	payload := h.Shares.Build(h.Service.ShareStats(r.Context(), user), h.TargetURL)
	return shareResponse{Payload: payload, URL: h.Intents.IntentURL(payload)}
}

func (h *Handler) language(r *http.Request) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return lang
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		first, _, _ := strings.Cut(accept, ",")
		first, _, _ = strings.Cut(first, ";")
		if first = strings.TrimSpace(first); first != "" && first != "*" {
			return first
		}
	}
	return h.DefaultLanguage
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserRequired):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuizNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidOutcome):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
