// Package httpapi exposes the conversation engine over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mitchellh/mapstructure"

	"github.com/canopyhq/canopy/internal/logging"
	"github.com/canopyhq/canopy/pkg/domain"
)

// Engine defines what the handlers need from the conversation core.
type Engine interface {
	ProcessAnswerAt(ctx context.Context, sessionID, questionID string, answer domain.Answer, at time.Time) (*domain.TurnResult, error)
	GetState(ctx context.Context, sessionID string) (*domain.ConversationState, error)
	Delete(ctx context.Context, sessionID string) error
	Sessions(ctx context.Context) ([]string, error)
}

// Server wires the engine into a chi router.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{engine: engine, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.listSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/answers", s.postAnswer)
		})
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// answerRequest is the POST /answers payload. The answer field accepts a
// string, a number, or a list of strings. The timestamp is optional
// RFC 3339; when absent the engine stamps the answer itself.
type answerRequest struct {
	QuestionID string `mapstructure:"question_id"`
	Answer     any    `mapstructure:"answer"`
	Timestamp  string `mapstructure:"timestamp"`
}

func (s *Server) postAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var req answerRequest
	if err := mapstructure.Decode(raw, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		s.writeError(w, http.StatusBadRequest, "question_id is required")
		return
	}

	answer, err := domain.AnswerFromAny(req.Answer)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var at time.Time
	if req.Timestamp != "" {
		at, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "timestamp must be RFC 3339")
			return
		}
	}

	result, err := s.engine.ProcessAnswerAt(r.Context(), sessionID, req.QuestionID, answer, at)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	state, err := s.engine.GetState(r.Context(), sessionID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := s.engine.Delete(r.Context(), sessionID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.engine.Sessions(r.Context())
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	if sessions == nil {
		sessions = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": sessions})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAnswer), errors.Is(err, domain.ErrQuestionNotFound):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("request failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
