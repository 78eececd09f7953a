// Package mockservice is an in-memory stand-in for the emoji suggestion service.
// It speaks the same JSON contract as the real service and keeps one history per
// cookie session, which is enough for local demos and integration tests.
package mockservice

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dohr-michael/emotai/internal/emoji"
)

// SessionCookie is the cookie carrying the per-user session id.
const SessionCookie = "emotai_session"

// Server serves the suggestion service routes.
type Server struct {
	store  *Store
	router chi.Router
	log    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithStore replaces the default store.
func WithStore(st *Store) Option {
	return func(s *Server) { s.store = st }
}

// New creates a Server with an empty store.
func New(opts ...Option) *Server {
	s := &Server{
		store: NewStore(time.Now),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)

	r.Post("/suggest", s.handleSuggest)
	r.Get("/history", s.handleHistory)
	r.Post("/feedback", s.handleFeedback)
	r.Get("/analytics", s.handleAnalytics)
	r.Post("/delete_user_data", s.handleDeleteUserData)
	r.Get("/health", s.handleHealth)

	s.router = r
	return s
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("mock request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", r.Header.Get("X-Request-ID"),
		)
	})
}

// sessionID returns the caller's session, issuing a new cookie when absent.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	sid := s.sessionID(w, r)
	rec := s.store.AddSuggestion(sid, req.Message, Suggest(req.Message))
	respond(w, http.StatusOK, emoji.Suggestion{
		Emojis:      rec.Suggestion.Emojis,
		Explanation: rec.Suggestion.Explanation,
		MessageID:   rec.ID,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)
	respond(w, http.StatusOK, map[string]any{"history": s.store.History(sid)})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var fb emoji.Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if strings.TrimSpace(fb.Message) == "" || !emoji.ValidRating(fb.Rating) {
		respond(w, http.StatusBadRequest, map[string]string{"error": "message and rating (1-5) required"})
		return
	}
	sid := s.sessionID(w, r)
	s.store.AddFeedback(sid, fb)
	respond(w, http.StatusOK, map[string]string{"msg": "Feedback recorded"})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	a := s.store.Analytics()
	respond(w, http.StatusOK, map[string]any{
		"emoji_usage":     a.Usage,
		"sentiment_stats": a.Stats.Sentiment,
		"feedback_stats":  a.Stats.Feedback,
		"message_count":   a.Stats.MessageCount,
	})
}

func (s *Server) handleDeleteUserData(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)
	s.store.DeleteSession(sid)
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	respond(w, http.StatusOK, map[string]string{"msg": "All your data has been deleted."})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
