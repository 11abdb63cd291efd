package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Server exposes the single live session over HTTP. The engine is not safe for
// concurrent use, so every handler holds mu.
type Server struct {
	mu     sync.Mutex
	engine *Engine
	log    zerolog.Logger
}

func NewServer(engine *Engine, log zerolog.Logger) *Server {
	return &Server{engine: engine, log: log}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Post("/api/v1/session", s.handleStart)
	r.Get("/api/v1/session", s.handleView)
	r.Post("/api/v1/session/rounds", s.handleRound)
	return r
}

type sessionView struct {
	ID              string        `json:"id"`
	Round           int           `json:"round"`
	Active          bool          `json:"active"`
	PlayerHistory   []Move        `json:"player_history"`
	OpponentHistory []Move        `json:"opponent_history"`
	PlayerScores    []int         `json:"player_scores"`
	OpponentScores  []int         `json:"opponent_scores"`
	Strategy        *strategyView `json:"strategy,omitempty"`
	Outcome         *Outcome      `json:"outcome,omitempty"`
}

type strategyView struct {
	ID          StrategyID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

// newSessionView keeps the opponent's strategy hidden until the game is over.
func newSessionView(sess *Session) sessionView {
	v := sessionView{
		ID:              sess.ID(),
		Round:           sess.Round(),
		Active:          sess.Active(),
		PlayerHistory:   sess.PlayerHistory(),
		OpponentHistory: sess.OpponentHistory(),
		PlayerScores:    sess.PlayerScores(),
		OpponentScores:  sess.OpponentScores(),
	}
	if o, ok := sess.Outcome(); ok {
		st := sess.Strategy()
		v.Strategy = &strategyView{ID: st.ID(), Name: st.Name(), Description: st.Description()}
		v.Outcome = &o
	}
	return v
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.engine.InitializeSession()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(sess))
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.engine.Session()
	if sess == nil {
		s.writeError(w, r, ErrInactiveSession)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

type roundRequest struct {
	Move *Move `json:"move"`
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	var req roundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if !errors.Is(err, ErrInvalidMove) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
			return
		}
		s.writeError(w, r, err)
		return
	}
	if req.Move == nil {
		s.writeError(w, r, fmt.Errorf("%w: missing move", ErrInvalidMove))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.engine.PlayRound(*req.Move)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidMove):
		status = http.StatusBadRequest
	case errors.Is(err, ErrInactiveSession):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Serve runs the HTTP server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
