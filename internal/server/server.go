// Package server exposes the insight engine over HTTP. It is a thin
// request-handler layer: validation, status mapping, JSON encoding.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"mentionpulse/internal/insights"
	"mentionpulse/internal/logger"
)

// Server wraps the HTTP surface around the insights service.
type Server struct {
	insights *insights.Service
	addr     string
	timeout  time.Duration
}

// NewServer creates a server listening on addr. timeout bounds one insights
// computation including any AI fallback call.
func NewServer(addr string, service *insights.Service, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Server{
		insights: service,
		addr:     addr,
		timeout:  timeout,
	}
}

// Routes builds the HTTP mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/insights", s.handleInsights)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Start runs the server until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("server listening", "addr", s.addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// handleInsights serves GET /api/insights?range=30d. The caller identity
// arrives in the X-User-ID header; upstream auth middleware owns verifying
// it.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing X-User-ID header")
		return
	}

	rangeToken := r.URL.Query().Get("range")
	if rangeToken == "" {
		rangeToken = "30d"
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	resp, err := s.insights.Generate(ctx, insights.Request{UserID: userID, Range: rangeToken})
	if err != nil {
		switch {
		case errors.Is(err, insights.ErrMissingUser), errors.Is(err, insights.ErrInvalidRange):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("insights computation failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "failed to compute insights")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
