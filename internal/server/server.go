// Package server exposes hand evaluation over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	"github.com/gorilla/websocket"

	"github.com/lox/pokereval/poker"
)

// maxCompareHands bounds a single compare request.
const maxCompareHands = 23

// Server answers evaluation requests. The evaluator is stateless, so handlers
// share it without locking.
type Server struct {
	evaluator   *poker.Evaluator
	logger      *log.Logger
	upgrader    websocket.Upgrader
	router      chi.Router
	mu          sync.Mutex
	connections map[*Connection]struct{}
	accessLog   bool
}

// Option configures a Server.
type Option func(*Server)

// WithAccessLog logs one line per HTTP request.
func WithAccessLog(enabled bool) Option {
	return func(s *Server) {
		s.accessLog = enabled
	}
}

// NewServer creates a new evaluation server
func NewServer(evaluator *poker.Evaluator, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		evaluator: evaluator,
		logger:    logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if s.accessLog {
		r.Use(s.requestLogger())
	}
	r.Get("/health", s.handleHealth)
	r.Post("/eval", s.handleEval)
	r.Post("/compare", s.handleCompare)
	r.Get("/ws", s.handleWebSocket)
	s.router = r

	return s
}

// requestLogger adapts the server logger for httplog.
func (s *Server) requestLogger() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(s.logger.WithPrefix("http")),
		&httplog.Options{
			Level:  slog.LevelInfo,
			Schema: &httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				route := req.URL.Path
				if rc := chi.RouteContext(req.Context()); rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
				}
			},
		},
	)
}

// Handler returns the HTTP handler serving every endpoint.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting evaluation server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down evaluation server")
	s.closeConnections()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ConnectionCount returns the number of open WebSocket connections.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	s.serveJSON(w, r, TypeEval, s.evaluate)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	s.serveJSON(w, r, TypeCompare, s.compare)
}

func (s *Server) serveJSON(w http.ResponseWriter, r *http.Request, typ string, handle func(*Request) Response) {
	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageSize)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(requestID(""), fmt.Errorf("invalid request body: %w", err)))
		return
	}
	req.Type = typ

	resp := handle(&req)
	status := http.StatusOK
	if resp.Type == TypeError {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // Client may have gone away
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s)
	s.mu.Lock()
	s.connections[client] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "conn", client.ID(), "total", total)

	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		delete(s.connections, client)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "conn", client.ID(), "total", total)
	}()
}

// evaluate handles a single-hand request.
func (s *Server) evaluate(req *Request) Response {
	id := requestID(req.ID)
	res, err := s.evaluator.EvaluateString(req.Cards)
	if err != nil {
		s.logger.Debug("Rejected hand", "id", id, "cards", req.Cards, "error", err)
		return errorResponse(id, err)
	}
	return Response{
		Type:    TypeResult,
		ID:      id,
		Results: []HandResult{newHandResult(req.Cards, res)},
		Winners: []int{0},
	}
}

// compare evaluates several hands and reports the winners.
func (s *Server) compare(req *Request) Response {
	id := requestID(req.ID)
	if len(req.Hands) == 0 || len(req.Hands) > maxCompareHands {
		return errorResponse(id, fmt.Errorf("compare needs 1 to %d hands, got %d", maxCompareHands, len(req.Hands)))
	}

	results := make([]poker.Result, len(req.Hands))
	out := make([]HandResult, len(req.Hands))
	for i, hand := range req.Hands {
		res, err := s.evaluator.EvaluateString(hand)
		if err != nil {
			return errorResponse(id, fmt.Errorf("hand %d: %w", i, err))
		}
		results[i] = res
		out[i] = newHandResult(hand, res)
	}

	return Response{
		Type:    TypeResult,
		ID:      id,
		Results: out,
		Winners: poker.Winners(results),
	}
}
