// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package devserver provides a local stand-in for the portfolio
// backend, useful for demos and offline development.
//
// Endpoints:
//   - POST   /chat              - Answer a chat message
//   - GET    /chat/logs         - List recorded logs
//   - DELETE /chat/logs         - Wipe recorded logs
//   - GET    /chat/analytics    - Usage aggregate
//   - POST   /chat/clear/{id}   - Clear one session's conversation
//   - GET    /chat/history/{id} - Fetch one session's conversation
//   - GET    /tools             - List backend tools
//   - GET    /health            - Liveness probe
package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultPort matches the real backend's listen port.
	DefaultPort = 3501

	// MaxRequestBodySize caps request bodies (1MB).
	MaxRequestBodySize = 1 * 1024 * 1024

	// simulatedLatency makes the sending state visible in the client.
	simulatedLatency = 300 * time.Millisecond
)

// Server is the in-memory mock backend.
type Server struct {
	port   int
	router *http.ServeMux
	server *http.Server

	limiter *ipLimiter

	mu       sync.Mutex
	logs     []storedLog
	sessions map[string][]storedTurn
	nextID   int
}

type storedLog struct {
	ID           string
	SessionID    string
	UserQuery    string
	Response     string
	Timestamp    time.Time
	ResponseTime float64
}

type storedTurn struct {
	ID        string
	Role      string
	Content   string
	Timestamp time.Time
}

// NewServer creates a mock backend on the given port (0 uses the
// default).
func NewServer(port int) *Server {
	if port == 0 {
		port = DefaultPort
	}
	s := &Server{
		port:     port,
		router:   http.NewServeMux(),
		limiter:  newIPLimiter(10, 20),
		sessions: make(map[string][]storedTurn),
	}
	s.setupRoutes()
	return s
}

// Port returns the configured listen port.
func (s *Server) Port() int {
	return s.port
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("POST /chat", s.handleChat)
	s.router.HandleFunc("GET /chat/logs", s.handleGetLogs)
	s.router.HandleFunc("DELETE /chat/logs", s.handleClearLogs)
	s.router.HandleFunc("GET /chat/analytics", s.handleAnalytics)
	s.router.HandleFunc("POST /chat/clear/{id}", s.handleClearChat)
	s.router.HandleFunc("GET /chat/history/{id}", s.handleHistory)
	s.router.HandleFunc("GET /tools", s.handleTools)
	s.router.HandleFunc("GET /health", s.handleHealth)
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.limiter.start()
	defer s.limiter.stop()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.limiter.middleware(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("devserver listening on :%d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// =============================================================================
// HANDLERS
// =============================================================================

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Context   []struct {
		ID        string    `json:"id"`
		Role      string    `json:"role"`
		Content   string    `json:"content"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"context"`
}

type modalActionJSON struct {
	Action  string `json:"action"`
	ModalID string `json:"modal_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	start := time.Now()
	time.Sleep(simulatedLatency)
	reply := pickReply(req.Message)

	resp := map[string]any{
		"message":    reply.message,
		"session_id": req.SessionID,
	}
	if reply.modalID != "" {
		resp["modal_actions"] = []modalActionJSON{{Action: "open_modal", ModalID: reply.modalID}}
	}
	if reply.suggestions != nil {
		resp["suggestions"] = reply.suggestions
	}

	s.record(r, req, reply.message, time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, resp)
}

// record stores the turn for the log and history endpoints.
func (s *Server) record(r *http.Request, req chatRequest, response string, elapsed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now().UTC()
	id := strconv.Itoa(s.nextID)

	s.logs = append(s.logs, storedLog{
		ID:           id,
		SessionID:    req.SessionID,
		UserQuery:    req.Message,
		Response:     response,
		Timestamp:    now,
		ResponseTime: elapsed,
	})
	s.sessions[req.SessionID] = append(s.sessions[req.SessionID],
		storedTurn{ID: "u" + id, Role: "user", Content: req.Message, Timestamp: now},
		storedTurn{ID: "a" + id, Role: "assistant", Content: response, Timestamp: now},
	)
}

func (s *Server) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	session := r.URL.Query().Get("session_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	wire := make([]map[string]any, 0, limit)
	// Newest first.
	for i := len(s.logs) - 1; i >= 0 && len(wire) < limit; i-- {
		entry := s.logs[i]
		if session != "" && entry.SessionID != session {
			continue
		}
		wire = append(wire, map[string]any{
			"id":             entry.ID,
			"session_id":     entry.SessionID,
			"user_query":     entry.UserQuery,
			"final_response": entry.Response,
			"tools_used":     []any{},
			"timestamp":      entry.Timestamp.Format(time.RFC3339),
			"response_time":  entry.ResponseTime,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"logs":        wire,
		"total_count": len(s.logs),
		"session_id":  session,
	})
}

func (s *Server) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if session == "" {
		s.logs = nil
	} else {
		kept := s.logs[:0]
		for _, entry := range s.logs {
			if entry.SessionID != session {
				kept = append(kept, entry)
			}
		}
		s.logs = kept
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "cleared"})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := map[string]bool{}
	counts := map[string]int{}
	var total int
	var totalTime float64
	var first, last string

	for _, entry := range s.logs {
		if entry.Timestamp.Before(cutoff) {
			continue
		}
		total++
		totalTime += entry.ResponseTime
		sessions[entry.SessionID] = true
		counts[entry.UserQuery]++
		if first == "" {
			first = entry.UserQuery
		}
		last = entry.UserQuery
	}

	var avg float64
	if total > 0 {
		avg = totalTime / float64(total)
	}

	popular := make([]map[string]any, 0, len(counts))
	for q, c := range counts {
		popular = append(popular, map[string]any{"query": q, "count": c})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_queries":     total,
		"avg_response_time": avg,
		"unique_sessions":   len(sessions),
		"first_query":       first,
		"last_query":        last,
		"popular_queries":   popular,
	})
}

func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	writeJSON(w, http.StatusOK, map[string]any{"status": "cleared", "session_id": id})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	turns := s.sessions[id]
	wire := make([]map[string]any, 0, len(turns))
	for _, t := range turns {
		wire = append(wire, map[string]any{
			"id":        t.ID,
			"role":      t.Role,
			"content":   t.Content,
			"timestamp": t.Timestamp.Format(time.RFC3339),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"messages":   wire,
		"session_id": id,
	})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tools": []map[string]any{
			{"name": "get_projects", "description": "look up project details"},
			{"name": "get_resume", "description": "look up work history"},
			{"name": "get_skills", "description": "look up the skill matrix"},
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("devserver: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// clientIP extracts the caller address for rate limiting.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
