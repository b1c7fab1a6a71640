// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package server exposes one shell session over a small JSON HTTP API:
// command execution, autocompletion, host statistics and a health
// probe. All responses carry permissive CORS headers so a browser
// terminal can talk to the daemon directly.
package server

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"

	"jailshell/internal/shell"
)

// Server serves one shared shell session. The session serializes its
// own dispatches, so concurrent requests are safe.
type Server struct {
	sess *shell.Session
	log  zerolog.Logger
}

// New creates a server around an existing session.
func New(sess *shell.Session, logger zerolog.Logger) *Server {
	return &Server{sess: sess, log: logger}
}

// Handler builds the HTTP routing tree with CORS and request logging
// applied to every route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /execute", s.handleExecute)
	mux.HandleFunc("GET /autocomplete", s.handleAutocomplete)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /health", s.handleHealth)
	return withCORS(s.logRequests(mux))
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request handled")
	})
}

type executeRequest struct {
	Command string `json:"command"`
}

type executeResponse struct {
	Output string `json:"output"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	output := s.sess.Dispatch(r.Context(), req.Command)
	writeJSON(w, executeResponse{Output: output})
}

// handleAutocomplete suggests command completions. An empty prefix
// yields no suggestions; the full catalog is help's job.
func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	matches := make([]string, 0)
	if prefix := r.URL.Query().Get("prefix"); prefix != "" {
		matches = shell.Autocomplete(prefix)
	}
	writeJSON(w, map[string][]string{"suggestions": matches})
}

type statsResponse struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	NetworkSentMB float64 `json:"network_sent_mb"`
	NetworkRecvMB float64 `json:"network_recv_mb"`
}

// handleStats samples host CPU, memory and network counters. Sampling
// failures degrade to zeros rather than an error response; a terminal
// statusbar should never break the page.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var stats statsResponse

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = round1(percents[0])
	} else if err != nil {
		s.log.Warn().Err(err).Msg("CPU sampling failed")
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = round1(vm.UsedPercent)
	} else {
		s.log.Warn().Err(err).Msg("Memory sampling failed")
	}

	if counters, err := gnet.IOCounters(false); err == nil && len(counters) > 0 {
		stats.NetworkSentMB = round1(float64(counters[0].BytesSent) / (1024 * 1024))
		stats.NetworkRecvMB = round1(float64(counters[0].BytesRecv) / (1024 * 1024))
	} else if err != nil {
		s.log.Warn().Err(err).Msg("Network sampling failed")
	}

	writeJSON(w, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":    "ok",
		"timestamp": float64(time.Now().UnixMilli()) / 1000.0,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"encoding failed"}`, http.StatusInternalServerError)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
