// Copyright 2024 The volsched Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package api serves filter decisions over HTTP, in the style of a scheduler
// extender: the caller posts a placement request plus its candidates, and
// receives back the candidates that passed the filter chain.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/containerd/containerd/log"
	"github.com/google/uuid"

	"github.com/volsched/volsched/pkg/backend"
	"github.com/volsched/volsched/pkg/request"
	"github.com/volsched/volsched/pkg/scheduler"
)

// FilterRequest is the payload of a POST /filter call.
type FilterRequest struct {
	Request    request.Spec    `json:"request"`
	Candidates []backend.State `json:"candidates"`
}

// Candidate describes one passing candidate in a FilterResponse.
type Candidate struct {
	BackendID string `json:"backendId"`
	Host      string `json:"host"`
	Pool      string `json:"pool"`
}

// FilterResponse is the result of a POST /filter call.
type FilterResponse struct {
	RequestID  string                  `json:"requestId"`
	Candidates []Candidate             `json:"candidates"`
	Failed     scheduler.FailedFilters `json:"failed,omitempty"`
}

// Server serves filter decisions for a Pipeline.
type Server struct {
	pipeline *scheduler.Pipeline
	server   *http.Server
}

// NewServer creates a new Server that listens on the given port.
func NewServer(port int, pipeline *scheduler.Pipeline) *Server {
	s := &Server{pipeline: pipeline}

	mux := http.NewServeMux()
	mux.HandleFunc("/filter", s.handleFilter)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	return s
}

// Handler returns the Server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST is supported", http.StatusMethodNotAllowed)
		return
	}

	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %s", err), http.StatusBadRequest)
		return
	}

	if req.Request.ID == "" {
		req.Request.ID = uuid.New().String()
	}

	states := make([]*backend.State, 0, len(req.Candidates))
	for i := range req.Candidates {
		states = append(states, &req.Candidates[i])
	}

	passed, failed := s.pipeline.Filter(r.Context(), &req.Request, states)

	resp := FilterResponse{
		RequestID:  req.Request.ID,
		Candidates: make([]Candidate, 0, len(passed)),
		Failed:     failed,
	}
	for _, state := range passed {
		resp.Candidates = append(resp.Candidates, Candidate{
			BackendID: state.BackendID,
			Host:      state.Host(),
			Pool:      state.Pool(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.G(r.Context()).WithError(err).Errorf("Error encoding response for request %s", req.Request.ID)
	}
}

// Serve accepts connections until the Server is shut down.
func (s *Server) Serve() error {
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts the Server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
