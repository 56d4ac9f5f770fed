// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

// Package demoserver hosts a small pirate-themed API with a live OpenAPI
// document. It exists to produce real specs for examples and tests; it is
// not part of the parsing or tool core.
package demoserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIKey is the only key the demo server accepts on protected endpoints.
const APIKey = "test-api-key"

// Pirate is a crew member record.
type Pirate struct {
	Name   string   `json:"name"`
	Age    int      `json:"age,omitempty"`
	Ship   string   `json:"ship,omitempty"`
	Rank   string   `json:"rank,omitempty"`
	Skills []string `json:"skills,omitempty"`
}

// Ship is a vessel record. IDs are assigned server-side.
type Ship struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Capacity int    `json:"capacity"`
	Cannons  int    `json:"cannons,omitempty"`
}

// Server is the demo API.
type Server struct {
	mu      sync.Mutex
	pirates []Pirate
	ships   []Ship
	logger  *zap.Logger
}

// New creates a demo server.
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{logger: logger.With(zap.String("component", "demoserver"))}
}

// Handler returns the HTTP handler for the demo API, with the OpenAPI
// document served at /openapi.json.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /openapi.json", s.handleSpec)
	mux.HandleFunc("GET /get_pirate", s.handleGetPirate)
	mux.HandleFunc("GET /urlparam_pirate/{name}", s.handleGreetPirate)
	mux.HandleFunc("POST /post_pirate", s.handlePostPirate)
	mux.HandleFunc("GET /search_pirates", s.handleSearchPirates)
	mux.HandleFunc("POST /ships", s.handleCreateShip)
	return mux
}

func (s *Server) handleSpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Spec()); err != nil {
		s.logger.Error("failed to encode spec", zap.Error(err))
	}
}

func (s *Server) handleGetPirate(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, "Arr, matey! Welcome to the pirate endpoint!")
}

func (s *Server) handleGreetPirate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	writeJSON(w, http.StatusOK, fmt.Sprintf("Arr, matey! Welcome to the pirate endpoint, %s!", name))
}

func (s *Server) handlePostPirate(w http.ResponseWriter, r *http.Request) {
	var pirate Pirate
	if err := json.NewDecoder(r.Body).Decode(&pirate); err != nil || pirate.Name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "invalid pirate"})
		return
	}
	s.mu.Lock()
	s.pirates = append(s.pirates, pirate)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, fmt.Sprintf("Arr, matey! Welcome to the pirate endpoint, %s!", pirate.Name))
}

func (s *Server) handleSearchPirates(w http.ResponseWriter, r *http.Request) {
	ship := r.URL.Query().Get("ship")
	matches := []Pirate{}
	s.mu.Lock()
	for _, pirate := range s.pirates {
		if strings.EqualFold(pirate.Ship, ship) {
			matches = append(matches, pirate)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleCreateShip(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-API-Key") != APIKey {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid API key"})
		return
	}
	var ship Ship
	if err := json.NewDecoder(r.Body).Decode(&ship); err != nil || ship.Name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "invalid ship"})
		return
	}
	ship.ID = uuid.NewString()
	s.mu.Lock()
	s.ships = append(s.ships, ship)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, ship)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
