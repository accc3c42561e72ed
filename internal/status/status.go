// Package status exposes the engine's read-only accessors over HTTP for a
// presentation or logging layer. It never mutates the session.
package status

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fretsense/fretsense/internal/notes"
	"github.com/fretsense/fretsense/internal/session"
)

// Server serves session snapshots as JSON.
type Server struct {
	engine *session.Engine
	server *http.Server
}

// NewServer builds the router around an engine.
func NewServer(engine *session.Engine, addr string) *Server {
	s := &Server{engine: engine}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	router.HandleFunc("/api/strings", s.handleStrings).Methods("GET")

	s.server = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return s
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("status: server stopped: %v", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.Snapshot())
}

func (s *Server) handleStrings(w http.ResponseWriter, r *http.Request) {
	type stringInfo struct {
		Number    int     `json:"number"`
		Note      string  `json:"note"`
		Frequency float64 `json:"frequency"`
	}
	infos := make([]stringInfo, 0, len(notes.StandardTuning))
	for _, gs := range notes.StandardTuning {
		infos = append(infos, stringInfo{Number: gs.Number, Note: gs.Note, Frequency: gs.Frequency})
	}
	writeJSON(w, infos)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("status: failed to encode response: %v", err)
	}
}
