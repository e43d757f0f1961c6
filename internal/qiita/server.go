package qiita

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/qiita-spots/qtp-diversity/internal/logger"
	"github.com/qiita-spots/qtp-diversity/internal/types"
)

// Server is an in-memory development host server implementing the
// endpoints the plugin client consumes. It backs the serve command and
// the client tests; it is not a real Qiita deployment.
type Server struct {
	router *mux.Router

	mu            sync.Mutex
	prepTemplates map[string]types.SampleMetadata
	analyses      map[string]types.SampleMetadata
	artifacts     map[string]*ArtifactRecord
	htmlSummaries map[string]string
}

// NewServer creates a new development host server instance
func NewServer() *Server {
	s := &Server{
		router:        mux.NewRouter(),
		prepTemplates: make(map[string]types.SampleMetadata),
		analyses:      make(map[string]types.SampleMetadata),
		artifacts:     make(map[string]*ArtifactRecord),
		htmlSummaries: make(map[string]string),
	}
	s.routes()
	return s
}

// routes sets up the API routes
func (s *Server) routes() {
	s.router.HandleFunc("/api/v1/health", s.healthCheck).Methods("GET")
	s.router.HandleFunc("/qiita_db/prep_template/{id}/data/", s.prepTemplateData).Methods("GET")
	s.router.HandleFunc("/qiita_db/analysis/{id}/metadata/", s.analysisMetadata).Methods("GET")
	s.router.HandleFunc("/qiita_db/artifacts/{id}/", s.getArtifact).Methods("GET")
	s.router.HandleFunc("/qiita_db/artifacts/{id}/", s.patchArtifact).Methods("PATCH")
}

// ServeHTTP implements http.Handler so the server can be mounted in
// httptest during tests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start starts the development server
func (s *Server) Start(addr string) error {
	logger.Info().Str("addr", addr).Msg("Starting development host server")
	return http.ListenAndServe(addr, s.router)
}

// AddPrepTemplate registers prep template metadata and returns its id
func (s *Server) AddPrepTemplate(metadata types.SampleMetadata) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.prepTemplates[id] = metadata
	return id
}

// AddAnalysis registers analysis metadata and returns its id
func (s *Server) AddAnalysis(metadata types.SampleMetadata) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.analyses[id] = metadata
	return id
}

// AddArtifact registers an artifact record and returns its id
func (s *Server) AddArtifact(record *ArtifactRecord) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.artifacts[id] = record
	return id
}

// HTMLSummary returns the persisted html summary value for an artifact
// and whether one has been recorded
func (s *Server) HTMLSummary(artifactID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.htmlSummaries[artifactID]
	return v, ok
}

// healthCheck handles the health check endpoint
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "healthy"})
}

// prepTemplateData handles prep template metadata requests
func (s *Server) prepTemplateData(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	metadata, ok := s.prepTemplates[mux.Vars(r)["id"]]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, map[string]interface{}{"data": metadata})
}

// analysisMetadata handles analysis metadata requests
func (s *Server) analysisMetadata(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	metadata, ok := s.analyses[mux.Vars(r)["id"]]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, metadata)
}

// getArtifact handles artifact record requests
func (s *Server) getArtifact(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	record, ok := s.artifacts[mux.Vars(r)["id"]]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, record)
}

// patchArtifact handles partial artifact updates; only the html summary
// field is supported
func (s *Server) patchArtifact(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	_, ok := s.artifacts[id]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.PostFormValue("path") != "/html_summary/" {
		http.Error(w, "unsupported patch path", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.htmlSummaries[id] = r.PostFormValue("value")
	s.mu.Unlock()
	s.writeJSON(w, map[string]bool{"success": true})
}

// writeJSON encodes v to the response, reporting encode failures as 500
func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("Failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
	}
}
