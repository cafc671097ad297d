// Package api provides the HTTP surface of the admin tool: CRUD endpoints
// for tracks and instructions plus the rendered document in its various
// presentations (JSON page tree, HTML preview, SVG/PNG export).
package api

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/cors"

	"github.com/mpapenbr/trackday-instructions/log"
	"github.com/mpapenbr/trackday-instructions/pkg/service"
)

type Server struct {
	addr         string
	tracks       *service.TrackService
	instructions *service.InstructionService
	mux          *http.ServeMux
	srv          *http.Server
	tlsConfig    *tls.Config
	log          *log.Logger
}

type ServerOption func(*Server)

func WithAddr(addr string) ServerOption {
	return func(s *Server) { s.addr = addr }
}

func WithLogger(l *log.Logger) ServerOption {
	return func(s *Server) { s.log = l }
}

// WithTLSConfig enables TLS serving. A nil config keeps plain HTTP.
func WithTLSConfig(cfg *tls.Config) ServerOption {
	return func(s *Server) { s.tlsConfig = cfg }
}

func NewServer(
	tracks *service.TrackService,
	instructions *service.InstructionService,
	opts ...ServerOption,
) *Server {
	s := &Server{
		addr:         "localhost:8080",
		tracks:       tracks,
		instructions: instructions,
		mux:          http.NewServeMux(),
		log:          log.Default().Named("api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/tracks", s.handleListTracks)
	s.mux.HandleFunc("POST /api/tracks", s.handleCreateTrack)
	s.mux.HandleFunc("GET /api/tracks/{id}", s.handleGetTrack)
	s.mux.HandleFunc("PATCH /api/tracks/{id}", s.handlePatchTrack)
	s.mux.HandleFunc("DELETE /api/tracks/{id}", s.handleDeleteTrack)
	s.mux.HandleFunc("POST /api/tracks/{id}/duplicate", s.handleDuplicateTrack)
	s.mux.HandleFunc("GET /api/tracks/{id}/instructions",
		s.handleListTrackInstructions)

	s.mux.HandleFunc("GET /api/instructions", s.handleListInstructions)
	s.mux.HandleFunc("POST /api/instructions", s.handleCreateInstruction)
	s.mux.HandleFunc("GET /api/instructions/{id}", s.handleGetInstruction)
	s.mux.HandleFunc("PATCH /api/instructions/{id}", s.handlePatchInstruction)
	s.mux.HandleFunc("DELETE /api/instructions/{id}", s.handleDeleteInstruction)
	s.mux.HandleFunc("POST /api/instructions/{id}/duplicate",
		s.handleDuplicateInstruction)

	s.mux.HandleFunc("GET /api/instructions/{id}/document", s.handleDocument)
	s.mux.HandleFunc("GET /api/instructions/{id}/export", s.handleExport)

	s.mux.HandleFunc("GET /preview", s.handlePreview)
	s.mux.HandleFunc("GET /preview/{id}", s.handlePreview)
	s.mux.HandleFunc("GET /preview/{id}/inline", s.handlePreviewInline)

	s.mux.HandleFunc("GET /", s.handleUI)
}

// Handler returns the routed handler including the CORS layer.
func (s *Server) Handler() http.Handler {
	return newCORS().Handler(s.mux)
}

func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		TLSConfig:         s.tlsConfig,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("starting server",
		log.String("addr", s.addr),
		log.Bool("tls", s.tlsConfig != nil))
	var err error
	if s.tlsConfig != nil {
		err = s.srv.ListenAndServeTLS("", "")
	} else {
		err = s.srv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func newCORS() *cors.Cors {
	// permissive setup, the admin ui may be served from a different origin
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedHeaders: []string{"*"},
		MaxAge:         int(2 * time.Hour / time.Second),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// --- helpers ---------------------------------------------------------------

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encoding response", log.ErrorField(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest):
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

var errBadRequest = errors.New("bad request")

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errBadRequest
	}
	return id, nil
}
