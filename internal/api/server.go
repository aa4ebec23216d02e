// Package api provides the HTTP server and handlers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tinshelf/tinshelf/internal/config"
	"github.com/tinshelf/tinshelf/internal/logging"
	"github.com/tinshelf/tinshelf/internal/metrics"
	"github.com/tinshelf/tinshelf/internal/shop"
	"github.com/tinshelf/tinshelf/webapp"
)

// Server is the HTTP server.
type Server struct {
	dirs           []shop.SourceDirectory
	cache          *shop.Cache
	successMessage string

	authUser     string
	authPassword string
}

// NewServer builds a server from configuration. Aliases are assigned once
// here and never change for the process lifetime.
func NewServer(cfg *config.Config) *Server {
	dirs := shop.BuildAliases(cfg.SourceDirs)
	for _, d := range dirs {
		logging.Info("source directory registered",
			zap.String("alias", d.Alias), zap.String("path", d.Path))
	}
	return &Server{
		dirs:           dirs,
		cache:          shop.NewCache(cfg.CacheTTL),
		successMessage: cfg.SuccessMessage,
		authUser:       cfg.AuthUser,
		authPassword:   cfg.AuthPassword,
	}
}

// Handler returns the HTTP handler with the full middleware chain:
// recovery, optional Basic Auth, metrics, request logging, method
// validation, then routing.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/{$}", s.handleIndex)
	mux.HandleFunc("/tinfoil", s.handleIndex)
	mux.HandleFunc("/shop.json", s.handleShopJSON)
	mux.HandleFunc("/shop.tfl", s.handleShopTFL)
	mux.HandleFunc("/files/{path...}", s.handleFile)

	// Anything unrouted answers as a liveness probe.
	mux.HandleFunc("/", s.handleDefault)

	var h http.Handler = methodMiddleware(mux)
	h = logging.Middleware(h)
	h = metrics.Middleware(h)
	if s.authUser != "" && s.authPassword != "" {
		h = basicAuthMiddleware(s.authUser, s.authPassword, h)
	}
	return recoveryMiddleware(h)
}

// listing returns the current shop data, rebuilding it when the cache has
// expired. Concurrent misses may each trigger a scan; the cache slot is
// replaced atomically so readers never see a partial listing.
func (s *Server) listing() (*shop.Listing, error) {
	if l, ok := s.cache.Get(); ok {
		metrics.RecordCacheLookup(true)
		return l, nil
	}
	metrics.RecordCacheLookup(false)

	start := time.Now()
	l, err := shop.Scan(s.dirs, s.successMessage)
	if err != nil {
		return nil, err
	}
	metrics.RecordListingScan(time.Since(start), len(l.Files))
	logging.Info("listing rebuilt",
		zap.Int("files", len(l.Files)),
		zap.Int("directories", len(l.Directories)),
		zap.Duration("duration", time.Since(start)))
	s.cache.Set(l)
	return l, nil
}

func (s *Server) writeListing(w http.ResponseWriter, contentType string) {
	l, err := s.listing()
	if err != nil {
		logging.Error("listing scan failed", zap.Error(err))
		sendError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	body, err := json.Marshal(l)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(body)
}

func (s *Server) handleShopJSON(w http.ResponseWriter, r *http.Request) {
	s.writeListing(w, "application/json")
}

// handleShopTFL serves the exact same JSON bytes under the content type
// shop clients expect for .tfl payloads.
func (s *Server) handleShopTFL(w http.ResponseWriter, r *http.Request) {
	s.writeListing(w, "application/octet-stream")
}

// handleIndex content-negotiates between the embedded HTML page and a
// JSON index pointing at the two listing endpoints.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(webapp.Index)
		return
	}
	index := shop.Listing{
		Files: []shop.FileEntry{
			{URL: "/shop.json", Size: 0},
			{URL: "/shop.tfl", Size: 0},
		},
		Directories: []string{},
		Success:     s.successMessage,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(index)
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// errorResponse is the JSON error payload shape.
type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func sendError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResponse{Error: message, Code: code})
}
