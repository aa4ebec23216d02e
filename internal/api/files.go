package api

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/tinshelf/tinshelf/internal/logging"
	"github.com/tinshelf/tinshelf/internal/metrics"
	"github.com/tinshelf/tinshelf/internal/shop"
)

// Backup images never change once published, so clients may cache
// aggressively.
const cacheControl = "public, max-age=31536000, immutable"

// handleFile serves GET/HEAD /files/{alias}/{relative/path} with optional
// single-range resumption. A bad alias, a traversal attempt and a missing
// file all produce the same 404.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	resolved, ok := shop.Resolve(r.PathValue("path"), s.dirs)
	if !ok {
		sendError(w, http.StatusNotFound, "not found")
		return
	}

	w.Header().Set("Accept-Ranges", "bytes")

	rng := byteRange{start: 0, end: resolved.Size - 1}
	status := http.StatusOK
	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		rng, ok = parseRange(rangeHeader, resolved.Size)
		if !ok {
			w.Header().Set("Content-Range", contentRangeUnsatisfiable(resolved.Size))
			sendError(w, http.StatusRequestedRangeNotSatisfiable, "range not satisfiable")
			return
		}
		status = http.StatusPartialContent
		w.Header().Set("Content-Range", contentRangeHeader(rng.start, rng.end, resolved.Size))
	}

	ct := mime.TypeByExtension(filepath.Ext(resolved.AbsolutePath))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Content-Length", strconv.FormatInt(rng.length(), 10))

	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}

	f, err := os.Open(resolved.AbsolutePath)
	if err != nil {
		logging.Error("open failed after resolve",
			zap.String("path", resolved.AbsolutePath), zap.Error(err))
		sendError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer f.Close()

	if rng.start > 0 {
		if _, err := f.Seek(rng.start, io.SeekStart); err != nil {
			sendError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	w.WriteHeader(status)

	// io.CopyN on an *os.File lets net/http use sendfile, so multi-gigabyte
	// images stream without being buffered in memory. A client hanging up
	// mid-transfer surfaces as a write error and stops the copy.
	n, err := io.CopyN(w, f, rng.length())
	if err != nil {
		logging.Warn("file transfer interrupted",
			zap.String("path", r.URL.Path),
			zap.Int64("sent", n),
			zap.Error(err))
	}
	metrics.RecordFileDownload(n, err == nil)
}
