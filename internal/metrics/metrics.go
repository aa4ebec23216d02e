// Package metrics provides Prometheus metrics for the tinshelf server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tinshelf_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tinshelf_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// File transfer metrics
	fileBytesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tinshelf_file_bytes_sent_total",
			Help: "Total bytes streamed from the file endpoint",
		},
	)

	fileDownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tinshelf_file_downloads_total",
			Help: "Total number of file downloads",
		},
		[]string{"status"},
	)

	// Listing metrics
	listingScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tinshelf_listing_scan_duration_seconds",
			Help:    "Time to scan all source directories",
			Buckets: prometheus.DefBuckets,
		},
	)

	listingFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tinshelf_listing_files",
			Help: "Number of files in the current listing",
		},
	)

	listingCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tinshelf_listing_cache_total",
			Help: "Listing cache lookups",
		},
		[]string{"result"},
	)

	// Auth metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tinshelf_auth_attempts_total",
			Help: "Total authentication attempts",
		},
		[]string{"result"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordFileDownload records a file download and the bytes it moved.
func RecordFileDownload(bytes int64, success bool) {
	fileBytesSent.Add(float64(bytes))
	status := "success"
	if !success {
		status = "error"
	}
	fileDownloadsTotal.WithLabelValues(status).Inc()
}

// RecordListingScan records a full scan of all source directories.
func RecordListingScan(duration time.Duration, files int) {
	listingScanDuration.Observe(duration.Seconds())
	listingFiles.Set(float64(files))
}

// RecordCacheLookup records a listing cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "hit"
	if !hit {
		result = "miss"
	}
	listingCacheTotal.WithLabelValues(result).Inc()
}

// RecordAuthAttempt records an authentication attempt.
func RecordAuthAttempt(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	authAttemptsTotal.WithLabelValues(result).Inc()
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Middleware returns HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		RecordHTTPRequest(r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	})
}
