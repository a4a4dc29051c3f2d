package cache

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// MiddlewareConfig holds configuration for the cache middleware
type MiddlewareConfig struct {
	// Cache is the cache backend to use
	Cache Cache
	// TTL is the time-to-live for cached responses
	TTL time.Duration
	// SkipPaths is a list of paths never cached
	SkipPaths []string
	// CacheControl is the Cache-Control header set on cacheable responses
	CacheControl string
	// Logger reports backend failures. Backend failures never fail the request.
	Logger *zap.Logger
}

// cachedResponse is the stored form of a response
type cachedResponse struct {
	StatusCode int         `json:"status"`
	Header     http.Header `json:"header"`
	Body       []byte      `json:"body"`
	ETag       string      `json:"etag"`
}

// Middleware caches successful GET responses. Hits are replayed verbatim
// with X-Cache: HIT, and If-None-Match is answered with 304 when the
// stored ETag matches. A successful request with any other method clears
// the cache.
func Middleware(config MiddlewareConfig) func(http.Handler) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
				next.ServeHTTP(sw, r)
				if sw.statusCode >= 200 && sw.statusCode < 300 {
					if err := config.Cache.Clear(r.Context()); err != nil {
						logger.Warn("cache invalidation failed", zap.String("path", r.URL.Path), zap.Error(err))
					}
				}
				return
			}
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := RequestKey(r)

			data, err := config.Cache.Get(ctx, key)
			switch {
			case err == nil:
				var cached cachedResponse
				if err := json.Unmarshal(data, &cached); err == nil {
					serveCached(w, r, &cached, config.CacheControl)
					return
				}
				logger.Warn("discarding unreadable cache entry", zap.String("key", key))
				if err := config.Cache.Delete(ctx, key); err != nil {
					logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
				}
			case !IsCacheMiss(err):
				logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
			}

			rec := &recorder{header: make(http.Header), statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			cacheable := rec.statusCode >= 200 && rec.statusCode < 300
			etag := ""
			if cacheable {
				etag = GenerateETag(rec.body.Bytes())
				rec.header.Set("ETag", etag)
				if config.CacheControl != "" {
					rec.header.Set("Cache-Control", config.CacheControl)
				}
			}
			rec.header.Set("X-Cache", "MISS")
			rec.flush(w)

			if !cacheable {
				return
			}

			cached := cachedResponse{
				StatusCode: rec.statusCode,
				Header:     rec.header.Clone(),
				Body:       rec.body.Bytes(),
				ETag:       etag,
			}
			encoded, err := json.Marshal(cached)
			if err != nil {
				return
			}
			if err := config.Cache.Set(ctx, key, encoded, config.TTL); err != nil {
				logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
			}
		})
	}
}

func serveCached(w http.ResponseWriter, r *http.Request, cached *cachedResponse, cacheControl string) {
	w.Header().Set("ETag", cached.ETag)
	if cacheControl != "" {
		w.Header().Set("Cache-Control", cacheControl)
	}
	w.Header().Set("X-Cache", "HIT")

	if MatchesIfNoneMatch(r.Header.Get("If-None-Match"), cached.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	for key, values := range cached.Header {
		if _, set := w.Header()[key]; set {
			continue
		}
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(cached.StatusCode)
	w.Write(cached.Body)
}

// recorder buffers a response so its ETag can be sent with it
type recorder struct {
	header      http.Header
	statusCode  int
	body        bytes.Buffer
	wroteHeader bool
}

func (r *recorder) Header() http.Header {
	return r.header
}

func (r *recorder) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.statusCode = statusCode
	r.wroteHeader = true
}

func (r *recorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.body.Write(b)
}

func (r *recorder) flush(w http.ResponseWriter) {
	for key, values := range r.header {
		w.Header()[key] = values
	}
	w.WriteHeader(r.statusCode)
	w.Write(r.body.Bytes())
}

// statusWriter records the status of a response it passes through
type statusWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.statusCode = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}
