package profiling

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRoutes(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, Config{Path: "/internal/pprof"})

	tests := []struct {
		path   string
		status int
	}{
		{path: "/internal/pprof/", status: http.StatusOK},
		{path: "/internal/pprof/cmdline", status: http.StatusOK},
		{path: "/internal/pprof/goroutine?debug=1", status: http.StatusOK},
		{path: "/internal/pprof/heap", status: http.StatusOK},
		{path: "/debug/pprof/", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRegisterRoutes_DefaultPath(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, Config{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
