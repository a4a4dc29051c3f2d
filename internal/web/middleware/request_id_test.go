package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	webcontext "github.com/conduit-lang/jason/internal/web/context"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Run("generates uuid", func(t *testing.T) {
		var fromContext string
		handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromContext = webcontext.GetRequestID(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(fromContext)
		require.NoError(t, err)
		assert.Equal(t, fromContext, rec.Header().Get("X-Request-ID"))
	})

	t.Run("keeps incoming header", func(t *testing.T) {
		var fromContext string
		handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromContext = webcontext.GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "custom-request-id")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "custom-request-id", fromContext)
		assert.Equal(t, "custom-request-id", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom config", func(t *testing.T) {
		handler := RequestIDWithConfig(RequestIDConfig{
			HeaderName: "X-Correlation-ID",
			Generator:  func() string { return "fixed" },
		})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "fixed", rec.Header().Get("X-Correlation-ID"))
	})
}
