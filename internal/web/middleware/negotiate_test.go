package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/conduit-lang/jason/internal/web/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiate(t *testing.T) {
	handler := Negotiate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		accept string
		want   int
	}{
		{accept: "", want: http.StatusOK},
		{accept: response.JSONAPIMediaType, want: http.StatusOK},
		{accept: "text/html, */*;q=0.1", want: http.StatusOK},
		{accept: "text/html", want: http.StatusNotAcceptable},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/articles", nil)
			req.Header.Set("Accept", tt.accept)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)
			if tt.want != http.StatusNotAcceptable {
				return
			}
			assert.Equal(t, response.JSONAPIMediaType, rec.Header().Get("Content-Type"))

			var doc struct {
				Errors []struct {
					Code string `json:"code"`
				} `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
			require.Len(t, doc.Errors, 1)
			assert.Equal(t, "not_acceptable", doc.Errors[0].Code)
		})
	}
}
