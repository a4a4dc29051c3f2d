package demo

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/conduit-lang/jason/internal/serializer"
	"github.com/conduit-lang/jason/internal/web/cache"
	"github.com/conduit-lang/jason/internal/web/response"
)

func benchRouter(b *testing.B, c cache.Cache) http.Handler {
	b.Helper()

	reg := serializer.NewRegistry()
	if err := RegisterSchemas(reg); err != nil {
		b.Fatal(err)
	}
	return NewRouter(Config{
		Responder: response.NewResponder(serializer.New(reg)),
		Store:     NewStore(FixtureArticle()),
		Cache:     c,
	})
}

// BenchmarkShowArticle benchmarks a full request through the middleware stack
func BenchmarkShowArticle(b *testing.B) {
	handler := benchRouter(b, nil)
	req := httptest.NewRequest(http.MethodGet, "/articles/1", nil)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}
}

// BenchmarkShowArticleCached benchmarks cache hits
func BenchmarkShowArticleCached(b *testing.B) {
	handler := benchRouter(b, cache.NewMemoryCache(cache.DefaultConfig()))
	req := httptest.NewRequest(http.MethodGet, "/articles/1", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}
}

// BenchmarkCreateArticle benchmarks POST with a JSON body
func BenchmarkCreateArticle(b *testing.B) {
	handler := benchRouter(b, nil)
	body := `{"id":"2","title":"Benchmark","author":{"id":"9","firstName":"Ada"}}`

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}
}
