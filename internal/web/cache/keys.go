package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
)

// varyHeaders are the request headers that select a different representation
var varyHeaders = []string{"Accept"}

// RequestKey derives a cache key from the method, path, sorted query and
// Accept header of r.
func RequestKey(r *http.Request) string {
	parts := []string{r.Method, r.URL.Path}

	if r.URL.RawQuery != "" {
		query := r.URL.Query()
		var queryParts []string
		for key, values := range query {
			sorted := append([]string(nil), values...)
			sort.Strings(sorted)
			for _, value := range sorted {
				queryParts = append(queryParts, key+"="+value)
			}
		}
		sort.Strings(queryParts)
		parts = append(parts, strings.Join(queryParts, "&"))
	}

	for _, header := range varyHeaders {
		if value := r.Header.Get(header); value != "" {
			parts = append(parts, header+"="+value)
		}
	}

	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "http:" + hex.EncodeToString(hash[:16])
}
