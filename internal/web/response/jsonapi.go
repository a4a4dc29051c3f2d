package response

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/conduit-lang/jason/internal/serializer"
)

const (
	// JSONAPIMediaType is the official JSON:API media type
	JSONAPIMediaType = "application/vnd.api+json"
)

// Acceptable reports whether the request's Accept header admits a JSON:API
// document. A missing header accepts anything.
func Acceptable(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}

	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case JSONAPIMediaType, "application/json", "application/*", "*/*":
			return true
		}
	}
	return false
}

// RenderDocument writes doc with the given status code
func RenderDocument(w http.ResponseWriter, status int, doc *serializer.Document, pretty bool) error {
	// Marshal FIRST, before touching the response
	// This avoids partial writes if marshaling fails
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	w.Header().Set("Content-Type", JSONAPIMediaType)
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}
