package middleware

import (
	"net/http"

	webcontext "github.com/conduit-lang/jason/internal/web/context"
	"github.com/conduit-lang/jason/internal/web/response"
)

// Negotiate answers 406 to requests whose Accept header rules out a
// JSON:API document.
func Negotiate() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !response.Acceptable(r) {
				err := response.NewHTTPError(http.StatusNotAcceptable, "%s cannot be produced for Accept %q",
					response.JSONAPIMediaType, r.Header.Get("Accept"))
				response.RenderError(w, err, webcontext.GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
