package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	webcontext "github.com/conduit-lang/jason/internal/web/context"
	"github.com/conduit-lang/jason/internal/web/response"
	"go.uber.org/zap"
)

// Recovery creates a middleware that recovers from panics, logs them with
// their stack and answers with a JSON:API 500 error document.
func Recovery(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				requestID := webcontext.GetRequestID(r.Context())

				logger.Error("panic recovered",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path),
					zap.Error(err),
					zap.ByteString("stack", debug.Stack()),
				)

				response.RenderError(w, response.NewHTTPError(http.StatusInternalServerError, "An unexpected error occurred"), requestID)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
