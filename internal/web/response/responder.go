package response

import (
	"net/http"
	"time"

	"github.com/conduit-lang/jason/internal/metrics"
	"github.com/conduit-lang/jason/internal/serializer"
	webcontext "github.com/conduit-lang/jason/internal/web/context"
	"go.uber.org/zap"
)

// Reply is a serialized document together with the status it is sent with.
// The status never affects the document.
type Reply struct {
	Document *serializer.Document
	status   int
	headers  http.Header
}

// Code sets the response status code
func (r *Reply) Code(status int) *Reply {
	r.status = status
	return r
}

// Status returns the response status code, 200 unless Code was called
func (r *Reply) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Header sets an additional response header
func (r *Reply) Header(key, value string) *Reply {
	if r.headers == nil {
		r.headers = make(http.Header)
	}
	r.headers.Set(key, value)
	return r
}

// Responder turns (type, data, extra data) into replies for HTTP handlers
type Responder struct {
	serializer *serializer.Serializer
	logger     *zap.Logger
	metrics    *metrics.Metrics
	pretty     bool
}

// ResponderOption configures a Responder
type ResponderOption func(*Responder)

// WithLogger sets the responder's logger
func WithLogger(logger *zap.Logger) ResponderOption {
	return func(rs *Responder) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

// WithMetrics records every serialization in m
func WithMetrics(m *metrics.Metrics) ResponderOption {
	return func(rs *Responder) {
		rs.metrics = m
	}
}

// WithPrettyPrint indents rendered documents
func WithPrettyPrint(pretty bool) ResponderOption {
	return func(rs *Responder) {
		rs.pretty = pretty
	}
}

// NewResponder creates a Responder backed by s
func NewResponder(s *serializer.Serializer, opts ...ResponderOption) *Responder {
	rs := &Responder{
		serializer: s,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// WithJSON serializes data as a document of typ. data is a single resource
// or a collection. The request ID of r, when set, seeds meta.id.
func (rs *Responder) WithJSON(r *http.Request, typ string, data any, extra serializer.ExtraData, opts ...serializer.SerializeOption) (*Reply, error) {
	callOpts := []serializer.SerializeOption{serializer.WithExtraData(extra)}
	if id := webcontext.GetRequestID(r.Context()); id != "" {
		callOpts = append(callOpts, serializer.WithMetaSeed(serializer.Meta{"id": id}))
	}
	callOpts = append(callOpts, opts...)

	start := time.Now()
	doc, err := rs.serializer.Serialize(typ, data, callOpts...)
	included := 0
	if doc != nil {
		included = len(doc.Included)
	}
	rs.metrics.ObserveDocument(typ, start, included, err)
	if err != nil {
		return nil, err
	}

	return &Reply{Document: doc}, nil
}

// Render writes reply to w
func (rs *Responder) Render(w http.ResponseWriter, reply *Reply) error {
	for key, values := range reply.headers {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	return RenderDocument(w, reply.Status(), reply.Document, rs.pretty)
}

// HandlerFunc produces a reply for a request
type HandlerFunc func(r *http.Request) (*Reply, error)

// Handle adapts h to an http.HandlerFunc. Errors are logged and rendered as
// JSON:API error documents.
func (rs *Responder) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := webcontext.GetRequestID(r.Context())

		reply, err := h(r)
		if err != nil {
			status := StatusFor(err)
			if status >= http.StatusInternalServerError {
				rs.logger.Error("request failed",
					zap.String("request_id", requestID),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
			}
			RenderError(w, err, requestID)
			return
		}

		if err := rs.Render(w, reply); err != nil {
			rs.logger.Error("failed to render document",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			RenderError(w, err, requestID)
		}
	}
}
