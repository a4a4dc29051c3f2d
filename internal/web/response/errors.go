package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/DataDog/jsonapi"
	"github.com/conduit-lang/jason/internal/serializer"
)

// HTTPError is an error carrying the status it should be rendered with
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	// Pointer is an optional JSON pointer into the request document
	Pointer string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error
func NewHTTPError(statusCode int, format string, args ...interface{}) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf(format, args...),
		Code:       errorCodeFromStatus(statusCode),
	}
}

// WithCode sets a custom error code
func (e *HTTPError) WithCode(code string) *HTTPError {
	e.Code = code
	return e
}

// WithPointer sets the JSON pointer of the offending request member
func (e *HTTPError) WithPointer(pointer string) *HTTPError {
	e.Pointer = pointer
	return e
}

// StatusFor returns the status an error should be rendered with.
// Serializer failures are server-side authoring bugs and map to 500.
func StatusFor(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return http.StatusInternalServerError
}

// InvalidResource turns serializer failures caused by a client supplied
// resource of type typ into 422 errors. Other errors are returned unchanged.
func InvalidResource(typ string, err error) error {
	var (
		missingID *serializer.MissingIdentifierError
		malformed *serializer.MalformedRelationshipError
	)
	switch {
	case errors.As(err, &missingID):
		httpErr := NewHTTPError(http.StatusUnprocessableEntity, "%s", err.Error()).WithCode("missing_identifier")
		if missingID.Type == typ {
			httpErr.WithPointer("/" + missingID.Field)
		}
		return httpErr
	case errors.As(err, &malformed):
		httpErr := NewHTTPError(http.StatusUnprocessableEntity, "%s", err.Error()).WithCode("malformed_relationship")
		if malformed.Type == typ {
			httpErr.WithPointer("/" + malformed.Relationship)
		}
		return httpErr
	default:
		return err
	}
}

// ToJSONAPIErrors converts err into JSON:API error objects
func ToJSONAPIErrors(err error, requestID string) []*jsonapi.Error {
	status := StatusFor(err)
	e := &jsonapi.Error{
		ID:     requestID,
		Status: &status,
		Code:   errorCodeFromStatus(status),
		Title:  http.StatusText(status),
		Detail: err.Error(),
	}

	var (
		httpErr     *HTTPError
		notFound    *serializer.SchemaNotFoundError
		missingID   *serializer.MissingIdentifierError
		malformed   *serializer.MalformedRelationshipError
		unsupported *serializer.UnsupportedDataError
	)
	switch {
	case errors.As(err, &httpErr):
		e.Code = httpErr.Code
		if httpErr.Pointer != "" {
			e.Source = &jsonapi.ErrorSource{Pointer: httpErr.Pointer}
		}
	case errors.As(err, &notFound):
		e.Code = "schema_not_found"
	case errors.As(err, &missingID):
		e.Code = "missing_identifier"
	case errors.As(err, &malformed):
		e.Code = "malformed_relationship"
	case errors.As(err, &unsupported):
		e.Code = "unsupported_data"
	}

	return []*jsonapi.Error{e}
}

// RenderErrors renders JSON:API error objects
func RenderErrors(w http.ResponseWriter, statusCode int, errs []*jsonapi.Error) {
	// Marshal errors BEFORE writing headers
	data, err := json.Marshal(map[string][]*jsonapi.Error{"errors": errs})
	if err != nil {
		// Fallback if marshaling fails
		w.Header().Set("Content-Type", JSONAPIMediaType)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errors":[{"status":"500","code":"internal_error","title":"Internal Server Error"}]}`))
		return
	}

	w.Header().Set("Content-Type", JSONAPIMediaType)
	w.WriteHeader(statusCode)
	w.Write(data)
}

// RenderError renders err as a single JSON:API error document
func RenderError(w http.ResponseWriter, err error, requestID string) {
	RenderErrors(w, StatusFor(err), ToJSONAPIErrors(err, requestID))
}

// errorCodeFromStatus maps HTTP status codes to error codes
func errorCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusNotAcceptable:
		return "not_acceptable"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	case http.StatusUnprocessableEntity:
		return "unprocessable_entity"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return "error"
	}
}
