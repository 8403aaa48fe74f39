package http

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/domain"
	"io"
	"net/http"
	"time"
)

type contextKey string

// ContextKeyProduct holds the decoded domain.ProductInput of a request
const ContextKeyProduct contextKey = "product"

// maxBodyBytes caps the size of product request bodies
const maxBodyBytes = 1 << 20

// Middleware struct holds dependencies for middleware functions
type Middleware struct {
	Logger hclog.Logger
}

// NewMiddleware creates a new Middleware instance
func NewMiddleware(logger hclog.Logger) *Middleware {
	return &Middleware{Logger: logger}
}

// ContentTypeMiddleware sets the Content-Type header to application/json
func (m *Middleware) ContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware tags every request with an id and logs it on the way
// in and out, including the response status
func (m *Middleware) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		m.Logger.Debug("Incoming request",
			"method", r.Method,
			"url", r.URL.Path,
			"request_id", requestID,
		)

		w.Header().Set("X-Request-ID", requestID)

		completed := func(_ io.Writer, p handlers.LogFormatterParams) {
			m.Logger.Info("Completed request",
				"method", p.Request.Method,
				"url", p.URL.Path,
				"status", p.StatusCode,
				"size", p.Size,
				"request_id", requestID,
				"duration", time.Since(p.TimeStamp),
			)
		}

		handlers.CustomLoggingHandler(io.Discard, next, completed).ServeHTTP(w, r)
	})
}

// ProductInputMiddleware decodes the product body and adds it to the
// request context. Bodies that are not a single JSON object are rejected
// with 400.
func (m *Middleware) ProductInputMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input domain.ProductInput
		err := decodeSingleJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), &input)
		if err != nil {
			m.Logger.Debug("Error decoding product", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid product data"})
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyProduct, input)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// decodeSingleJSON decodes exactly one JSON value from r; anything but
// whitespace after it is an error
func decodeSingleJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func productInputFromContext(r *http.Request) (domain.ProductInput, bool) {
	input, ok := r.Context().Value(ContextKeyProduct).(domain.ProductInput)
	return input, ok
}

// notFoundHandler answers requests that match no route
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(ErrorResponse{Error: "Not found"})
}

// methodNotAllowedHandler answers requests whose path matches a route but
// whose method does not
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed"})
}
