package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/murkotick/catalog-service/internal/app/catalog/domain"
)

// Keys of failures produced by the transport itself.
const (
	KeyUnknownKind     = "unknownKind"
	KeyInvalidBody     = "invalidBody"
	KeyInvalidPage     = "invalidPageNumber"
	KeyInvalidPageSize = "invalidPageSize"
	KeyInvalidPrice    = "invalidPrice"
	KeyIDMismatch      = "idMismatch"
	KeyUnauthorized    = "unauthorized"
	KeyForbidden       = "forbidden"
	KeyTooManyRequests = "tooManyRequests"
	KeyRequestTimeout  = "requestTimeout"
	KeyRequestCanceled = "requestCanceled"
	KeyUnexpected      = "unexpectedError"
)

// StatusClientClosedRequest is the non-standard status logged for requests
// whose client went away. Nobody reads the body.
const StatusClientClosedRequest = 499

// Envelope wraps every response body.
type Envelope struct {
	IsSuccess bool     `json:"isSuccess"`
	Data      any      `json:"data,omitempty"`
	Message   string   `json:"message,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{IsSuccess: true, Data: data})
}

// writeRejected reports business failures. They are expected outcomes, so
// the status is 200 and the keys tell the client what to fix.
func writeRejected(w http.ResponseWriter, keys ...string) {
	writeJSON(w, http.StatusOK, Envelope{IsSuccess: false, Errors: keys})
}

func writeFailure(w http.ResponseWriter, status int, key string) {
	writeJSON(w, status, Envelope{IsSuccess: false, Errors: []string{key}})
}

// errorWriter maps errors returned by usecases and queries to responses.
type errorWriter struct {
	logger *slog.Logger
	dev    bool
}

func (ew errorWriter) write(w http.ResponseWriter, r *http.Request, err error) {
	if de, ok := domain.AsError(err); ok {
		writeRejected(w, de.Key)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		ew.logger.WarnContext(r.Context(), "request timed out", "path", r.URL.Path, "error", err)
		writeFailure(w, http.StatusServiceUnavailable, KeyRequestTimeout)
		return
	}
	if errors.Is(err, context.Canceled) {
		ew.logger.DebugContext(r.Context(), "request canceled by client", "path", r.URL.Path, "error", err)
		writeFailure(w, StatusClientClosedRequest, KeyRequestCanceled)
		return
	}

	ew.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	body := Envelope{IsSuccess: false, Errors: []string{KeyUnexpected}}
	if ew.dev {
		body.Message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}
