package apperr

import (
	"net/http"

	"github.com/5w1tchy/smart-library-api/internal/api/httpx"
	"github.com/5w1tchy/smart-library-api/internal/library"
	"go.uber.org/zap"
)

// Problem is the error body shared by every endpoint.
type Problem struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// Write renders err through the error envelope. Errors that are not a
// *library.Error become INTERNAL_ERROR. Server-side failures are logged
// with the request id when log is non-nil.
func Write(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	e := library.AsError(err)
	if e.Status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed",
			zap.String("request_id", httpx.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	httpx.WriteJSON(w, e.Status, Problem{
		Success: false,
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	})
}

// WriteStatus is a shortcut for errors that have no domain cause.
func WriteStatus(w http.ResponseWriter, status int, code, message string) {
	httpx.WriteJSON(w, status, Problem{Error: message, Code: code})
}
