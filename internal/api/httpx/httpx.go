package httpx

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the success body shared by every endpoint.
type Envelope struct {
	Success    bool      `json:"success"`
	Data       any       `json:"data,omitempty"`
	Pagination any       `json:"pagination,omitempty"`
	Message    string    `json:"message,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a success envelope with the given status.
func OK(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// Paged writes a list envelope.
func Paged(w http.ResponseWriter, data, pagination any) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Timestamp:  time.Now().UTC(),
	})
}

type ctxKey int

const ctxKeyRequestID ctxKey = iota

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, rid)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}
