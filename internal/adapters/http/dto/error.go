package dto

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// FaultMessage is the only detail a caller sees for an unhandled failure.
const FaultMessage = "Internal Server Error"

// FaultResponse is the opaque body written by the failure trap.
type FaultResponse struct {
	Error string `json:"error"`
}

// WriteFault writes a 500 with {"error":"Internal Server Error"}. The cause
// is never part of the body.
func WriteFault(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	if err := json.NewEncoder(w).Encode(FaultResponse{Error: FaultMessage}); err != nil {
		slog.Error("failed to encode fault response", slog.Any("error", err))
	}
}

// ErrorResponse represents an RFC 9457 Problem Details response. It is used
// for routing failures such as unknown paths or methods and for timeouts.
type ErrorResponse struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// NewErrorResponse creates an ErrorResponse for status. The request URI is
// used as the instance.
func NewErrorResponse(r *http.Request, status int, detail string) ErrorResponse {
	return ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.RequestURI,
	}
}

// WriteErrorResponse writes an RFC 9457 error response with Content-Type
// application/problem+json.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, status int, detail string) {
	resp := NewErrorResponse(r, status, detail)

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(resp.Status)

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		slog.ErrorContext(r.Context(), "failed to encode error response",
			slog.Any("error", encErr),
		)
	}
}
