package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/phrazzld/userdir-api/internal/platform/logger"
	"github.com/phrazzld/userdir-api/internal/redact"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes data as a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).Error("failed to encode JSON response",
			"error", err)
	}
}

// RespondWithStatus writes a bodyless response with the given status code.
func RespondWithStatus(w http.ResponseWriter, r *http.Request, status int) {
	w.WriteHeader(status)
}

// RespondWithError writes message and the request's trace ID as the error
// body. The cause goes to the log only, redacted: at ERROR for 5xx statuses
// and DEBUG otherwise, since client mistakes are routine.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, cause error) {
	traceID := GetTraceID(r.Context())

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	}
	if traceID != "" {
		attrs = append(attrs, slog.String("trace_id", traceID))
	}
	if cause != nil {
		attrs = append(attrs, slog.String("error", redact.Error(cause)))
	}

	logger.FromContextOrDefault(r.Context(), slog.Default()).
		LogAttrs(r.Context(), level, "request failed", attrs...)

	RespondWithJSON(w, r, status, ErrorResponse{Error: message, TraceID: traceID})
}
