package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/userdir-api/internal/api/shared"
	"github.com/phrazzld/userdir-api/internal/platform/logger"
)

// pathID returns the raw {id} path parameter. Well-formedness is decided
// by UserDirectory, which rejects malformed IDs as invalid input.
func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 400 response when either step fails.
//
// Returns:
//   - true: req is populated and valid
//   - false: an error response has been written
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	if err := shared.DecodeJSON(w, r, req); err != nil {
		log.Debug("invalid request body", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}

	return true
}
