package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/sigma-matching/api-server-go/internal/errors"
	"github.com/sigma-matching/api-server-go/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

// writeError sends the error to the client. Anything that is not an AppError
// is logged here and reaches the client only as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	if !apperrors.IsAppError(err) {
		log.Error().Err(err).Msg("unhandled error")
	}
	httputil.WriteError(w, err)
}
