package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IsaacFdezPintor/studiosnap/internal/service"
)

// errorBody is the uniform error payload of the API.
type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message})
}

// writeServiceError maps a business error onto its HTTP status. Errors
// without a mapping are treated as internal and their detail is not
// leaked to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}
