package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"freshroute/internal/domain/apperrors"
)

// errorBody is the structured failure response: every boundary operation
// returns either a success payload or this shape, never a partial result.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnsupportedProduce):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
		message = err.Error()
	}

	writeJSON(w, status, errorBody{Error: errorDetail{
		Kind:    apperrors.Kind(err),
		Message: message,
	}})
}
