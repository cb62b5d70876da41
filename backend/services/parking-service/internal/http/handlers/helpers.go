package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"parkhub/backend/services/parking-service/internal/catalog"
	"parkhub/backend/services/parking-service/internal/parking"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeBusinessError maps core errors to HTTP statuses and exposes the
// error text; unexpected errors stay opaque.
func writeBusinessError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, parking.ErrLotNotFound),
		errors.Is(err, parking.ErrVehicleNotRegistered),
		errors.Is(err, parking.ErrVehicleNotParked),
		errors.Is(err, catalog.ErrClientNotFound):
		return http.StatusNotFound
	case errors.Is(err, parking.ErrLotFull),
		errors.Is(err, parking.ErrVehicleAlreadyParked),
		errors.Is(err, parking.ErrSessionClosed),
		errors.Is(err, parking.ErrServiceAttached),
		errors.Is(err, parking.ErrLotExists),
		errors.Is(err, catalog.ErrClientExists),
		errors.Is(err, catalog.ErrVehicleExists):
		return http.StatusConflict
	case errors.Is(err, parking.ErrMinimumStayNotMet),
		errors.Is(err, parking.ErrInvalidInterval),
		errors.Is(err, parking.ErrInvalidCapacity),
		errors.Is(err, parking.ErrUnknownService),
		errors.Is(err, catalog.ErrInvalidClient),
		errors.Is(err, catalog.ErrInvalidPlate),
		errors.Is(err, catalog.ErrInvalidUsage):
		return http.StatusUnprocessableEntity
	default:
		// Includes ErrSpotUnavailable and ErrSpotReleaseInconsistent,
		// which indicate an invariant breach rather than caller error.
		return http.StatusInternalServerError
	}
}
