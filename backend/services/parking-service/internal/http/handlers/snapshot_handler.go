package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"parkhub/backend/services/parking-service/internal/service"
)

// NewSnapshotHandler returns POST /admin/snapshot, persisting the full
// service state on demand.
func NewSnapshotHandler(svc *service.ParkingService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.SaveState(r.Context()); err != nil {
			logger.Error("snapshot save failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save snapshot")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
	}
}
