package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"parkhub/backend/services/parking-service/internal/service"
)

// LotsHandler exposes lot provisioning.
type LotsHandler struct {
	svc    *service.ParkingService
	logger *zap.Logger
}

// NewLotsHandler builds the handler set.
func NewLotsHandler(svc *service.ParkingService, logger *zap.Logger) *LotsHandler {
	return &LotsHandler{svc: svc, logger: logger}
}

type createLotRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// HandleCreateLot handles POST /lots.
func (h *LotsHandler) HandleCreateLot(w http.ResponseWriter, r *http.Request) {
	var req createLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	summary, err := h.svc.CreateLot(r.Context(), req.Name, req.Capacity)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

// HandleListLots handles GET /lots.
func (h *LotsHandler) HandleListLots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lots": h.svc.Lots(r.Context()),
	})
}

type grantSpotsRequest struct {
	Count int `json:"count"`
}

// HandleGrantSpots handles POST /lots/{lot}/spots.
func (h *LotsHandler) HandleGrantSpots(w http.ResponseWriter, r *http.Request) {
	var req grantSpotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	summary, err := h.svc.GrantSpots(r.Context(), r.PathValue("lot"), req.Count)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
