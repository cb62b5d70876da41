package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"parkhub/backend/services/parking-service/internal/parking"
	"parkhub/backend/services/parking-service/internal/service"
)

// SessionsHandler exposes check-in, check-out and service contracting.
type SessionsHandler struct {
	svc    *service.ParkingService
	logger *zap.Logger
}

// NewSessionsHandler builds the handler set.
func NewSessionsHandler(svc *service.ParkingService, logger *zap.Logger) *SessionsHandler {
	return &SessionsHandler{svc: svc, logger: logger}
}

type plateRequest struct {
	Plate string `json:"plate"`
}

// HandleCheckIn handles POST /lots/{lot}/check-in.
func (h *SessionsHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req plateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Plate == "" {
		writeError(w, http.StatusBadRequest, "plate is required")
		return
	}

	result, err := h.svc.CheckIn(r.Context(), r.PathValue("lot"), req.Plate)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// HandleCheckOut handles POST /lots/{lot}/check-out.
func (h *SessionsHandler) HandleCheckOut(w http.ResponseWriter, r *http.Request) {
	var req plateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Plate == "" {
		writeError(w, http.StatusBadRequest, "plate is required")
		return
	}

	result, err := h.svc.CheckOut(r.Context(), r.PathValue("lot"), req.Plate)
	if err != nil {
		if errors.Is(err, parking.ErrSpotReleaseInconsistent) {
			h.logger.Error("spot release inconsistency detected",
				zap.String("lot", r.PathValue("lot")),
				zap.String("plate", req.Plate),
			)
		}
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type contractServiceRequest struct {
	Plate string `json:"plate"`
	Kind  string `json:"kind"`
}

// HandleContractService handles POST /lots/{lot}/services.
func (h *SessionsHandler) HandleContractService(w http.ResponseWriter, r *http.Request) {
	var req contractServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Plate == "" || req.Kind == "" {
		writeError(w, http.StatusBadRequest, "plate and kind are required")
		return
	}

	price, err := h.svc.ContractService(r.Context(), r.PathValue("lot"), req.Plate, parking.ServiceKind(req.Kind))
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plate":   req.Plate,
		"service": req.Kind,
		"price":   price,
	})
}
