package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"parkhub/backend/services/parking-service/internal/catalog"
	"parkhub/backend/services/parking-service/internal/service"
)

// ClientsHandler exposes the client and vehicle registry.
type ClientsHandler struct {
	svc    *service.ParkingService
	logger *zap.Logger
}

// NewClientsHandler builds the handler set.
func NewClientsHandler(svc *service.ParkingService, logger *zap.Logger) *ClientsHandler {
	return &ClientsHandler{svc: svc, logger: logger}
}

type registerClientRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HandleRegisterClient handles POST /clients.
func (h *ClientsHandler) HandleRegisterClient(w http.ResponseWriter, r *http.Request) {
	var req registerClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	client := catalog.Client{ID: req.ID, Name: req.Name}
	if err := h.svc.RegisterClient(r.Context(), client); err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

type registerVehicleRequest struct {
	Plate string `json:"plate"`
	Usage string `json:"usage"`
}

// HandleRegisterVehicle handles POST /clients/{client}/vehicles.
func (h *ClientsHandler) HandleRegisterVehicle(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("client")

	var req registerVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Usage == "" {
		req.Usage = string(catalog.UsageHourly)
	}

	vehicle := catalog.Vehicle{
		Plate:    req.Plate,
		ClientID: clientID,
		Usage:    catalog.UsageType(req.Usage),
	}
	if err := h.svc.RegisterVehicle(r.Context(), vehicle); err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}
