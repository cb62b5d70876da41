package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"parkhub/backend/services/parking-service/internal/service"
)

const defaultTopClients = 5

// ReportsHandler exposes the revenue and usage reports.
type ReportsHandler struct {
	svc    *service.ParkingService
	logger *zap.Logger
}

// NewReportsHandler builds the handler set.
func NewReportsHandler(svc *service.ParkingService, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{svc: svc, logger: logger}
}

func parseMonth(raw string) (time.Month, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}

// HandleTotalRevenue handles GET /lots/{lot}/reports/revenue.
func (h *ReportsHandler) HandleTotalRevenue(w http.ResponseWriter, r *http.Request) {
	lot := r.PathValue("lot")
	total, err := h.svc.TotalRevenue(r.Context(), lot)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"lot": lot, "total": total})
}

// HandleRevenueInMonth handles GET /lots/{lot}/reports/revenue/{month}.
func (h *ReportsHandler) HandleRevenueInMonth(w http.ResponseWriter, r *http.Request) {
	lot := r.PathValue("lot")
	month, ok := parseMonth(r.PathValue("month"))
	if !ok {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	total, err := h.svc.RevenueInMonth(r.Context(), lot, month)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lot":   lot,
		"month": int(month),
		"total": total,
	})
}

// HandleAverageFee handles GET /lots/{lot}/reports/average-fee.
func (h *ReportsHandler) HandleAverageFee(w http.ResponseWriter, r *http.Request) {
	lot := r.PathValue("lot")
	average, err := h.svc.AverageFeePerUse(r.Context(), lot)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"lot": lot, "average": average})
}

// HandleTopClients handles GET /lots/{lot}/reports/top-clients?month=&limit=.
func (h *ReportsHandler) HandleTopClients(w http.ResponseWriter, r *http.Request) {
	lot := r.PathValue("lot")

	month, ok := parseMonth(r.URL.Query().Get("month"))
	if !ok {
		writeError(w, http.StatusBadRequest, "month query parameter must be between 1 and 12")
		return
	}
	limit := defaultTopClients
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	ranking, err := h.svc.TopClients(r.Context(), lot, month, limit)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lot":     lot,
		"month":   int(month),
		"clients": ranking,
	})
}

// HandleSubscriberUsage handles GET /lots/{lot}/reports/subscriber-usage.
// Without a month query parameter it reports the current month.
func (h *ReportsHandler) HandleSubscriberUsage(w http.ResponseWriter, r *http.Request) {
	lot := r.PathValue("lot")

	month := time.Now().UTC().Month()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, ok := parseMonth(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "month query parameter must be between 1 and 12")
			return
		}
		month = parsed
	}

	average, err := h.svc.SubscriberUsage(r.Context(), lot, month)
	if err != nil {
		writeBusinessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lot":     lot,
		"month":   int(month),
		"average": average,
	})
}

// HandleRevenueByLot handles GET /reports/revenue-by-lot.
func (h *ReportsHandler) HandleRevenueByLot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lots": h.svc.RevenueByLot(r.Context()),
	})
}
