package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"freshroute/internal/application/usecases"
	"freshroute/internal/domain/apperrors"
)

// Default status coordinates when the client sends none (Puducherry).
const (
	defaultLat = 11.9139
	defaultLon = 79.8145
)

// ShipmentsHandler handles shipment lifecycle and freshness requests
type ShipmentsHandler struct {
	shipmentUseCase  *usecases.ShipmentUseCase
	freshnessUseCase *usecases.FreshnessUseCase
	logger           *slog.Logger
}

// NewShipmentsHandler creates a new shipments handler
func NewShipmentsHandler(shipmentUseCase *usecases.ShipmentUseCase, freshnessUseCase *usecases.FreshnessUseCase, logger *slog.Logger) *ShipmentsHandler {
	return &ShipmentsHandler{
		shipmentUseCase:  shipmentUseCase,
		freshnessUseCase: freshnessUseCase,
		logger:           logger,
	}
}

type startShipmentRequest struct {
	ProduceName   string  `json:"produce_name"`
	Quantity      float64 `json:"quantity"`
	StartLocation string  `json:"start_location"`
}

// Handle handles shipment requests
func (h *ShipmentsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/shipments/")
	parts := strings.Split(path, "/")

	switch {
	case parts[0] == "start" && r.Method == http.MethodPost:
		h.handleStart(w, r)
	case parts[0] == "status" && len(parts) == 2 && r.Method == http.MethodGet:
		h.handleStatus(w, r, parts[1])
	case parts[0] == "deliver" && len(parts) == 2 && r.Method == http.MethodPost:
		h.handleDeliver(w, r, parts[1])
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (h *ShipmentsHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Invalidf("malformed request body"))
		return
	}

	shipment, err := h.shipmentUseCase.Start(r.Context(), req.ProduceName, req.Quantity, req.StartLocation)
	if err != nil {
		h.logger.Error("Failed to start shipment", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Shipment started. Freshness timer initialized.",
		"shipment": shipment,
	})
}

func (h *ShipmentsHandler) handleStatus(w http.ResponseWriter, r *http.Request, id string) {
	lat, lon := coordsFromQuery(r)

	reading, err := h.freshnessUseCase.GetFreshness(r.Context(), id, lat, lon)
	if err != nil {
		h.logger.Error("Failed to compute freshness", "error", err, "shipment_id", id)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reading)
}

func (h *ShipmentsHandler) handleDeliver(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.shipmentUseCase.MarkDelivered(r.Context(), id); err != nil {
		h.logger.Error("Failed to mark delivered", "error", err, "shipment_id", id)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"shipment_id": id,
		"status":      "DELIVERED",
	})
}

// coordsFromQuery parses lat/lon query parameters, falling back to the
// default reference point when absent or malformed.
func coordsFromQuery(r *http.Request) (float64, float64) {
	lat, lon := defaultLat, defaultLon
	if v := r.URL.Query().Get("lat"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			lat = parsed
		}
	}
	if v := r.URL.Query().Get("lon"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			lon = parsed
		}
	}
	return lat, lon
}
