package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"freshroute/internal/application/usecases"
)

// TrackingHandler serves last-known positions from the tracking pipeline
type TrackingHandler struct {
	trackingUseCase *usecases.TrackingUseCase
	logger          *slog.Logger
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(trackingUseCase *usecases.TrackingUseCase, logger *slog.Logger) *TrackingHandler {
	return &TrackingHandler{
		trackingUseCase: trackingUseCase,
		logger:          logger,
	}
}

// Handle handles tracking requests
func (h *TrackingHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/tracking/last/")
	if path == "" || strings.Contains(path, "/") {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	event, err := h.trackingUseCase.LastLocation(r.Context(), path)
	if err != nil {
		h.logger.Error("Failed to read last location", "error", err, "shipment_id", path)
		writeError(w, err)
		return
	}

	if event == nil {
		http.Error(w, "No known location", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, event)
}
