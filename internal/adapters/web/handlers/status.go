package handlers

import (
	"log/slog"
	"net/http"

	"freshroute/internal/application/usecases"
)

// StatusHandler handles status requests
type StatusHandler struct {
	trackingUseCase *usecases.TrackingUseCase
	logger          *slog.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(trackingUseCase *usecases.TrackingUseCase, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{
		trackingUseCase: trackingUseCase,
		logger:          logger,
	}
}

// Handle handles status requests
func (h *StatusHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"current_mode":    string(h.trackingUseCase.GetMode()),
		"available_modes": []string{"live", "sim"},
		"tracking":        h.trackingUseCase.HubStats(),
		"status":          "running",
	})
}
