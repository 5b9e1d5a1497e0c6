package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"freshroute/internal/application/usecases"
	"freshroute/internal/domain/models"
)

// ModeHandler handles feed mode switching requests
type ModeHandler struct {
	trackingUseCase *usecases.TrackingUseCase
	logger          *slog.Logger
}

// NewModeHandler creates a new mode handler
func NewModeHandler(trackingUseCase *usecases.TrackingUseCase, logger *slog.Logger) *ModeHandler {
	return &ModeHandler{
		trackingUseCase: trackingUseCase,
		logger:          logger,
	}
}

// Handle handles feed mode switching requests
func (h *ModeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "Method not allowed. Use POST.", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/mode/")

	var mode models.FeedMode
	switch path {
	case "live":
		mode = models.FeedModeLive
	case "sim":
		mode = models.FeedModeSim
	default:
		h.logger.Warn("Invalid feed mode requested", "mode", path)
		http.Error(w, "Invalid mode. Use 'live' or 'sim'.", http.StatusBadRequest)
		return
	}

	h.trackingUseCase.SetMode(mode)
	h.logger.Info("Feed mode switched", "new_mode", mode)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"mode":    string(mode),
		"message": "Feed mode switched successfully",
	})
}
