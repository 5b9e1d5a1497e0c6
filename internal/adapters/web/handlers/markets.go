package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"freshroute/internal/application/usecases"
)

// MarketsHandler handles market catalog and recommendation requests
type MarketsHandler struct {
	marketUseCase *usecases.MarketUseCase
	logger        *slog.Logger
}

// NewMarketsHandler creates a new markets handler
func NewMarketsHandler(marketUseCase *usecases.MarketUseCase, logger *slog.Logger) *MarketsHandler {
	return &MarketsHandler{
		marketUseCase: marketUseCase,
		logger:        logger,
	}
}

// Handle handles market requests
func (h *MarketsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/markets"), "/")
	parts := strings.Split(path, "/")

	switch {
	case path == "" && r.Method == http.MethodGet:
		h.handleList(w, r)
	case parts[0] == "seed" && r.Method == http.MethodPost:
		h.handleSeed(w, r)
	case parts[0] == "recommend" && len(parts) == 2 && r.Method == http.MethodGet:
		h.handleRecommend(w, r, parts[1])
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (h *MarketsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	markets, err := h.marketUseCase.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list markets", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"markets": markets})
}

func (h *MarketsHandler) handleSeed(w http.ResponseWriter, r *http.Request) {
	count, err := h.marketUseCase.Seed(r.Context())
	if err != nil {
		h.logger.Error("Failed to seed markets", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "markets seeded",
		"count":   count,
	})
}

func (h *MarketsHandler) handleRecommend(w http.ResponseWriter, r *http.Request, shipmentID string) {
	lat, lon := coordsFromQuery(r)

	result, err := h.marketUseCase.Recommend(r.Context(), shipmentID, lat, lon)
	if err != nil {
		h.logger.Error("Failed to rank markets", "error", err, "shipment_id", shipmentID)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
