package handlers

import (
	"log/slog"
	"net/http"

	"freshroute/internal/application/ports"
)

// ProduceHandler serves the supported produce catalog
type ProduceHandler struct {
	catalog ports.ProduceCatalogPort
	logger  *slog.Logger
}

// NewProduceHandler creates a new produce handler
func NewProduceHandler(catalog ports.ProduceCatalogPort, logger *slog.Logger) *ProduceHandler {
	return &ProduceHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle handles produce catalog requests
func (h *ProduceHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"produce": h.catalog.List()})
}
