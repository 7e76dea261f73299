package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

// TreeHandler handles catalog and seeding HTTP requests
type TreeHandler struct {
	service *service.TreeService
	logger  *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(service *service.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		service: service,
		logger:  logger,
	}
}

// ListTrees handles GET /api/trees?size=<Small|Medium|Large>
func (h *TreeHandler) ListTrees(w http.ResponseWriter, r *http.Request) {
	size := r.URL.Query().Get("size")

	trees, err := h.service.ListTrees(r.Context(), size)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSize) {
			h.logger.Warn("invalid size filter", "size", size)
			WriteError(w, http.StatusBadRequest, "Invalid size", h.logger)
			return
		}
		h.logger.Error("failed to list trees", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.TreeList{Items: trees}, h.logger)
}

// Seed handles POST /api/admin/seed. An empty body seeds without overwriting.
func (h *TreeHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req models.SeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("failed to decode seed request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	inserted, err := h.service.Seed(r.Context(), req.Overwrite)
	if err != nil {
		h.logger.Error("failed to seed trees", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("demo trees seeded", "inserted", inserted, "overwrite", req.Overwrite)
	WriteJSON(w, http.StatusOK, models.SeedResponse{Inserted: inserted}, h.logger)
}
