package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	trees  repository.TreeRepository
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(trees repository.TreeRepository, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		trees:  trees,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Trees     int       `json:"trees"`
}

// ServeHTTP handles health check requests. An empty catalog is healthy, it only means seeding is pending.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	trees, err := h.trees.List(r.Context(), "")
	if err != nil {
		h.logger.Error("health check failed", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "catalog unavailable", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Trees:     len(trees),
	}, h.logger)
}
