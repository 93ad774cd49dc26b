package transport

import (
	"net/http"

	"nova-commerce/internal/middleware"
	"nova-commerce/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StatsHandler handles HTTP requests for the admin dashboard aggregates
type StatsHandler struct {
	statsService service.StatsService
	logger       *zap.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(statsService service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// RegisterRoutes registers the stats route, admin-only.
func (h *StatsHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Route("/api/stats", func(r chi.Router) {
		r.Use(adminOnly)
		r.Get("/", h.Dashboard)
	})
}

// Dashboard returns entity totals and the recent-activity projections
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Dashboard(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}
