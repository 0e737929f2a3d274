// Package dashboard implements the HTTP handler for the aggregate
// dashboard snapshot.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Tado3/Star-Space/internal/http/response"
	"github.com/Tado3/Star-Space/internal/lib/sl"
	"github.com/Tado3/Star-Space/internal/models"
)

// Handler manages HTTP requests for the dashboard.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business logic of assembling the dashboard.
type Service interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Dashboard snapshot
// @Description Returns installation counts, the latest installations and the subscriber status counters.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} map[string]any "Dashboard data"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build dashboard"))
		return
	}

	log.Info("built dashboard")
	render.JSON(w, r, response.StatusOKWithData(stats))
}
