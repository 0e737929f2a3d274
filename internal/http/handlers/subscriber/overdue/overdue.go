// Package overdue implements the HTTP handler for the overdue report:
// subscribers past their due date, bucketed by severity, with the
// estimated outstanding revenue.
package overdue

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

// Handler manages HTTP requests for the overdue report.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business logic of the overdue report.
type Service interface {
	Overdue(ctx context.Context) (*models.OverdueReport, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Overdue report
// @Description Returns overdue subscribers with severity buckets and estimated revenue.
// @Tags Subscribers
// @Produce json
// @Success 200 {object} map[string]any "Overdue report"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /subscribers/overdue [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.overdue"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Overdue(r.Context())
	if err != nil {
		log.Error("failed to build overdue report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build overdue report"))
		return
	}

	log.Info("built overdue report", slog.Int("count", len(res.Subscribers)))
	render.JSON(w, r, response.StatusOKWithData(res))
}
