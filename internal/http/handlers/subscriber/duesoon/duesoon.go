// Package duesoon implements the HTTP handler for the due-soon report:
// subscribers whose payment falls due within the next week.
package duesoon

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

// Handler manages HTTP requests for the due-soon report.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business logic of the due-soon report.
type Service interface {
	DueSoon(ctx context.Context) (*models.DueSoonReport, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Due-soon report
// @Description Returns subscribers due within the next 7 days with the kit-type breakdown.
// @Tags Subscribers
// @Produce json
// @Success 200 {object} map[string]any "Due-soon report"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /subscribers/due-soon [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.duesoon"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.DueSoon(r.Context())
	if err != nil {
		log.Error("failed to build due-soon report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build due-soon report"))
		return
	}

	log.Info("built due-soon report", slog.Int("count", len(res.Subscribers)))
	render.JSON(w, r, response.StatusOKWithData(res))
}
