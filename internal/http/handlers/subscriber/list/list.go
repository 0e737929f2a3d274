// Package list implements the HTTP handler for the subscriber list
// view: every subscriber plus the status counters.
package list

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

// Handler manages HTTP requests for listing subscribers.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business logic of listing subscribers.
type Service interface {
	List(ctx context.Context) (*models.SubscriberList, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List subscribers
// @Description Returns all subscribers, deactivated last, with status counters.
// @Tags Subscribers
// @Produce json
// @Success 200 {object} map[string]any "Subscriber list"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /subscribers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscribers"))
		return
	}

	log.Info("listed subscribers", slog.Int("count", res.Counts.Total))
	render.JSON(w, r, response.StatusOKWithData(res))
}
