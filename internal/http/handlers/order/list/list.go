// Package list implements the HTTP handler for the order log view.
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

// Handler manages HTTP requests for listing orders.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business logic of listing orders.
type Service interface {
	List(ctx context.Context) ([]*models.Order, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List orders
// @Description Returns all orders, newest first.
// @Tags Orders
// @Produce json
// @Success 200 {object} map[string]any "Order list"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	orders, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list orders"))
		return
	}

	log.Info("listed orders", slog.Int("count", len(orders)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"orders": orders,
	}))
}
