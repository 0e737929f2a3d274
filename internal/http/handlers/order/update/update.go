// Package update implements the HTTP handler for editing an order.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/Tado3/Star-Space/internal/http/response"
	"github.com/Tado3/Star-Space/internal/lib/sl"
	libvalidate "github.com/Tado3/Star-Space/internal/lib/validate"
	"github.com/Tado3/Star-Space/internal/models"
	services "github.com/Tado3/Star-Space/internal/services/order"
)

// Handler manages HTTP requests for updating orders.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the business logic of updating an order.
type Service interface {
	Update(ctx context.Context, req models.DummyOrder, id int) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: libvalidate.New(),
	}
}

// ServeHTTP godoc
// @Summary Update an order
// @Description Replaces the fields of an order.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body models.DummyOrder true "Updated order data"
// @Success 200 {object} map[string]any "Order updated"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON or ID"
// @Failure 404 {object} response.ErrorResponse "Order not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /orders/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyOrder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("validation failed"))
		return
	}

	if err := h.service.Update(r.Context(), req, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Info("order not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("order not found"))
			return
		}
		log.Error("failed to update order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update order"))
		return
	}

	log.Info("updated order", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
