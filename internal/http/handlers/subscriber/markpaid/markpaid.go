// Package markpaid implements the HTTP handler for recording a payment
// on one subscriber.
package markpaid

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/Tado3/Star-Space/internal/http/response"
	"github.com/Tado3/Star-Space/internal/lib/sl"
	libvalidate "github.com/Tado3/Star-Space/internal/lib/validate"
	"github.com/Tado3/Star-Space/internal/models"
	services "github.com/Tado3/Star-Space/internal/services/subscriber"
)

// Handler manages HTTP requests for recording a payment.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the business logic of recording a payment.
type Service interface {
	MarkPaid(ctx context.Context, id int, req models.DummyPayment) (time.Time, error)
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
// @Summary Record a payment
// @Description Records a payment for a subscriber and advances the next due date by 30 days per month paid. An empty body means paid today for one month.
// @Tags Subscribers
// @Accept json
// @Produce json
// @Param id path int true "Subscriber ID"
// @Param request body models.DummyPayment false "Payment parameters"
// @Success 200 {object} map[string]any "New next subscription date"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON or ID"
// @Failure 404 {object} response.ErrorResponse "Subscriber not found"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /subscribers/{id}/payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.markpaid"
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

	// The body is optional: no body means paid today for one month.
	var req models.DummyPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
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

	next, err := h.service.MarkPaid(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Info("subscriber not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber not found"))
			return
		}
		log.Error("failed to record payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not record payment"))
		return
	}

	log.Info("recorded payment", slog.Int("id", id), slog.Time("next_due", next))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":                     id,
		"next_subscription_date": next.Format("2006-01-02"),
	}))
}
