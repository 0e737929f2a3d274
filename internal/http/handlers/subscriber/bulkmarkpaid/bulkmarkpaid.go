// Package bulkmarkpaid implements the HTTP handler for recording the
// same payment on a set of subscribers at once.
package bulkmarkpaid

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/Tado3/Star-Space/internal/http/response"
	"github.com/Tado3/Star-Space/internal/lib/sl"
	libvalidate "github.com/Tado3/Star-Space/internal/lib/validate"
	"github.com/Tado3/Star-Space/internal/models"
)

// Handler manages HTTP requests for bulk payment recording.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the business logic of bulk payment recording.
type Service interface {
	BulkMarkPaid(ctx context.Context, req models.DummyBulkPayment) (*models.BulkResult, error)
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
// @Summary Record payments in bulk
// @Description Records the same payment for every listed subscriber. Missing ids are skipped silently; deactivated subscribers are excluded.
// @Tags Subscribers
// @Accept json
// @Produce json
// @Param request body models.DummyBulkPayment true "Subscriber ids and payment parameters"
// @Success 200 {object} map[string]any "Bulk operation result"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /subscribers/bulk/payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.bulkmarkpaid"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBulkPayment
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

	result, err := h.service.BulkMarkPaid(r.Context(), req)
	if err != nil {
		log.Error("failed to record bulk payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not record bulk payment"))
		return
	}

	log.Info("recorded bulk payment",
		slog.Int("requested", len(req.IDs)), slog.Int("updated", result.UpdatedCount))
	render.JSON(w, r, response.StatusOKWithData(result))
}
