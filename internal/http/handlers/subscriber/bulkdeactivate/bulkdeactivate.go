// Package bulkdeactivate implements the HTTP handler for suspending a
// set of subscribers at once.
package bulkdeactivate

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

// Handler manages HTTP requests for bulk deactivation.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the business logic of bulk deactivation.
type Service interface {
	BulkDeactivate(ctx context.Context, req models.DummyBulkDeactivate) (*models.BulkResult, error)
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
// @Summary Deactivate subscribers in bulk
// @Description Suspends every listed subscriber with a shared reason. Missing ids are skipped silently.
// @Tags Subscribers
// @Accept json
// @Produce json
// @Param request body models.DummyBulkDeactivate true "Subscriber ids and reason"
// @Success 200 {object} map[string]any "Bulk operation result"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /subscribers/bulk/deactivate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.bulkdeactivate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBulkDeactivate
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

	result, err := h.service.BulkDeactivate(r.Context(), req)
	if err != nil {
		log.Error("failed to deactivate in bulk", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not deactivate in bulk"))
		return
	}

	log.Info("deactivated in bulk",
		slog.Int("requested", len(req.IDs)), slog.Int("updated", result.UpdatedCount))
	render.JSON(w, r, response.StatusOKWithData(result))
}
