// Package create implements the HTTP handler for recording a completed
// installation job.
package create

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

// Handler manages HTTP requests for creating installation records.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the business logic of creating an installation.
type Service interface {
	Create(ctx context.Context, req models.DummyInstallation) (int, error)
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
// @Summary Record an installation
// @Description Records a completed installation job. The type defaults to STARLINK when omitted.
// @Tags Installations
// @Accept json
// @Produce json
// @Param request body models.DummyInstallation true "Installation data"
// @Success 200 {object} map[string]any "Installation created"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 422 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /installations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.installation.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyInstallation
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

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

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create installation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create installation"))
		return
	}

	log.Info("created installation", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
