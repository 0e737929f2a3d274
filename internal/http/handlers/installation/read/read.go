// Package read implements the HTTP handler for fetching one
// installation record by ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Tado3/Star-Space/internal/http/response"
	"github.com/Tado3/Star-Space/internal/lib/sl"
	"github.com/Tado3/Star-Space/internal/models"
	services "github.com/Tado3/Star-Space/internal/services/installation"
)

// Handler manages HTTP requests for reading an installation by ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business logic of reading an installation.
type Service interface {
	Read(ctx context.Context, id int) (*models.Installation, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Get an installation
// @Description Returns one installation record by its ID.
// @Tags Installations
// @Produce json
// @Param id path int true "Installation ID"
// @Success 200 {object} map[string]any "Installation data"
// @Failure 400 {object} response.ErrorResponse "Invalid ID"
// @Failure 404 {object} response.ErrorResponse "Installation not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /installations/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.installation.read"
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

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Info("installation not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("installation not found"))
			return
		}
		log.Error("failed to read installation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read installation"))
		return
	}

	log.Info("read installation", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"installation": res,
	}))
}
