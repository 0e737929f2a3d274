// Package reactivate implements the HTTP handler for restoring a
// deactivated subscriber.
package reactivate

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
	services "github.com/Tado3/Star-Space/internal/services/subscriber"
)

// Handler manages HTTP requests for reactivating a subscriber.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business logic of reactivating a subscriber.
type Service interface {
	Reactivate(ctx context.Context, id int) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Reactivate a subscriber
// @Description Clears the deactivation state of a subscriber. A no-op on an already active subscriber.
// @Tags Subscribers
// @Produce json
// @Param id path int true "Subscriber ID"
// @Success 200 {object} map[string]any "Subscriber reactivated"
// @Failure 400 {object} response.ErrorResponse "Invalid ID"
// @Failure 404 {object} response.ErrorResponse "Subscriber not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /subscribers/{id}/reactivate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.reactivate"
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

	if err := h.service.Reactivate(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Info("subscriber not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber not found"))
			return
		}
		log.Error("failed to reactivate subscriber", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reactivate subscriber"))
		return
	}

	log.Info("reactivated subscriber", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
