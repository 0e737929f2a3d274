// Package deactivate implements the HTTP handler for suspending one
// subscriber.
package deactivate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Tado3/Star-Space/internal/http/response"
	"github.com/Tado3/Star-Space/internal/lib/sl"
	"github.com/Tado3/Star-Space/internal/models"
	services "github.com/Tado3/Star-Space/internal/services/subscriber"
)

// Handler manages HTTP requests for deactivating a subscriber.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business logic of deactivating a subscriber.
type Service interface {
	Deactivate(ctx context.Context, id int, reason string) error
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Deactivate a subscriber
// @Description Suspends a subscriber with an optional reason. Deactivating an already deactivated subscriber overwrites the timestamp and reason.
// @Tags Subscribers
// @Accept json
// @Produce json
// @Param id path int true "Subscriber ID"
// @Param request body models.DummyDeactivate false "Deactivation reason"
// @Success 200 {object} map[string]any "Subscriber deactivated"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON or ID"
// @Failure 404 {object} response.ErrorResponse "Subscriber not found"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /subscribers/{id}/deactivate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.deactivate"
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

	// The body is optional: no body means no recorded reason.
	var req models.DummyDeactivate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.Deactivate(r.Context(), id, req.Reason); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Info("subscriber not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscriber not found"))
			return
		}
		log.Error("failed to deactivate subscriber", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not deactivate subscriber"))
		return
	}

	log.Info("deactivated subscriber", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
