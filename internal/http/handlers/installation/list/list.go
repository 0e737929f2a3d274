// Package list implements the HTTP handler for the installation
// history view. Supports filtering by installation type and always
// carries the global per-type counts.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Tado3/Star-Space/internal/http/response"
	"github.com/Tado3/Star-Space/internal/lib/sl"
	"github.com/Tado3/Star-Space/internal/models"
	services "github.com/Tado3/Star-Space/internal/services/installation"
)

// Handler manages HTTP requests for listing installations.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business logic of listing installations.
type Service interface {
	List(ctx context.Context, typeFilter string) ([]*models.Installation, models.InstallationCounts, error)
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List installations
// @Description Returns installation records, newest first, with per-type counts. The type query parameter filters the list.
// @Tags Installations
// @Produce json
// @Param type query string false "Installation type filter" Enums(STARLINK, CCTV, NETWORKING, SOLAR)
// @Success 200 {object} map[string]any "Installation list"
// @Failure 400 {object} response.ErrorResponse "Unknown installation type"
// @Failure 500 {object} response.ErrorResponse "Server error"
// @Router /installations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.installation.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	typeFilter := r.URL.Query().Get("type")
	installations, counts, err := h.service.List(r.Context(), typeFilter)
	if err != nil {
		if errors.Is(err, services.ErrUnknownType) {
			log.Error("unknown installation type", slog.String("type", typeFilter))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown installation type"))
			return
		}
		log.Error("failed to list installations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list installations"))
		return
	}

	log.Info("listed installations", slog.Int("count", len(installations)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"installations": installations,
		"counts":        counts,
	}))
}
