package starspace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Tado3/Star-Space/internal/http/handlers/dashboard"
	"github.com/Tado3/Star-Space/internal/http/handlers/health"
	installationcreate "github.com/Tado3/Star-Space/internal/http/handlers/installation/create"
	installationlist "github.com/Tado3/Star-Space/internal/http/handlers/installation/list"
	installationread "github.com/Tado3/Star-Space/internal/http/handlers/installation/read"
	installationupdate "github.com/Tado3/Star-Space/internal/http/handlers/installation/update"
	ordercreate "github.com/Tado3/Star-Space/internal/http/handlers/order/create"
	orderlist "github.com/Tado3/Star-Space/internal/http/handlers/order/list"
	orderread "github.com/Tado3/Star-Space/internal/http/handlers/order/read"
	orderremove "github.com/Tado3/Star-Space/internal/http/handlers/order/remove"
	orderupdate "github.com/Tado3/Star-Space/internal/http/handlers/order/update"
	"github.com/Tado3/Star-Space/internal/http/handlers/subscriber/bulkdeactivate"
	"github.com/Tado3/Star-Space/internal/http/handlers/subscriber/bulkmarkpaid"
	subscribercreate "github.com/Tado3/Star-Space/internal/http/handlers/subscriber/create"
	"github.com/Tado3/Star-Space/internal/http/handlers/subscriber/deactivate"
	"github.com/Tado3/Star-Space/internal/http/handlers/subscriber/duesoon"
	subscriberlist "github.com/Tado3/Star-Space/internal/http/handlers/subscriber/list"
	"github.com/Tado3/Star-Space/internal/http/handlers/subscriber/markpaid"
	"github.com/Tado3/Star-Space/internal/http/handlers/subscriber/overdue"
	"github.com/Tado3/Star-Space/internal/http/handlers/subscriber/reactivate"
	subscriberread "github.com/Tado3/Star-Space/internal/http/handlers/subscriber/read"
	subscriberupdate "github.com/Tado3/Star-Space/internal/http/handlers/subscriber/update"
	"github.com/Tado3/Star-Space/internal/http/middlewarectx"
	installationservice "github.com/Tado3/Star-Space/internal/services/installation"
	orderservice "github.com/Tado3/Star-Space/internal/services/order"
	statsservice "github.com/Tado3/Star-Space/internal/services/stats"
	subscriberservice "github.com/Tado3/Star-Space/internal/services/subscriber"
)

// RegisterRoutes registers every route of the application.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	subscriberService *subscriberservice.SubscriberService,
	installationService *installationservice.InstallationService,
	orderService *orderservice.OrderService,
	statsService *statsservice.StatsService,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Get("/dashboard", dashboard.New(logger, statsService).ServeHTTP)

		r.Post("/subscribers", subscribercreate.New(logger, subscriberService).ServeHTTP)
		r.Get("/subscribers", subscriberlist.New(logger, subscriberService).ServeHTTP)
		r.Get("/subscribers/due-soon", duesoon.New(logger, subscriberService).ServeHTTP)
		r.Get("/subscribers/overdue", overdue.New(logger, subscriberService).ServeHTTP)
		r.Post("/subscribers/bulk/payment", bulkmarkpaid.New(logger, subscriberService).ServeHTTP)
		r.Post("/subscribers/bulk/deactivate", bulkdeactivate.New(logger, subscriberService).ServeHTTP)
		r.Get("/subscribers/{id}", subscriberread.New(logger, subscriberService).ServeHTTP)
		r.Put("/subscribers/{id}", subscriberupdate.New(logger, subscriberService).ServeHTTP)
		r.Post("/subscribers/{id}/payment", markpaid.New(logger, subscriberService).ServeHTTP)
		r.Post("/subscribers/{id}/deactivate", deactivate.New(logger, subscriberService).ServeHTTP)
		r.Post("/subscribers/{id}/reactivate", reactivate.New(logger, subscriberService).ServeHTTP)

		r.Post("/installations", installationcreate.New(logger, installationService).ServeHTTP)
		r.Get("/installations", installationlist.New(logger, installationService).ServeHTTP)
		r.Get("/installations/{id}", installationread.New(logger, installationService).ServeHTTP)
		r.Put("/installations/{id}", installationupdate.New(logger, installationService).ServeHTTP)

		r.Post("/orders", ordercreate.New(logger, orderService).ServeHTTP)
		r.Get("/orders", orderlist.New(logger, orderService).ServeHTTP)
		r.Get("/orders/{id}", orderread.New(logger, orderService).ServeHTTP)
		r.Put("/orders/{id}", orderupdate.New(logger, orderService).ServeHTTP)
		r.Delete("/orders/{id}", orderremove.New(logger, orderService).ServeHTTP)

		r.Get("/health", health.New(logger).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
