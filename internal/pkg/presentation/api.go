package presentation

import (
	"compress/flate"
	"context"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/observations"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/things"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/viewer"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/presentation/handlers"
	"github.com/riandyrn/otelchi"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	Start(port string) error
}

type sensordataAPI struct {
	router chi.Router
	log    zerolog.Logger
}

func NewAPI(ctx context.Context, r chi.Router, thingSvc things.ThingService, obsSvc observations.ObservationService, registry *viewer.Registry, encoder geometry.Encoder) API {
	return newSensordataAPI(ctx, r, thingSvc, obsSvc, registry, encoder)
}

func newSensordataAPI(ctx context.Context, r chi.Router, thingSvc things.ThingService, obsSvc observations.ObservationService, registry *viewer.Registry, encoder geometry.Encoder) *sensordataAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
		ExposedHeaders:   []string{"Location"},
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"application/json", "application/problem+json",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("sensordata-api", otelchi.WithChiRoutes(r)))

	a := &sensordataAPI{
		router: r,
		log:    log,
	}

	a.addThingHandlers(r, log, thingSvc, obsSvc, encoder)
	a.addSessionHandlers(r, log, registry)
	a.addProbeHandlers(r)

	return a
}

func (a *sensordataAPI) Start(port string) error {
	a.log.Info().Msgf("Starting sensordata-api on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *sensordataAPI) addThingHandlers(r chi.Router, log zerolog.Logger, thingSvc things.ThingService, obsSvc observations.ObservationService, encoder geometry.Encoder) {
	r.Get(
		"/api/things",
		handlers.NewRetrieveThingsHandler(log, thingSvc, encoder),
	)
	r.Get(
		"/api/observations",
		handlers.NewRetrieveObservationsHandler(log, obsSvc),
	)
	r.Post(
		"/api/charts",
		handlers.NewCreateChartsHandler(log, obsSvc),
	)
}

func (a *sensordataAPI) addSessionHandlers(r chi.Router, log zerolog.Logger, registry *viewer.Registry) {
	r.Post("/api/sessions", handlers.NewCreateSessionHandler(log, registry))

	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Get("/", handlers.NewRetrieveSessionHandler(log, registry))
		r.Get("/series", handlers.NewRetrieveSessionSeriesHandler(log, registry))
		r.Put("/selection", handlers.NewUpdateSelectionHandler(log, registry))

		r.Post("/drawing", handlers.NewStartDrawingHandler(log, registry))
		r.Put("/drawing", handlers.NewEditDrawingHandler(log, registry))
		r.Delete("/drawing", handlers.NewClearDrawingHandler(log, registry))
		r.Post("/drawing/complete", handlers.NewCompleteDrawingHandler(log, registry))
	})
}

func (a *sensordataAPI) addProbeHandlers(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
