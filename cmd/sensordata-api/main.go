package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/observations"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/things"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/viewer"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/cache"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/sensorthings"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/presentation"
)

var profileFileName string

func loadProfile(ctx context.Context, path string) sensorthings.Profile {
	log := logging.GetFromContext(ctx)

	profileFile, err := os.Open(path)
	if err != nil {
		log.Info().Msgf("failed to open the sensorthings profile %s, using defaults.", path)
		return sensorthings.DefaultProfile()
	}
	defer profileFile.Close()

	profile, err := sensorthings.LoadProfile(profileFile)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid sensorthings profile %s", path)
	}

	return profile
}

func durationOrDefault(ctx context.Context, name string, def time.Duration) time.Duration {
	log := logging.GetFromContext(ctx)

	value := env.GetVariableOrDefault(log, name, def.String())
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Warn().Msgf("ignoring invalid duration %q in %s, using %s", value, name, def)
		return def
	}

	return d
}

func newObservationCache(ctx context.Context) cache.ObservationCache {
	log := logging.GetFromContext(ctx)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return cache.NewNoopCache()
	}

	ttl := durationOrDefault(ctx, "OBSERVATION_CACHE_TTL", 5*time.Minute)

	c, err := cache.NewRedisCacheFromURL(ctx, redisURL, ttl)
	if err != nil {
		log.Error().Err(err).Msg("observation cache unavailable, continuing without it")
		return cache.NewNoopCache()
	}

	return c
}

func main() {
	serviceName := "sensordata-api"
	serviceVersion := buildinfo.SourceVersion()

	_ = godotenv.Load()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&profileFileName, "profile", "/opt/sensordata/sensorthings.yaml", "A YAML file describing the SensorThings query grammar")
	flag.Parse()

	profile := loadProfile(ctx, profileFileName)

	sensorthingsURL := env.GetVariableOrDefault(log, "SENSORTHINGS_URL", sensorthings.DefaultBaseURL)
	port := env.GetVariableOrDefault(log, "SERVICE_PORT", "8880")
	sessionTTL := durationOrDefault(ctx, "SESSION_TTL", viewer.DefaultSessionTTL)

	client := sensorthings.NewClient(sensorthingsURL)

	thingSvc := things.NewThingService(ctx, log, client, profile)
	thingSvc.Start()
	defer thingSvc.Shutdown()

	obsSvc := observations.NewObservationService(client, profile, newObservationCache(ctx))

	registry := viewer.NewRegistry(thingSvc, obsSvc, things.NewEncoder(profile), sessionTTL)
	registry.Start(ctx)

	api := presentation.NewAPI(ctx, chi.NewRouter(), thingSvc, obsSvc, registry, things.NewEncoder(profile))

	err := api.Start(port)
	if err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}
