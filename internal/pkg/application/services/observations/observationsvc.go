package observations

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/cache"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/sensorthings"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("sensordata-api/svcs/observations")

var ErrJoin = errors.New("failed to retrieve all observation series")

//go:generate moq -rm -out observationsvc_mock.go . ObservationService
type ObservationService interface {
	FetchAll(ctx context.Context, datastreamIDs []string) ([]domain.ObservationSeries, error)
}

func NewObservationService(client *sensorthings.Client, profile sensorthings.Profile, c cache.ObservationCache) ObservationService {
	if c == nil {
		c = cache.NewNoopCache()
	}

	return &obsSvc{
		client:  client,
		profile: profile,
		cache:   c,
	}
}

type obsSvc struct {
	client  *sensorthings.Client
	profile sensorthings.Profile
	cache   cache.ObservationCache
}

//FetchAll retrieves the observations of every datastream concurrently. The result
//has one series per distinct id, in the order the ids were first given. If any
//retrieval fails the remaining ones are canceled and no series are returned.
func (svc *obsSvc) FetchAll(ctx context.Context, datastreamIDs []string) ([]domain.ObservationSeries, error) {
	var err error
	ctx, span := tracer.Start(ctx, "retrieve-observations")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	ids := distinct(datastreamIDs)
	span.SetAttributes(attribute.Int("datastreams", len(ids)))

	series := make([]domain.ObservationSeries, len(ids))
	if len(ids) == 0 {
		return series, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			s, err := svc.fetch(gctx, id)
			if err != nil {
				return fmt.Errorf("datastream %s: %w", id, err)
			}
			series[i] = s
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		err = fmt.Errorf("%w: %w", ErrJoin, err)
		return nil, err
	}

	return series, nil
}

func (svc *obsSvc) fetch(ctx context.Context, id string) (domain.ObservationSeries, error) {
	var err error
	ctx, span := tracer.Start(ctx, "retrieve-datastream-observations")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	span.SetAttributes(attribute.String("datastream", id))

	if cached, ok := svc.cache.Get(ctx, id); ok {
		logger := logging.GetFromContext(ctx)
		logger.Debug().Str("datastream", id).Msg("observations served from cache")
		return cached, nil
	}

	expand := fmt.Sprintf("%s($select=result,phenomenonTime)", svc.profile.ObservationsExpand)
	query := "$expand=" + sensorthings.Escape(expand)

	response := sensorthings.Entity{}
	err = svc.client.Get(ctx, sensorthings.EntityPath(svc.profile.DatastreamsPath, id), query, &response)
	if err != nil {
		return domain.ObservationSeries{}, err
	}

	series := normalizeSeries(svc.profile, id, response)
	svc.cache.Set(ctx, series)

	return series, nil
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result
}
