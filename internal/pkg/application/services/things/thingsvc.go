package things

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/infrastructure/sensorthings"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("sensordata-api/svcs/things")

//go:generate moq -rm -out thingsvc_mock.go . ThingService
type ThingService interface {
	Query() ThingServiceQuery
	GetAll() ([]domain.Thing, bool)
	Refresh(ctx context.Context) (int, error)

	Start()
	Shutdown()
}

//go:generate moq -rm -out thingsvcquery_mock.go . ThingServiceQuery
type ThingServiceQuery interface {
	Intersecting(wkt string) ThingServiceQuery
	Filter() string
	Err() error
	Get(ctx context.Context) ([]domain.Thing, error)
}

func NewThingService(ctx context.Context, logger zerolog.Logger, client *sensorthings.Client, profile sensorthings.Profile) ThingService {
	svc := &thingSvc{
		ctx:             ctx,
		log:             logger,
		client:          client,
		profile:         profile,
		things:          []domain.Thing{},
		refreshInterval: 5 * time.Minute,
		retryInterval:   10 * time.Second,
	}

	return svc
}

type thingSvc struct {
	client  *sensorthings.Client
	profile sensorthings.Profile

	thingMutex sync.Mutex
	things     []domain.Thing
	refreshed  bool

	refreshInterval time.Duration
	retryInterval   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger
}

type tsq struct {
	svc    *thingSvc
	filter string
	query  string
	err    error
}

func (svc *thingSvc) Query() ThingServiceQuery {
	q := tsq{svc: svc}
	q.query, q.err = BuildQuery(svc.profile, "")
	return q
}

//Intersecting restricts the query to Things located within the WKT polygon.
//An empty polygon restores the whole domain.
func (q tsq) Intersecting(wkt string) ThingServiceQuery {
	q.filter = wkt
	q.query, q.err = BuildQuery(q.svc.profile, wkt)
	return q
}

func (q tsq) Filter() string {
	return q.filter
}

func (q tsq) Err() error {
	return q.err
}

func (q tsq) Get(ctx context.Context) ([]domain.Thing, error) {
	var err error
	ctx, span := tracer.Start(ctx, "retrieve-things")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if q.err != nil {
		err = q.err
		return nil, err
	}

	response := sensorthings.Collection{}
	err = q.svc.client.Get(ctx, q.svc.profile.ThingsPath, q.query, &response)
	if err != nil {
		err = fmt.Errorf("failed to retrieve things: %w", err)
		return nil, err
	}

	return normalizeThings(q.svc.profile, response.Value), nil
}

//GetAll returns the unfiltered Thing set from the last successful refresh
func (svc *thingSvc) GetAll() ([]domain.Thing, bool) {
	svc.thingMutex.Lock()
	defer svc.thingMutex.Unlock()

	return svc.things, svc.refreshed
}

func (svc *thingSvc) Start() {
	svc.log.Info().Msg("starting thing service")

	svc.thingMutex.Lock()
	defer svc.thingMutex.Unlock()

	if svc.cancel != nil {
		return
	}

	var ctx context.Context
	ctx, svc.cancel = context.WithCancel(svc.ctx)
	go svc.run(ctx)
}

func (svc *thingSvc) Shutdown() {
	svc.log.Info().Msg("shutting down thing service")

	svc.thingMutex.Lock()
	defer svc.thingMutex.Unlock()

	if svc.cancel != nil {
		svc.cancel()
	}
}

func (svc *thingSvc) run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			svc.log.Info().Msg("thing service exiting")
			return
		case <-timer.C:
			svc.log.Info().Msg("refreshing thing info")
			count, err := svc.Refresh(ctx)

			if err != nil {
				svc.log.Error().Err(err).Msg("failed to refresh things")
				timer.Reset(svc.retryInterval)
			} else {
				svc.log.Info().Msgf("refreshed %d things", count)
				timer.Reset(svc.refreshInterval)
			}
		}
	}
}

func (svc *thingSvc) Refresh(ctx context.Context) (int, error) {
	var err error
	ctx, span := tracer.Start(ctx, "refresh-things")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, svc.log, ctx)

	things, err := svc.Query().Get(ctx)
	if err != nil {
		return 0, err
	}

	svc.thingMutex.Lock()
	defer svc.thingMutex.Unlock()

	svc.things = things
	svc.refreshed = true

	return len(things), nil
}
