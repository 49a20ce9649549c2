package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/observations"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/things"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/paulmach/orb"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("sensordata-api/viewer")

var (
	ErrStale         = errors.New("result superseded by a newer request")
	ErrNoSuchSession = errors.New("no such session")
)

//Marker places a Thing on the display surface
type Marker struct {
	ThingID  string    `json:"thingId"`
	Position orb.Point `json:"position"`
}

//Snapshot is the state published to a client. A new snapshot is created for
//every change and is never modified afterwards.
type Snapshot struct {
	ID             string               `json:"id"`
	Drawing        string               `json:"drawing"`
	Filter         string               `json:"filter"`
	Things         []domain.Thing       `json:"things"`
	Markers        []Marker             `json:"markers"`
	Selected       []string             `json:"selected"`
	Series         domain.GroupedSeries `json:"series"`
	DrawEpoch      uint64               `json:"drawEpoch"`
	SelectionEpoch uint64               `json:"selectionEpoch"`
}

//Session couples a drawing on the display surface with the Things found inside
//it and the observations of the Things the client selected
type Session struct {
	id           string
	things       things.ThingService
	observations observations.ObservationService
	encoder      geometry.Encoder
	display      domain.CRS

	captureMu sync.Mutex
	capture   *geometry.Capture
	events    []geometry.CaptureEvent

	drawEpoch      atomic.Uint64
	selectionEpoch atomic.Uint64

	mu              sync.Mutex
	cancelDraw      context.CancelFunc
	cancelSelection context.CancelFunc
	snapshot        Snapshot
	lastSeen        time.Time
}

func NewSession(id string, thingSvc things.ThingService, obsSvc observations.ObservationService, encoder geometry.Encoder) *Session {
	s := &Session{
		id:           id,
		things:       thingSvc,
		observations: obsSvc,
		encoder:      encoder,
		display:      domain.EPSG3857,
		lastSeen:     time.Now(),
		snapshot: Snapshot{
			ID:       id,
			Drawing:  geometry.Idle.String(),
			Things:   []domain.Thing{},
			Markers:  []Marker{},
			Selected: []string{},
			Series:   domain.NewGroupedSeries(),
		},
	}

	s.capture = geometry.NewCapture(s.display, func(e geometry.CaptureEvent) {
		s.events = append(s.events, e)
	})

	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot
	snapshot.Drawing = s.capture.State().String()
	return snapshot
}

//Load fetches the unfiltered Thing set
func (s *Session) Load(ctx context.Context) error {
	return s.fetchThings(ctx, s.things.Query())
}

func (s *Session) StartDrawing(ctx context.Context) error {
	return s.drawingAction(ctx, func(c *geometry.Capture) error {
		c.Start()
		return nil
	})
}

func (s *Session) EditDrawing(ring orb.Ring) error {
	s.captureMu.Lock()
	defer s.captureMu.Unlock()

	return s.capture.Edit(ring)
}

//FinishDrawing completes the drawing with a ring in display coordinates and
//replaces the Thing set with the Things inside it
func (s *Session) FinishDrawing(ctx context.Context, ring orb.Ring) error {
	return s.drawingAction(ctx, func(c *geometry.Capture) error {
		return c.Finish(ring)
	})
}

//ClearDrawing cancels the drawing and restores the unfiltered Thing set
func (s *Session) ClearDrawing(ctx context.Context) error {
	return s.drawingAction(ctx, func(c *geometry.Capture) error {
		c.Cancel()
		return nil
	})
}

func (s *Session) drawingAction(ctx context.Context, action func(*geometry.Capture) error) error {
	s.touch()

	s.captureMu.Lock()
	s.events = nil
	err := action(s.capture)
	events := s.events
	s.events = nil
	s.captureMu.Unlock()

	if err != nil {
		return err
	}

	for _, e := range events {
		if err := s.onCaptureEvent(ctx, e); err != nil {
			return err
		}
	}

	return nil
}

func (s *Session) onCaptureEvent(ctx context.Context, e geometry.CaptureEvent) error {
	switch e.State {
	case geometry.Completed:
		geographic, err := geometry.TransformGeometry(e.Geometry, domain.EPSG4326)
		if err != nil {
			return err
		}

		wkt, err := s.encoder.Encode(geographic.Ring)
		if err != nil {
			return err
		}

		return s.fetchThings(ctx, s.things.Query().Intersecting(wkt))
	case geometry.Canceled:
		return s.fetchThings(ctx, s.things.Query())
	}

	return nil
}

func (s *Session) fetchThings(ctx context.Context, q things.ThingServiceQuery) error {
	if err := q.Err(); err != nil {
		return err
	}

	var err error
	ctx, span := tracer.Start(ctx, "session-fetch-things")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	ctx, epoch := s.issue(ctx, &s.drawEpoch, &s.cancelDraw)
	span.SetAttributes(attribute.Int64("epoch", int64(epoch)))

	s.mu.Lock()
	if s.cancelSelection != nil {
		s.cancelSelection()
	}
	s.mu.Unlock()

	result, err := q.Get(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.drawEpoch.Load() {
		err = fmt.Errorf("%w: things request %d", ErrStale, epoch)
		return err
	}

	s.cancelDraw()
	s.cancelDraw = nil

	if err != nil {
		return err
	}

	snapshot := s.snapshot
	snapshot.Filter = q.Filter()
	snapshot.Things = result
	snapshot.Markers = s.markers(ctx, result)
	snapshot.DrawEpoch = epoch
	snapshot.Selected, snapshot.Series = retainSelection(result, s.snapshot.Selected, s.snapshot.Series)
	s.snapshot = snapshot

	return nil
}

//Select fetches and groups the observations of the Things with the given ids.
//Ids that are not part of the current Thing set are ignored.
func (s *Session) Select(ctx context.Context, ids []string) error {
	s.touch()

	var err error
	ctx, span := tracer.Start(ctx, "session-select")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	drawn := s.drawEpoch.Load()
	selected := s.resolve(ids)

	ctx, epoch := s.issue(ctx, &s.selectionEpoch, &s.cancelSelection)
	span.SetAttributes(attribute.Int64("epoch", int64(epoch)), attribute.Int("things", len(selected)))

	joined := []domain.ObservationSeries{}
	if len(selected) > 0 {
		joined, err = s.observations.FetchAll(ctx, observations.DatastreamIDs(selected))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.selectionEpoch.Load() {
		err = fmt.Errorf("%w: selection request %d", ErrStale, epoch)
		return err
	}

	if drawn != s.drawEpoch.Load() {
		err = fmt.Errorf("%w: selection request %d was issued before things request %d", ErrStale, epoch, s.drawEpoch.Load())
		return err
	}

	s.cancelSelection()
	s.cancelSelection = nil

	if err != nil {
		return err
	}

	selectedIDs := make([]string, 0, len(selected))
	for _, t := range selected {
		selectedIDs = append(selectedIDs, t.ID)
	}

	snapshot := s.snapshot
	snapshot.Selected = selectedIDs
	snapshot.Series = observations.Aggregate(selected, joined)
	snapshot.SelectionEpoch = epoch
	s.snapshot = snapshot

	return nil
}

//issue starts a new request in a chain, canceling the request it supersedes
func (s *Session) issue(ctx context.Context, epoch *atomic.Uint64, cancel *context.CancelFunc) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if *cancel != nil {
		(*cancel)()
	}

	ctx, *cancel = context.WithCancel(ctx)
	return ctx, epoch.Add(1)
}

func (s *Session) resolve(ids []string) []domain.Thing {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]domain.Thing, len(s.snapshot.Things))
	for _, t := range s.snapshot.Things {
		byID[t.ID] = t
	}

	selected := []domain.Thing{}
	seen := map[string]struct{}{}

	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		selected = append(selected, t)
	}

	return selected
}

//retainSelection keeps the selected ids and their series that still belong to
//Things in the new set
func retainSelection(result []domain.Thing, selected []string, series domain.GroupedSeries) ([]string, domain.GroupedSeries) {
	byID := make(map[string]domain.Thing, len(result))
	for _, t := range result {
		byID[t.ID] = t
	}

	kept := []domain.Thing{}
	keptIDs := []string{}
	for _, id := range selected {
		if t, ok := byID[id]; ok {
			kept = append(kept, t)
			keptIDs = append(keptIDs, id)
		}
	}

	joined := []domain.ObservationSeries{}
	for _, g := range series.Groups() {
		joined = append(joined, g.Series...)
	}

	return keptIDs, observations.Aggregate(kept, joined)
}

func (s *Session) markers(ctx context.Context, result []domain.Thing) []Marker {
	logger := logging.GetFromContext(ctx)

	markers := make([]Marker, 0, len(result))
	for _, t := range result {
		p, err := geometry.ToDisplay(t.Location, s.display)
		if err != nil {
			logger.Debug().Err(err).Str("thing", t.ID).Msg("thing cannot be placed on the display surface")
			continue
		}
		markers = append(markers, Marker{ThingID: t.ID, Position: p})
	}

	return markers
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeen = time.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSeen
}
