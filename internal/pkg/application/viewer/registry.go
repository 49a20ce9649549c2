package viewer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/observations"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/services/things"
)

const DefaultSessionTTL time.Duration = 30 * time.Minute

//Registry keeps the sessions of connected clients in memory
type Registry struct {
	thingSvc things.ThingService
	obsSvc   observations.ObservationService
	encoder  geometry.Encoder
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(thingSvc things.ThingService, obsSvc observations.ObservationService, encoder geometry.Encoder, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &Registry{
		thingSvc: thingSvc,
		obsSvc:   obsSvc,
		encoder:  encoder,
		ttl:      ttl,
		sessions: map[string]*Session{},
	}
}

func (r *Registry) Create() *Session {
	s := NewSession(uuid.NewString(), r.thingSvc, r.obsSvc, r.encoder)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID()] = s
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchSession, id)
	}

	s.touch()
	return s, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

//Evict removes sessions that have been idle for longer than the ttl
func (r *Registry) Evict(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, s := range r.sessions {
		if now.Sub(s.idleSince()) > r.ttl {
			delete(r.sessions, id)
			evicted++
		}
	}

	return evicted
}

//Start evicts idle sessions periodically until ctx is done
func (r *Registry) Start(ctx context.Context) {
	logger := logging.GetFromContext(ctx)

	go func() {
		ticker := time.NewTicker(r.ttl / 2)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if count := r.Evict(now); count > 0 {
					logger.Info().Msgf("evicted %d idle sessions", count)
				}
			}
		}
	}()
}
