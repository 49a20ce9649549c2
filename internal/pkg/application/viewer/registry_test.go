package viewer

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matryer/is"
	"github.com/mindloops/sensordata-web-ui/internal/pkg/application/geometry"
)

func TestCreatedSessionsCanBeRetrieved(t *testing.T) {
	is := is.New(t)

	r := NewRegistry(mockThings(allThingsFn), nil, geometry.NewEncoder(6, true), time.Minute)
	s := r.Create()

	_, err := uuid.Parse(s.ID())
	is.NoErr(err)

	found, err := r.Get(s.ID())
	is.NoErr(err)
	is.Equal(found, s)
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	is := is.New(t)

	r := NewRegistry(mockThings(allThingsFn), nil, geometry.NewEncoder(6, true), time.Minute)
	_, err := r.Get("nope")
	is.True(errors.Is(err, ErrNoSuchSession))
}

func TestIdleSessionsAreEvicted(t *testing.T) {
	is := is.New(t)

	r := NewRegistry(mockThings(allThingsFn), nil, geometry.NewEncoder(6, true), time.Minute)
	s := r.Create()
	r.Create()

	is.Equal(r.Evict(time.Now()), 0)
	is.Equal(r.Evict(time.Now().Add(2*time.Minute)), 2)
	is.Equal(r.Len(), 0)

	_, err := r.Get(s.ID())
	is.True(errors.Is(err, ErrNoSuchSession))
}
