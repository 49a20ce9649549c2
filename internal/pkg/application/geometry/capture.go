package geometry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mindloops/sensordata-web-ui/internal/pkg/domain"
	"github.com/paulmach/orb"
)

var ErrInvalidTransition = errors.New("invalid drawing state transition")

type CaptureState int

const (
	Idle CaptureState = iota
	Drawing
	Completed
	Canceled
)

func (s CaptureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Completed:
		return "completed"
	case Canceled:
		return "canceled"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

//CaptureEvent is emitted when a drawing is completed or canceled. Geometry is
//only set for completed drawings.
type CaptureEvent struct {
	State    CaptureState
	Geometry domain.Geometry
}

//Capture tracks the lifecycle of a polygon drawn on the display surface
type Capture struct {
	mu        sync.Mutex
	crs       domain.CRS
	state     CaptureState
	draft     orb.Ring
	displayed orb.Ring
	onEvent   func(CaptureEvent)
}

func NewCapture(display domain.CRS, onEvent func(CaptureEvent)) *Capture {
	if onEvent == nil {
		onEvent = func(CaptureEvent) {}
	}

	return &Capture{
		crs:     display,
		state:   Idle,
		onEvent: onEvent,
	}
}

func (c *Capture) State() CaptureState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

//Displayed returns the last completed ring, if it has not been cleared
func (c *Capture) Displayed() (domain.Geometry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.displayed == nil {
		return domain.Geometry{}, false
	}

	return domain.Geometry{CRS: c.crs, Ring: c.displayed.Clone()}, true
}

//Start enters drawing mode. A drawing already in progress is canceled first.
func (c *Capture) Start() {
	c.mu.Lock()

	events := []CaptureEvent{}
	if c.state == Drawing {
		events = append(events, c.cancel())
	}

	c.state = Drawing
	c.draft = nil
	c.mu.Unlock()

	c.emit(events...)
}

func (c *Capture) Edit(ring orb.Ring) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Drawing {
		return fmt.Errorf("%w: cannot edit while %s", ErrInvalidTransition, c.state)
	}

	c.draft = ring.Clone()
	return nil
}

//Finish completes the drawing. A nil ring completes the last edited ring.
func (c *Capture) Finish(ring orb.Ring) error {
	c.mu.Lock()

	if c.state != Drawing {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot finish while %s", ErrInvalidTransition, state)
	}

	if ring == nil {
		ring = c.draft
	}

	if len(ring) == 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: nothing has been drawn", ErrInvalidTransition)
	}

	c.state = Completed
	completed := CaptureEvent{
		State:    Completed,
		Geometry: domain.Geometry{CRS: c.crs, Ring: ring.Clone()},
	}

	c.displayed = ring.Clone()
	c.draft = nil
	c.state = Idle
	c.mu.Unlock()

	c.emit(completed)
	return nil
}

//Cancel aborts a drawing in progress or clears a displayed ring.
//It returns false when there was nothing to cancel.
func (c *Capture) Cancel() bool {
	c.mu.Lock()

	if c.state != Drawing && c.displayed == nil {
		c.mu.Unlock()
		return false
	}

	canceled := c.cancel()
	c.mu.Unlock()

	c.emit(canceled)
	return true
}

func (c *Capture) cancel() CaptureEvent {
	c.state = Canceled
	c.draft = nil
	c.displayed = nil
	c.state = Idle

	return CaptureEvent{State: Canceled, Geometry: domain.Geometry{CRS: c.crs}}
}

func (c *Capture) emit(events ...CaptureEvent) {
	for _, e := range events {
		c.onEvent(e)
	}
}
