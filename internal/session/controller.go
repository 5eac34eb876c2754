// Package session runs one room view: the password gate, the live event
// history and the turn cycle that turns a chosen event type into a new
// room event.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/feed"
	"rpg-gamemaster/internal/generation"
	"rpg-gamemaster/internal/prompt"
	"rpg-gamemaster/internal/repository"
)

// State is the phase of a room view.
type State string

const (
	StateLoading          State = "loading"
	StateAwaitingPassword State = "awaiting_password"
	StateActive           State = "active"
	StateNotFound         State = "not_found"
	StateClosed           State = "closed"
	StateError            State = "error"
)

var (
	ErrNotFound        = errors.New("room not found")
	ErrClosed          = errors.New("room is closed")
	ErrInvalidPassword = errors.New("invalid password")
	ErrNotActive       = errors.New("room view is not active")
	ErrNoEventTypes    = errors.New("no event types available")
	ErrUnknownVariant  = errors.New("event type is not one of the offered variants")
	ErrBusy            = errors.New("a generation is already in progress")
)

// Deps are the collaborators of a Controller.
type Deps struct {
	Rooms      repository.RoomRepository
	EventTypes repository.EventTypeRepository
	Events     repository.RoomEventRepository
	Feed       feed.Broker
	Generator  generation.Generator
	// Rand drives variant selection. Nil uses the global source.
	Rand *rand.Rand
}

// View is what a room viewer is shown.
type View struct {
	State            State              `json:"state"`
	Room             *domain.Room       `json:"room,omitempty"`
	Events           []domain.RoomEvent `json:"events"`
	Variants         []domain.EventType `json:"variants"`
	MissionAvailable bool               `json:"missionAvailable"`
	Candidate        string             `json:"candidate"`
	Generating       bool               `json:"generating"`
	Error            string             `json:"error,omitempty"`
}

// Controller owns the state of one room view. Create it with New, drive it
// with Open, and release it with Close.
type Controller struct {
	roomID string
	deps   Deps
	log    *logrus.Entry

	mu        sync.Mutex
	state     State
	room      *domain.Room
	types     []domain.EventType
	history   map[string]domain.RoomEvent
	variants  []domain.EventType
	candidate string
	busy      bool
	errMsg    string
	sub       *feed.Subscription
	closed    bool
	// pending is set while a load or activation runs outside mu.
	pending bool

	updates chan struct{}
	wg      sync.WaitGroup
}

// New returns a controller for roomID in the Loading state.
func New(roomID string, deps Deps) *Controller {
	return &Controller{
		roomID:  roomID,
		deps:    deps,
		log:     logrus.WithFields(logrus.Fields{"component": "session", "room_id": roomID}),
		state:   StateLoading,
		history: make(map[string]domain.RoomEvent),
		updates: make(chan struct{}, 1),
	}
}

// Updates signals that View changed. It is closed by Close.
func (c *Controller) Updates() <-chan struct{} { return c.updates }

// State returns the current phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open loads the room and moves out of Loading.
func (c *Controller) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateLoading || c.pending {
		c.mu.Unlock()
		return nil
	}
	c.pending = true
	c.mu.Unlock()

	room, err := c.deps.Rooms.Get(ctx, c.roomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.log.Info("Room not found")
			c.finish(StateNotFound, "")
			return ErrNotFound
		}
		c.log.WithError(err).Error("Failed to load room")
		c.finish(StateError, fmt.Sprintf("Failed to load room: %v", err))
		return fmt.Errorf("load room: %w", err)
	}
	if !room.Open {
		c.log.Info("Room is closed")
		c.finish(StateClosed, "")
		return ErrClosed
	}

	c.mu.Lock()
	c.room = room
	if room.HasPassword() {
		c.state = StateAwaitingPassword
		c.pending = false
		c.notify()
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()
	return c.activate(ctx)
}

// SubmitPassword compares candidate with the room password. The comparison
// is exact; the password is not a security boundary. Only one correct entry
// activates the view.
func (c *Controller) SubmitPassword(ctx context.Context, candidate string) error {
	c.mu.Lock()
	switch c.state {
	case StateActive:
		c.mu.Unlock()
		return nil
	case StateAwaitingPassword:
	default:
		c.mu.Unlock()
		return ErrNotActive
	}
	if c.pending {
		c.mu.Unlock()
		return nil
	}
	c.candidate = candidate
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(c.room.Password)) != 1 {
		c.candidate = ""
		c.errMsg = "Wrong password. Try again."
		c.notify()
		c.mu.Unlock()
		c.log.Info("Rejected room password")
		return ErrInvalidPassword
	}
	c.candidate = ""
	c.errMsg = ""
	c.pending = true
	c.mu.Unlock()
	return c.activate(ctx)
}

func (c *Controller) activate(ctx context.Context) error {
	types, err := c.deps.EventTypes.List(ctx)
	if err != nil {
		c.log.WithError(err).Error("Failed to load event types")
		c.finish(StateError, fmt.Sprintf("Failed to load event types: %v", err))
		return fmt.Errorf("load event types: %w", err)
	}

	// Subscribe before listing so nothing created in between is missed.
	sub := c.deps.Feed.Subscribe(c.roomID)
	events, err := c.deps.Events.ListByRoom(ctx, c.roomID)
	if err != nil {
		sub.Close()
		c.log.WithError(err).Error("Failed to load room events")
		c.finish(StateError, fmt.Sprintf("Failed to load events: %v", err))
		return fmt.Errorf("load room events: %w", err)
	}

	c.mu.Lock()
	c.pending = false
	if c.closed {
		c.mu.Unlock()
		sub.Close()
		return nil
	}
	c.types = types
	for _, ev := range events {
		c.history[ev.ID] = ev
	}
	c.sub = sub
	c.state = StateActive
	c.wg.Add(1)
	go c.consume(sub)
	c.notify()
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"event_types": len(types), "events": len(events)}).Info("Room view active")
	return nil
}

func (c *Controller) consume(sub *feed.Subscription) {
	defer c.wg.Done()
	for change := range sub.C() {
		c.mu.Lock()
		if !c.closed {
			c.apply(change)
			c.notify()
		}
		c.mu.Unlock()
		if sub.Resync() {
			c.reload()
		}
	}
}

// reload replaces the history with what storage holds. It runs when the feed
// dropped changes for this view.
func (c *Controller) reload() {
	events, err := c.deps.Events.ListByRoom(context.Background(), c.roomID)
	if err != nil {
		c.log.WithError(err).Warn("Failed to reload room events after dropped changes")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.history = make(map[string]domain.RoomEvent, len(events))
	for _, ev := range events {
		c.history[ev.ID] = ev
	}
	c.notify()
	c.log.WithField("events", len(events)).Info("Room events reloaded after dropped changes")
}

func (c *Controller) apply(change feed.Change) {
	switch change.Kind {
	case feed.Created:
		c.history[change.Event.ID] = change.Event
	case feed.Deleted:
		delete(c.history, change.Event.ID)
	}
}

// DrawVariants offers event types for the next turn. A drawn set is kept
// until a choice consumes it.
func (c *Controller) DrawVariants() ([]domain.EventType, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive {
		return nil, ErrNotActive
	}
	if len(c.variants) == 0 {
		if len(c.types) == 0 {
			return nil, ErrNoEventTypes
		}
		c.variants = SelectVariants(c.types, c.room.NumberOfVariant, c.deps.Rand)
		c.notify()
	}
	return append([]domain.EventType(nil), c.variants...), nil
}

// Choose generates a room event from one of the drawn variants. Nothing is
// written when generation fails. The drawn set is discarded either way.
func (c *Controller) Choose(ctx context.Context, typeID string) (*domain.RoomEvent, error) {
	c.mu.Lock()
	if c.state != StateActive {
		c.mu.Unlock()
		return nil, ErrNotActive
	}
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	var chosen *domain.EventType
	for i := range c.variants {
		if c.variants[i].ID == typeID {
			et := c.variants[i]
			chosen = &et
			break
		}
	}
	if chosen == nil {
		c.mu.Unlock()
		return nil, ErrUnknownVariant
	}
	room := *c.room
	c.busy = true
	c.errMsg = ""
	c.notify()
	c.mu.Unlock()

	logCtx := c.log.WithField("type_id", typeID)
	text, err := c.deps.Generator.Generate(ctx, prompt.EventRequest(&room, chosen))
	if err != nil {
		logCtx.WithError(err).Warn("Event generation failed")
		c.endTurn(fmt.Sprintf("Generation failed: %v", err))
		return nil, err
	}

	ev := &domain.RoomEvent{Event: text, RoomID: room.ID, TypeID: chosen.ID}
	if err := c.deps.Events.Create(ctx, ev); err != nil {
		logCtx.WithError(err).Error("Failed to save room event")
		c.endTurn(fmt.Sprintf("Failed to save event: %v", err))
		return nil, fmt.Errorf("save room event: %w", err)
	}

	c.mu.Lock()
	if !c.closed {
		c.history[ev.ID] = *ev
	}
	c.mu.Unlock()
	c.endTurn("")
	logCtx.WithField("event_id", ev.ID).Info("Room event generated")
	return ev, nil
}

func (c *Controller) endTurn(errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.variants = nil
	c.errMsg = errMsg
	c.notify()
}

// GenerateMission asks for a mission and stores it on the room. A failed
// attempt leaves the mission untouched.
func (c *Controller) GenerateMission(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state != StateActive {
		c.mu.Unlock()
		return "", ErrNotActive
	}
	if c.busy {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.busy = true
	c.errMsg = ""
	c.notify()
	c.mu.Unlock()

	mission, err := c.deps.Generator.Generate(ctx, prompt.MissionRequest())
	if err != nil {
		c.log.WithError(err).Warn("Mission generation failed")
		c.endMission("", fmt.Sprintf("Generation failed: %v", err))
		return "", err
	}
	if err := c.deps.Rooms.UpdateMission(ctx, c.roomID, mission); err != nil {
		c.log.WithError(err).Error("Failed to save mission")
		c.endMission("", fmt.Sprintf("Failed to save mission: %v", err))
		return "", fmt.Errorf("save mission: %w", err)
	}
	c.endMission(mission, "")
	c.log.Info("Mission generated")
	return mission, nil
}

func (c *Controller) endMission(mission, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if mission != "" {
		c.room.Mission = mission
	}
	c.errMsg = errMsg
	c.notify()
}

// Events returns the history newest first.
func (c *Controller) Events() []domain.RoomEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortedHistory()
}

func (c *Controller) sortedHistory() []domain.RoomEvent {
	events := make([]domain.RoomEvent, 0, len(c.history))
	for _, ev := range c.history {
		events = append(events, ev)
	}
	domain.SortNewestFirst(events)
	return events
}

// View returns a snapshot for the viewer. The room password is never included.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View{
		State:      c.state,
		Events:     []domain.RoomEvent{},
		Variants:   append([]domain.EventType{}, c.variants...),
		Candidate:  c.candidate,
		Generating: c.busy,
		Error:      c.errMsg,
	}
	if c.room != nil && c.state == StateActive {
		pub := c.room.Public()
		v.Room = &pub
		v.Events = c.sortedHistory()
		v.MissionAvailable = c.room.Mission == ""
	}
	return v
}

// Close tears down the live subscription. A generation still in flight
// finishes but its outcome is no longer shown.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	sub := c.sub
	c.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
	c.wg.Wait()
	close(c.updates)
	c.log.Debug("Room view closed")
}

func (c *Controller) finish(state State, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.pending = false
	c.errMsg = errMsg
	c.notify()
}

// notify must be called with mu held.
func (c *Controller) notify() {
	if c.closed {
		return
	}
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
