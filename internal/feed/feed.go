// Package feed pushes room event changes to the room views that watch them.
// Delivery order is not guaranteed; consumers sort what they receive.
package feed

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/domain"
)

// subscriberBuffer is the number of undelivered changes kept per subscriber.
const subscriberBuffer = 64

// Kind tells what happened to an event.
type Kind string

const (
	Created Kind = "created"
	Deleted Kind = "deleted"
)

// Change is one push on a room's feed.
type Change struct {
	Kind   Kind             `json:"kind"`
	RoomID string           `json:"roomId"`
	Event  domain.RoomEvent `json:"event"`
}

// Broker fans changes out to per-room subscribers.
type Broker interface {
	Publish(ctx context.Context, change Change) error
	Subscribe(roomID string) *Subscription
}

// Subscription receives the changes of one room until closed.
type Subscription struct {
	roomID string
	ch     chan Change
	once   sync.Once
	detach func(*Subscription)
	// dropped is set when a change could not be buffered.
	dropped atomic.Bool
}

// C returns the delivery channel. It is closed by Close.
func (s *Subscription) C() <-chan Change { return s.ch }

// RoomID returns the watched room.
func (s *Subscription) RoomID() string { return s.roomID }

// Resync reports whether changes were dropped since the last call. A
// subscriber that sees true should reload the room from storage.
func (s *Subscription) Resync() bool { return s.dropped.Swap(false) }

// Close stops delivery. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() { s.detach(s) })
}

// LocalBroker delivers changes inside one process.
type LocalBroker struct {
	mu    sync.RWMutex
	rooms map[string]map[*Subscription]struct{}
}

// NewLocalBroker returns an empty broker.
func NewLocalBroker() *LocalBroker {
	return &LocalBroker{rooms: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers a subscriber for roomID.
func (b *LocalBroker) Subscribe(roomID string) *Subscription {
	sub := &Subscription{
		roomID: roomID,
		ch:     make(chan Change, subscriberBuffer),
		detach: b.detach,
	}
	b.mu.Lock()
	if _, ok := b.rooms[roomID]; !ok {
		b.rooms[roomID] = make(map[*Subscription]struct{})
	}
	b.rooms[roomID][sub] = struct{}{}
	b.mu.Unlock()
	logrus.WithFields(logrus.Fields{"component": "feed", "room_id": roomID}).Debug("Subscriber added")
	return sub
}

func (b *LocalBroker) detach(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if subs, ok := b.rooms[sub.roomID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(b.rooms, sub.roomID)
		}
	}
	close(sub.ch)
}

// Publish delivers change to every subscriber of its room without blocking.
// A subscriber whose buffer is full misses the change and is marked for
// resync.
func (b *LocalBroker) Publish(_ context.Context, change Change) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.rooms[change.RoomID] {
		select {
		case sub.ch <- change:
		default:
			sub.dropped.Store(true)
			logrus.WithFields(logrus.Fields{
				"component": "feed",
				"room_id":   change.RoomID,
				"event_id":  change.Event.ID,
			}).Warn("Subscriber buffer full, change dropped")
		}
	}
	return nil
}

// Subscribers returns how many subscribers watch roomID.
func (b *LocalBroker) Subscribers(roomID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.rooms[roomID])
}
