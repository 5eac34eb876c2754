package repository

import (
	"context"

	"rpg-gamemaster/internal/domain"
)

// RoomRepository stores rooms.
type RoomRepository interface {
	// Get returns ErrNotFound when no room has the id.
	Get(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	// Create assigns the id and timestamps of room.
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	// UpdateMission writes only the mission column.
	UpdateMission(ctx context.Context, id, mission string) error
	// Delete removes the room row only. Callers cascade to events first.
	Delete(ctx context.Context, id string) error
}

// EventTypeRepository stores event-type templates.
type EventTypeRepository interface {
	Get(ctx context.Context, id string) (*domain.EventType, error)
	List(ctx context.Context) ([]domain.EventType, error)
	Create(ctx context.Context, eventType *domain.EventType) error
	Update(ctx context.Context, eventType *domain.EventType) error
	Delete(ctx context.Context, id string) error
}

// RoomEventRepository stores generated room events.
type RoomEventRepository interface {
	Get(ctx context.Context, id string) (*domain.RoomEvent, error)
	// ListByRoom returns the events of a room in no particular order.
	ListByRoom(ctx context.Context, roomID string) ([]domain.RoomEvent, error)
	Create(ctx context.Context, event *domain.RoomEvent) error
	Delete(ctx context.Context, id string) error
	// DeleteByRoom removes every event of a room and returns the removed ids.
	DeleteByRoom(ctx context.Context, roomID string) ([]string, error)
}

// PlayerRepository stores players.
type PlayerRepository interface {
	Get(ctx context.Context, id string) (*domain.Player, error)
	ListByRoom(ctx context.Context, roomID string) ([]domain.Player, error)
	Create(ctx context.Context, player *domain.Player) error
	Update(ctx context.Context, player *domain.Player) error
	Delete(ctx context.Context, id string) error
}

// Store groups the repositories of one backend.
type Store struct {
	Rooms      RoomRepository
	EventTypes EventTypeRepository
	Events     RoomEventRepository
	Players    PlayerRepository
	// Close releases the backend, if it holds anything.
	Close func() error
}
