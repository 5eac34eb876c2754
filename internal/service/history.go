package service

import (
	"context"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// HistoryService reads and prunes a room's generated events.
type HistoryService struct {
	rooms  repository.RoomRepository
	events repository.RoomEventRepository
}

func NewHistoryService(rooms repository.RoomRepository, events repository.RoomEventRepository) *HistoryService {
	return &HistoryService{rooms: rooms, events: events}
}

// ListEvents returns the room's events newest first.
func (s *HistoryService) ListEvents(ctx context.Context, roomID string) ([]domain.RoomEvent, error) {
	if _, err := s.rooms.Get(ctx, roomID); err != nil {
		return nil, mapRepoError(err, ErrRoomNotFound, "get room")
	}
	events, err := s.events.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, mapRepoError(err, ErrEventNotFound, "list room events")
	}
	if events == nil {
		events = []domain.RoomEvent{}
	}
	domain.SortNewestFirst(events)
	return events, nil
}

// DeleteEvent removes one event.
func (s *HistoryService) DeleteEvent(ctx context.Context, id string) error {
	return mapRepoError(s.events.Delete(ctx, id), ErrEventNotFound, "delete room event")
}
