package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// RoomService manages rooms for the administration surface.
type RoomService struct {
	rooms  repository.RoomRepository
	events repository.RoomEventRepository
}

// NewRoomService creates a RoomService.
func NewRoomService(rooms repository.RoomRepository, events repository.RoomEventRepository) *RoomService {
	if rooms == nil || events == nil {
		panic("room and event repositories are required for RoomService")
	}
	return &RoomService{rooms: rooms, events: events}
}

// RoomInput carries editable room fields. Nil fields keep their current
// value on update and take the default on create.
type RoomInput struct {
	Open            *bool    `json:"open"`
	Password        *string  `json:"password"`
	Mission         *string  `json:"mission"`
	NumberOfVariant *int     `json:"numberOfVariant"`
	Model           *string  `json:"model"`
	PromptSystem    *string  `json:"promptSystem"`
	PromptWorld     *string  `json:"promptWorld"`
	PromptRules     *string  `json:"promptRules"`
	Temperature     *float64 `json:"temperature"`
}

func (in RoomInput) applyTo(room *domain.Room) {
	if in.Open != nil {
		room.Open = *in.Open
	}
	if in.Password != nil {
		room.Password = *in.Password
	}
	if in.Mission != nil {
		room.Mission = *in.Mission
	}
	if in.NumberOfVariant != nil {
		room.NumberOfVariant = *in.NumberOfVariant
	}
	if in.Model != nil {
		room.Model = *in.Model
	}
	if in.PromptSystem != nil {
		room.PromptSystem = *in.PromptSystem
	}
	if in.PromptWorld != nil {
		room.PromptWorld = *in.PromptWorld
	}
	if in.PromptRules != nil {
		room.PromptRules = *in.PromptRules
	}
	if in.Temperature != nil {
		room.Temperature = *in.Temperature
	}
	room.Temperature = domain.ClampTemperature(room.Temperature)
}

// CreateRoom stores a new room built from the defaults and in.
func (s *RoomService) CreateRoom(ctx context.Context, in RoomInput) (*domain.Room, error) {
	room := domain.NewRoom()
	in.applyTo(room)
	if room.NumberOfVariant < 0 {
		return nil, ErrInvalidInput
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		logrus.WithError(err).Error("Failed to create room")
		return nil, mapRepoError(err, ErrRoomNotFound, "create room")
	}
	logrus.WithField("room_id", room.ID).Info("Room created")
	return room, nil
}

// GetRoom returns one room.
func (s *RoomService) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.rooms.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, ErrRoomNotFound, "get room")
	}
	return room, nil
}

// ListRooms returns all rooms.
func (s *RoomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, ErrRoomNotFound, "list rooms")
	}
	return rooms, nil
}

// UpdateRoom applies in to an existing room.
func (s *RoomService) UpdateRoom(ctx context.Context, id string, in RoomInput) (*domain.Room, error) {
	room, err := s.rooms.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, ErrRoomNotFound, "get room")
	}
	in.applyTo(room)
	if room.NumberOfVariant < 0 {
		return nil, ErrInvalidInput
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		logrus.WithError(err).WithField("room_id", id).Error("Failed to update room")
		return nil, mapRepoError(err, ErrRoomNotFound, "update room")
	}
	logrus.WithField("room_id", id).Info("Room updated")
	return room, nil
}

// DeleteRoom removes the room's events and then the room itself.
func (s *RoomService) DeleteRoom(ctx context.Context, id string) error {
	logCtx := logrus.WithField("room_id", id)
	if _, err := s.rooms.Get(ctx, id); err != nil {
		return mapRepoError(err, ErrRoomNotFound, "get room")
	}
	removed, err := s.events.DeleteByRoom(ctx, id)
	if err != nil {
		logCtx.WithError(err).Error("Failed to delete room events")
		return mapRepoError(err, ErrRoomNotFound, "delete room events")
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		logCtx.WithError(err).Error("Failed to delete room")
		return mapRepoError(err, ErrRoomNotFound, "delete room")
	}
	logCtx.WithField("events_removed", len(removed)).Info("Room deleted")
	return nil
}
