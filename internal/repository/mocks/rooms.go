package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rpg-gamemaster/internal/domain"
)

// RoomRepository is a testify mock of repository.RoomRepository.
type RoomRepository struct {
	mock.Mock
}

func (m *RoomRepository) Get(ctx context.Context, id string) (*domain.Room, error) {
	args := m.Called(ctx, id)
	room, _ := args.Get(0).(*domain.Room)
	return room, args.Error(1)
}

func (m *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	rooms, _ := args.Get(0).([]domain.Room)
	return rooms, args.Error(1)
}

func (m *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *RoomRepository) UpdateMission(ctx context.Context, id, mission string) error {
	return m.Called(ctx, id, mission).Error(0)
}

func (m *RoomRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// EventTypeRepository is a testify mock of repository.EventTypeRepository.
type EventTypeRepository struct {
	mock.Mock
}

func (m *EventTypeRepository) Get(ctx context.Context, id string) (*domain.EventType, error) {
	args := m.Called(ctx, id)
	et, _ := args.Get(0).(*domain.EventType)
	return et, args.Error(1)
}

func (m *EventTypeRepository) List(ctx context.Context) ([]domain.EventType, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]domain.EventType)
	return types, args.Error(1)
}

func (m *EventTypeRepository) Create(ctx context.Context, eventType *domain.EventType) error {
	return m.Called(ctx, eventType).Error(0)
}

func (m *EventTypeRepository) Update(ctx context.Context, eventType *domain.EventType) error {
	return m.Called(ctx, eventType).Error(0)
}

func (m *EventTypeRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
