package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rpg-gamemaster/internal/domain"
)

// RoomEventRepository is a testify mock of repository.RoomEventRepository.
type RoomEventRepository struct {
	mock.Mock
}

func (m *RoomEventRepository) Get(ctx context.Context, id string) (*domain.RoomEvent, error) {
	args := m.Called(ctx, id)
	ev, _ := args.Get(0).(*domain.RoomEvent)
	return ev, args.Error(1)
}

func (m *RoomEventRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.RoomEvent, error) {
	args := m.Called(ctx, roomID)
	events, _ := args.Get(0).([]domain.RoomEvent)
	return events, args.Error(1)
}

func (m *RoomEventRepository) Create(ctx context.Context, event *domain.RoomEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *RoomEventRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RoomEventRepository) DeleteByRoom(ctx context.Context, roomID string) ([]string, error) {
	args := m.Called(ctx, roomID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

// PlayerRepository is a testify mock of repository.PlayerRepository.
type PlayerRepository struct {
	mock.Mock
}

func (m *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Player)
	return p, args.Error(1)
}

func (m *PlayerRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.Player, error) {
	args := m.Called(ctx, roomID)
	players, _ := args.Get(0).([]domain.Player)
	return players, args.Error(1)
}

func (m *PlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	return m.Called(ctx, player).Error(0)
}

func (m *PlayerRepository) Update(ctx context.Context, player *domain.Player) error {
	return m.Called(ctx, player).Error(0)
}

func (m *PlayerRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
