package service

import (
	"context"
	"strings"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// PlayerService manages players. Players are stored but not yet used by the turn cycle.
type PlayerService struct {
	players repository.PlayerRepository
	rooms   repository.RoomRepository
}

func NewPlayerService(players repository.PlayerRepository, rooms repository.RoomRepository) *PlayerService {
	return &PlayerService{players: players, rooms: rooms}
}

// PlayerInput carries editable player fields.
type PlayerInput struct {
	Name   string `json:"name"`
	Banned bool   `json:"banned"`
	RoomID string `json:"roomId"`
}

func (s *PlayerService) CreatePlayer(ctx context.Context, in PlayerInput) (*domain.Player, error) {
	if strings.TrimSpace(in.Name) == "" || in.RoomID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.rooms.Get(ctx, in.RoomID); err != nil {
		return nil, mapRepoError(err, ErrRoomNotFound, "get room")
	}
	p := &domain.Player{Name: in.Name, Banned: in.Banned, RoomID: in.RoomID}
	if err := s.players.Create(ctx, p); err != nil {
		return nil, mapRepoError(err, ErrPlayerNotFound, "create player")
	}
	return p, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context, roomID string) ([]domain.Player, error) {
	players, err := s.players.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, mapRepoError(err, ErrPlayerNotFound, "list players")
	}
	return players, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, id string, in PlayerInput) (*domain.Player, error) {
	p, err := s.players.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, ErrPlayerNotFound, "get player")
	}
	if strings.TrimSpace(in.Name) != "" {
		p.Name = in.Name
	}
	p.Banned = in.Banned
	if err := s.players.Update(ctx, p); err != nil {
		return nil, mapRepoError(err, ErrPlayerNotFound, "update player")
	}
	return p, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, id string) error {
	return mapRepoError(s.players.Delete(ctx, id), ErrPlayerNotFound, "delete player")
}
