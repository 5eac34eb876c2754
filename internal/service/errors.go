package service

import (
	"errors"
	"fmt"

	"rpg-gamemaster/internal/repository"
)

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrEventTypeNotFound = errors.New("event type not found")
	ErrEventNotFound     = errors.New("room event not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInvalidInput      = errors.New("invalid input")
)

// mapRepoError turns repository.ErrNotFound into notFound and wraps the rest.
func mapRepoError(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
