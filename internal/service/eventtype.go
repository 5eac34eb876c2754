package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// EventTypeService manages event-type templates.
type EventTypeService struct {
	types repository.EventTypeRepository
}

// NewEventTypeService creates an EventTypeService.
func NewEventTypeService(types repository.EventTypeRepository) *EventTypeService {
	if types == nil {
		panic("EventTypeRepository cannot be nil for EventTypeService")
	}
	return &EventTypeService{types: types}
}

// EventTypeInput carries editable event-type fields.
type EventTypeInput struct {
	Title      string `json:"title"`
	TextPrompt string `json:"textPrompt"`
}

func (in EventTypeInput) validate() error {
	if strings.TrimSpace(in.TextPrompt) == "" {
		return ErrInvalidInput
	}
	return nil
}

func (s *EventTypeService) CreateEventType(ctx context.Context, in EventTypeInput) (*domain.EventType, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	et := &domain.EventType{Title: in.Title, TextPrompt: in.TextPrompt}
	if err := s.types.Create(ctx, et); err != nil {
		logrus.WithError(err).Error("Failed to create event type")
		return nil, mapRepoError(err, ErrEventTypeNotFound, "create event type")
	}
	logrus.WithField("type_id", et.ID).Info("Event type created")
	return et, nil
}

func (s *EventTypeService) ListEventTypes(ctx context.Context) ([]domain.EventType, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, ErrEventTypeNotFound, "list event types")
	}
	return types, nil
}

func (s *EventTypeService) UpdateEventType(ctx context.Context, id string, in EventTypeInput) (*domain.EventType, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	et, err := s.types.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, ErrEventTypeNotFound, "get event type")
	}
	et.Title = in.Title
	et.TextPrompt = in.TextPrompt
	if err := s.types.Update(ctx, et); err != nil {
		return nil, mapRepoError(err, ErrEventTypeNotFound, "update event type")
	}
	return et, nil
}

func (s *EventTypeService) DeleteEventType(ctx context.Context, id string) error {
	if err := s.types.Delete(ctx, id); err != nil {
		return mapRepoError(err, ErrEventTypeNotFound, "delete event type")
	}
	logrus.WithField("type_id", id).Info("Event type deleted")
	return nil
}
