package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// EventTypeRepository is the GORM implementation of repository.EventTypeRepository.
type EventTypeRepository struct {
	db *gorm.DB
}

func NewEventTypeRepository(db *gorm.DB) *EventTypeRepository {
	return &EventTypeRepository{db: db}
}

func (r *EventTypeRepository) Get(ctx context.Context, id string) (*domain.EventType, error) {
	var et domain.EventType
	if err := r.db.WithContext(ctx).First(&et, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find event type", id)
	}
	return &et, nil
}

func (r *EventTypeRepository) List(ctx context.Context) ([]domain.EventType, error) {
	var types []domain.EventType
	if err := r.db.WithContext(ctx).Order("created_at").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("gorm: list event types: %w", err)
	}
	return types, nil
}

func (r *EventTypeRepository) Create(ctx context.Context, et *domain.EventType) error {
	if et.ID == "" {
		et.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(et).Error; err != nil {
		return fmt.Errorf("gorm: create event type: %w", err)
	}
	return nil
}

func (r *EventTypeRepository) Update(ctx context.Context, et *domain.EventType) error {
	res := r.db.WithContext(ctx).Model(&domain.EventType{}).Where("id = ?", et.ID).
		Select("title", "text_prompt").Updates(et)
	return affected(res, "update event type", et.ID)
}

func (r *EventTypeRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.EventType{}), "delete event type", id)
}

// RoomEventRepository is the GORM implementation of repository.RoomEventRepository.
type RoomEventRepository struct {
	db *gorm.DB
}

func NewRoomEventRepository(db *gorm.DB) *RoomEventRepository {
	return &RoomEventRepository{db: db}
}

func (r *RoomEventRepository) Get(ctx context.Context, id string) (*domain.RoomEvent, error) {
	var ev domain.RoomEvent
	if err := r.db.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find room event", id)
	}
	return &ev, nil
}

func (r *RoomEventRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.RoomEvent, error) {
	var events []domain.RoomEvent
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("gorm: list events of room %s: %w", roomID, err)
	}
	return events, nil
}

// Create checks that the room and event type exist before inserting.
func (r *RoomEventRepository) Create(ctx context.Context, ev *domain.RoomEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Room{}).Where("id = ?", ev.RoomID).Count(&n).Error; err != nil {
			return fmt.Errorf("gorm: check room %s: %w", ev.RoomID, err)
		}
		if n == 0 {
			return fmt.Errorf("room %s: %w", ev.RoomID, repository.ErrMissingReference)
		}
		if err := tx.Model(&domain.EventType{}).Where("id = ?", ev.TypeID).Count(&n).Error; err != nil {
			return fmt.Errorf("gorm: check event type %s: %w", ev.TypeID, err)
		}
		if n == 0 {
			return fmt.Errorf("event type %s: %w", ev.TypeID, repository.ErrMissingReference)
		}
		if ev.ID == "" {
			ev.ID = newID()
		}
		if err := tx.Create(ev).Error; err != nil {
			return fmt.Errorf("gorm: create room event: %w", err)
		}
		return nil
	})
}

func (r *RoomEventRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.RoomEvent{}), "delete room event", id)
}

func (r *RoomEventRepository) DeleteByRoom(ctx context.Context, roomID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.RoomEvent{}).Where("room_id = ?", roomID).Pluck("id", &ids).Error; err != nil {
			return err
		}
		return tx.Where("room_id = ?", roomID).Delete(&domain.RoomEvent{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("gorm: delete events of room %s: %w", roomID, err)
	}
	return ids, nil
}

// PlayerRepository is the GORM implementation of repository.PlayerRepository.
type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	var p domain.Player
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find player", id)
	}
	return &p, nil
}

func (r *PlayerRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.Player, error) {
	var players []domain.Player
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("created_at").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("gorm: list players of room %s: %w", roomID, err)
	}
	return players, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("gorm: create player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p *domain.Player) error {
	res := r.db.WithContext(ctx).Model(&domain.Player{}).Where("id = ?", p.ID).
		Select("name", "banned").Updates(p)
	return affected(res, "update player", p.ID)
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Player{}), "delete player", id)
}
