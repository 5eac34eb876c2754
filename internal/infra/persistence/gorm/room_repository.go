package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rpg-gamemaster/internal/domain"
)

// RoomRepository is the GORM implementation of repository.RoomRepository.
type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	if db == nil {
		panic("database connection cannot be nil for RoomRepository")
	}
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Get(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "find room", id)
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("gorm: list rooms: %w", err)
	}
	return rooms, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room.ID == "" {
		room.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("gorm: create room: %w", err)
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	res := r.db.WithContext(ctx).Model(&domain.Room{}).Where("id = ?", room.ID).
		Select("open", "password", "mission", "number_of_variant", "model",
			"prompt_system", "prompt_world", "prompt_rules", "temperature").
		Updates(room)
	return affected(res, "update room", room.ID)
}

func (r *RoomRepository) UpdateMission(ctx context.Context, id, mission string) error {
	res := r.db.WithContext(ctx).Model(&domain.Room{}).Where("id = ?", id).Update("mission", mission)
	return affected(res, "update mission", id)
}

// Delete removes the room together with its events and players in one transaction.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&domain.RoomEvent{}).Error; err != nil {
			return fmt.Errorf("gorm: delete events of room %s: %w", id, err)
		}
		if err := tx.Where("room_id = ?", id).Delete(&domain.Player{}).Error; err != nil {
			return fmt.Errorf("gorm: delete players of room %s: %w", id, err)
		}
		return affected(tx.Where("id = ?", id).Delete(&domain.Room{}), "delete room", id)
	})
}
