// Package gormpersistence implements the repositories on GORM. It backs
// local play with SQLite.
package gormpersistence

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// Open connects to the SQLite database at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases intact.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	logrus.WithField("path", path).Info("SQLite store opened")
	return db, nil
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Room{}, &domain.EventType{}, &domain.RoomEvent{}, &domain.Player{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// NewStore wires every repository onto db.
func NewStore(db *gorm.DB) repository.Store {
	return repository.Store{
		Rooms:      NewRoomRepository(db),
		EventTypes: NewEventTypeRepository(db),
		Events:     NewRoomEventRepository(db),
		Players:    NewPlayerRepository(db),
		Close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func newID() string { return uuid.New().String() }

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("gorm: %s %s: %w", what, id, err)
}

// affected maps a write that touched no rows to ErrNotFound.
func affected(res *gorm.DB, what, id string) error {
	if res.Error != nil {
		return fmt.Errorf("gorm: %s %s: %w", what, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
