package domain

import "time"

// Player matches the players table. Nothing in the turn cycle reads it yet.
type Player struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name"`
	Banned    bool      `json:"banned"`
	RoomID    string    `json:"roomId" gorm:"index;size:36"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
