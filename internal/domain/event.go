package domain

import (
	"sort"
	"time"
)

// EventType is a reusable narrative template offered during a turn.
type EventType struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Title      string    `json:"title"`
	TextPrompt string    `json:"textPrompt"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// RoomEvent is one generated narrative entry of a room.
type RoomEvent struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Event     string    `json:"event"`
	RoomID    string    `json:"roomId" gorm:"index;size:36;not null"`
	TypeID    string    `json:"typeId" gorm:"index;size:36"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// SortNewestFirst orders events by CreatedAt descending in place.
// Equal timestamps are ordered by ID so repeated sorts agree.
func SortNewestFirst(events []RoomEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
}
