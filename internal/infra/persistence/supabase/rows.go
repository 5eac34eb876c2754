package supabase

import (
	"time"

	"rpg-gamemaster/internal/domain"
)

type roomRow struct {
	ID              string     `json:"id,omitempty"`
	Open            bool       `json:"open"`
	Password        string     `json:"password"`
	Mission         string     `json:"mission"`
	NumberOfVariant int        `json:"number_of_variant"`
	Model           string     `json:"model"`
	PromptSystem    string     `json:"prompt_system"`
	PromptWorld     string     `json:"prompt_world"`
	PromptRules     string     `json:"prompt_rules"`
	Temperature     float64    `json:"temperature"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// roomWrite drops the server-managed columns.
func roomWrite(r *domain.Room) roomRow {
	return roomRow{
		Open:            r.Open,
		Password:        r.Password,
		Mission:         r.Mission,
		NumberOfVariant: r.NumberOfVariant,
		Model:           r.Model,
		PromptSystem:    r.PromptSystem,
		PromptWorld:     r.PromptWorld,
		PromptRules:     r.PromptRules,
		Temperature:     r.Temperature,
	}
}

func (row roomRow) domain() domain.Room {
	return domain.Room{
		ID:              row.ID,
		Open:            row.Open,
		Password:        row.Password,
		Mission:         row.Mission,
		NumberOfVariant: row.NumberOfVariant,
		Model:           row.Model,
		PromptSystem:    row.PromptSystem,
		PromptWorld:     row.PromptWorld,
		PromptRules:     row.PromptRules,
		Temperature:     row.Temperature,
		CreatedAt:       deref(row.CreatedAt),
		UpdatedAt:       deref(row.UpdatedAt),
	}
}

type eventTypeRow struct {
	ID         string     `json:"id,omitempty"`
	Title      string     `json:"title"`
	TextPrompt string     `json:"text_prompt"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func (row eventTypeRow) domain() domain.EventType {
	return domain.EventType{
		ID:         row.ID,
		Title:      row.Title,
		TextPrompt: row.TextPrompt,
		CreatedAt:  deref(row.CreatedAt),
		UpdatedAt:  deref(row.UpdatedAt),
	}
}

type roomEventRow struct {
	ID        string     `json:"id,omitempty"`
	Event     string     `json:"event"`
	RoomID    string     `json:"room_id"`
	TypeID    string     `json:"type_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (row roomEventRow) domain() domain.RoomEvent {
	return domain.RoomEvent{
		ID:        row.ID,
		Event:     row.Event,
		RoomID:    row.RoomID,
		TypeID:    row.TypeID,
		CreatedAt: deref(row.CreatedAt),
	}
}

type playerRow struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Banned    bool       `json:"banned"`
	RoomID    string     `json:"room_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (row playerRow) domain() domain.Player {
	return domain.Player{
		ID:        row.ID,
		Name:      row.Name,
		Banned:    row.Banned,
		RoomID:    row.RoomID,
		CreatedAt: deref(row.CreatedAt),
		UpdatedAt: deref(row.UpdatedAt),
	}
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
