package domain

import "time"

// MaxTemperature is the highest generation temperature a room may store.
const MaxTemperature = 2.0

// Defaults applied to a freshly created room.
const (
	DefaultNumberOfVariant = 1
	DefaultTemperature     = MaxTemperature

	DefaultPromptSystem = "You are an experienced Game Master with a rich imagination, " +
		"capable of creating exciting and large-scale stories for tabletop role-playing games."
	DefaultPromptWorld = "Incredible absurd world"
	DefaultPromptRules = "Don't write in a standard way, add creativity and a pinch of absurdity. " +
		"Write your answer in Ukrainian. " +
		"Use up to 50 words. " +
		"The result should be only the text of the answer, nothing more. " +
		"Don't use markup and emojis."
)

// Room is one game session with its own generation settings and history.
type Room struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	Open            bool      `json:"open"`
	Password        string    `json:"password"`
	Mission         string    `json:"mission"`
	NumberOfVariant int       `json:"numberOfVariant"`
	Model           string    `json:"model"`
	PromptSystem    string    `json:"promptSystem"`
	PromptWorld     string    `json:"promptWorld"`
	PromptRules     string    `json:"promptRules"`
	Temperature     float64   `json:"temperature"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// NewRoom returns a closed room carrying the stock prompt fragments.
func NewRoom() *Room {
	return &Room{
		NumberOfVariant: DefaultNumberOfVariant,
		PromptSystem:    DefaultPromptSystem,
		PromptWorld:     DefaultPromptWorld,
		PromptRules:     DefaultPromptRules,
		Temperature:     DefaultTemperature,
	}
}

// HasPassword reports whether viewers must pass the password gate.
func (r *Room) HasPassword() bool {
	return r.Password != ""
}

// Public returns a copy of the room that is safe to show a room viewer.
func (r *Room) Public() Room {
	c := *r
	c.Password = ""
	return c
}

// ClampTemperature caps t at MaxTemperature. Values below zero pass through.
func ClampTemperature(t float64) float64 {
	if t > MaxTemperature {
		return MaxTemperature
	}
	return t
}
