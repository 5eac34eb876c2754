// Package prompt builds the text sent to the generation gateway.
package prompt

import (
	"strings"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/generation"
)

// StyleSuffix is appended to every event-type prompt.
const StyleSuffix = "Don't write in a standard way, add creativity and a pinch of absurdity. " +
	"Write your answer in Ukrainian. " +
	"Use up to 50 words. " +
	"The result should be only the text of the answer, nothing more."

// MissionPrompt asks for a room's long-term goal. It does not read any room fields.
const MissionPrompt = `Your task is to generate a global mission for a group of characters. ` +
	`This mission should be significant enough to affect the entire game world or a significant part of it, ` +
	`and represent a long-term goal that requires many adventures and decisions. Generate in Ukrainian. ` +
	`The result should be only the text of the mission title, nothing more. Without unnecessary characters. ` +
	`Add creativity and a bit of absurdity. Don't write standard goals.`

// EventPrompt appends the style instructions to an event-type template.
func EventPrompt(textPrompt string) string {
	return textPrompt + StyleSuffix
}

// SystemInstruction joins the room's system, world and rules fragments,
// skipping empty ones.
func SystemInstruction(room *domain.Room) string {
	var parts []string
	for _, p := range []string{room.PromptSystem, room.PromptWorld, room.PromptRules} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}

// EventRequest is the gateway request for one turn in room with eventType.
func EventRequest(room *domain.Room, eventType *domain.EventType) generation.Request {
	return generation.Request{
		OriginPrompt: EventPrompt(eventType.TextPrompt),
		Model:        room.Model,
		SystemPrompt: SystemInstruction(room),
		Temperature:  generation.Temperature(float32(domain.ClampTemperature(room.Temperature))),
	}
}

// MissionRequest is the gateway request for a room mission.
func MissionRequest() generation.Request {
	return generation.Request{OriginPrompt: MissionPrompt}
}
