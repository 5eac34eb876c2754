package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpg-gamemaster/internal/domain"
)

func TestEventPrompt(t *testing.T) {
	got := EventPrompt("A merchant arrives. ")
	assert.Equal(t, "A merchant arrives. "+StyleSuffix, got)
	assert.Equal(t, StyleSuffix, EventPrompt(""))
}

func TestSystemInstruction(t *testing.T) {
	room := &domain.Room{PromptSystem: "You are a GM.", PromptWorld: "  ", PromptRules: "Be brief."}
	assert.Equal(t, "You are a GM.\n\nBe brief.", SystemInstruction(room))
	assert.Empty(t, SystemInstruction(&domain.Room{}))
}

func TestEventRequest(t *testing.T) {
	room := domain.NewRoom()
	room.Model = "gemini-2.5-pro"
	room.Temperature = 7
	et := &domain.EventType{TextPrompt: "Weather turns. "}

	req := EventRequest(room, et)

	assert.Equal(t, "Weather turns. "+StyleSuffix, req.OriginPrompt)
	assert.Equal(t, "gemini-2.5-pro", req.Model)
	assert.True(t, strings.HasPrefix(req.SystemPrompt, domain.DefaultPromptSystem))
	require.NotNil(t, req.Temperature)
	assert.Equal(t, float32(2), *req.Temperature)
}

func TestMissionRequestIgnoresRoom(t *testing.T) {
	req := MissionRequest()
	assert.Equal(t, MissionPrompt, req.OriginPrompt)
	assert.Empty(t, req.Model)
	assert.Empty(t, req.SystemPrompt)
	assert.Nil(t, req.Temperature)
}
