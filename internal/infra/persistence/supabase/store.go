// Package supabase implements the repositories on a Supabase project
// through its PostgREST endpoint.
//
// Expected tables (snake_case columns, uuid ids defaulting to
// gen_random_uuid(), created_at/updated_at defaulting to now()):
//
//	rooms(id, open, password, mission, number_of_variant, model,
//	      prompt_system, prompt_world, prompt_rules, temperature, created_at, updated_at)
//	event_types(id, title, text_prompt, created_at, updated_at)
//	room_events(id, event, room_id references rooms, type_id references event_types, created_at)
//	players(id, name, banned, room_id references rooms, created_at, updated_at)
package supabase

import (
	"fmt"

	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"rpg-gamemaster/internal/repository"
)

const (
	tableRooms      = "rooms"
	tableEventTypes = "event_types"
	tableEvents     = "room_events"
	tablePlayers    = "players"
)

// Connect creates a Supabase client for url and key.
func Connect(url, key string) (*supa.Client, error) {
	client, err := supa.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to supabase: %w", err)
	}
	logrus.WithField("url", url).Info("Supabase client created")
	return client, nil
}

// NewStore wires every repository onto client.
func NewStore(client *supa.Client) repository.Store {
	return repository.Store{
		Rooms:      &RoomRepository{client: client},
		EventTypes: &EventTypeRepository{client: client},
		Events:     &RoomEventRepository{client: client},
		Players:    &PlayerRepository{client: client},
		Close:      func() error { return nil },
	}
}

func wrap(err error, op, table string) error {
	return fmt.Errorf("supabase: %s %s: %w", op, table, err)
}
