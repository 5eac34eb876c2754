package supabase

import (
	"context"
	"fmt"
	"strings"

	supa "github.com/supabase-community/supabase-go"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// The PostgREST builder takes no context; requests run to completion once sent.

// RoomRepository is the Supabase implementation of repository.RoomRepository.
type RoomRepository struct {
	client *supa.Client
}

func (r *RoomRepository) Get(_ context.Context, id string) (*domain.Room, error) {
	var rows []roomRow
	if _, err := r.client.From(tableRooms).Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&rows); err != nil {
		return nil, wrap(err, "get", tableRooms)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	room := rows[0].domain()
	return &room, nil
}

func (r *RoomRepository) List(_ context.Context) ([]domain.Room, error) {
	var rows []roomRow
	if _, err := r.client.From(tableRooms).Select("*", "", false).ExecuteTo(&rows); err != nil {
		return nil, wrap(err, "list", tableRooms)
	}
	rooms := make([]domain.Room, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, row.domain())
	}
	return rooms, nil
}

func (r *RoomRepository) Create(_ context.Context, room *domain.Room) error {
	var inserted []roomRow
	if _, err := r.client.From(tableRooms).Insert(roomWrite(room), false, "", "", "").ExecuteTo(&inserted); err != nil {
		return wrap(err, "insert", tableRooms)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("supabase: insert %s returned no row", tableRooms)
	}
	*room = inserted[0].domain()
	return nil
}

func (r *RoomRepository) Update(_ context.Context, room *domain.Room) error {
	var updated []roomRow
	if _, err := r.client.From(tableRooms).Update(roomWrite(room), "", "").Eq("id", room.ID).ExecuteTo(&updated); err != nil {
		return wrap(err, "update", tableRooms)
	}
	if len(updated) == 0 {
		return repository.ErrNotFound
	}
	*room = updated[0].domain()
	return nil
}

func (r *RoomRepository) UpdateMission(_ context.Context, id, mission string) error {
	var updated []roomRow
	patch := map[string]string{"mission": mission}
	if _, err := r.client.From(tableRooms).Update(patch, "", "").Eq("id", id).ExecuteTo(&updated); err != nil {
		return wrap(err, "update mission", tableRooms)
	}
	if len(updated) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the room's players before the room itself; room_events
// are cleared by the caller so their removals can be published.
func (r *RoomRepository) Delete(_ context.Context, id string) error {
	if _, _, err := r.client.From(tablePlayers).Delete("minimal", "").Eq("room_id", id).Execute(); err != nil {
		return wrap(err, "delete players of", tableRooms)
	}
	var deleted []roomRow
	if _, err := r.client.From(tableRooms).Delete("", "").Eq("id", id).ExecuteTo(&deleted); err != nil {
		return wrap(err, "delete", tableRooms)
	}
	if len(deleted) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EventTypeRepository is the Supabase implementation of repository.EventTypeRepository.
type EventTypeRepository struct {
	client *supa.Client
}

func (r *EventTypeRepository) Get(_ context.Context, id string) (*domain.EventType, error) {
	var rows []eventTypeRow
	if _, err := r.client.From(tableEventTypes).Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&rows); err != nil {
		return nil, wrap(err, "get", tableEventTypes)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	et := rows[0].domain()
	return &et, nil
}

func (r *EventTypeRepository) List(_ context.Context) ([]domain.EventType, error) {
	var rows []eventTypeRow
	if _, err := r.client.From(tableEventTypes).Select("*", "", false).ExecuteTo(&rows); err != nil {
		return nil, wrap(err, "list", tableEventTypes)
	}
	types := make([]domain.EventType, 0, len(rows))
	for _, row := range rows {
		types = append(types, row.domain())
	}
	return types, nil
}

func (r *EventTypeRepository) Create(_ context.Context, et *domain.EventType) error {
	var inserted []eventTypeRow
	row := eventTypeRow{Title: et.Title, TextPrompt: et.TextPrompt}
	if _, err := r.client.From(tableEventTypes).Insert(row, false, "", "", "").ExecuteTo(&inserted); err != nil {
		return wrap(err, "insert", tableEventTypes)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("supabase: insert %s returned no row", tableEventTypes)
	}
	*et = inserted[0].domain()
	return nil
}

func (r *EventTypeRepository) Update(_ context.Context, et *domain.EventType) error {
	var updated []eventTypeRow
	row := eventTypeRow{Title: et.Title, TextPrompt: et.TextPrompt}
	if _, err := r.client.From(tableEventTypes).Update(row, "", "").Eq("id", et.ID).ExecuteTo(&updated); err != nil {
		return wrap(err, "update", tableEventTypes)
	}
	if len(updated) == 0 {
		return repository.ErrNotFound
	}
	*et = updated[0].domain()
	return nil
}

func (r *EventTypeRepository) Delete(_ context.Context, id string) error {
	var deleted []eventTypeRow
	if _, err := r.client.From(tableEventTypes).Delete("", "").Eq("id", id).ExecuteTo(&deleted); err != nil {
		return wrap(err, "delete", tableEventTypes)
	}
	if len(deleted) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RoomEventRepository is the Supabase implementation of repository.RoomEventRepository.
type RoomEventRepository struct {
	client *supa.Client
}

func (r *RoomEventRepository) Get(_ context.Context, id string) (*domain.RoomEvent, error) {
	var rows []roomEventRow
	if _, err := r.client.From(tableEvents).Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&rows); err != nil {
		return nil, wrap(err, "get", tableEvents)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	ev := rows[0].domain()
	return &ev, nil
}

func (r *RoomEventRepository) ListByRoom(_ context.Context, roomID string) ([]domain.RoomEvent, error) {
	var rows []roomEventRow
	if _, err := r.client.From(tableEvents).Select("*", "", false).Eq("room_id", roomID).ExecuteTo(&rows); err != nil {
		return nil, wrap(err, "list", tableEvents)
	}
	events := make([]domain.RoomEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.domain())
	}
	return events, nil
}

// Create relies on the foreign keys of room_events for referential checks.
func (r *RoomEventRepository) Create(_ context.Context, ev *domain.RoomEvent) error {
	var inserted []roomEventRow
	row := roomEventRow{Event: ev.Event, RoomID: ev.RoomID, TypeID: ev.TypeID}
	if _, err := r.client.From(tableEvents).Insert(row, false, "", "", "").ExecuteTo(&inserted); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %v", repository.ErrMissingReference, err)
		}
		return wrap(err, "insert", tableEvents)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("supabase: insert %s returned no row", tableEvents)
	}
	*ev = inserted[0].domain()
	return nil
}

func (r *RoomEventRepository) Delete(_ context.Context, id string) error {
	var deleted []roomEventRow
	if _, err := r.client.From(tableEvents).Delete("", "").Eq("id", id).ExecuteTo(&deleted); err != nil {
		return wrap(err, "delete", tableEvents)
	}
	if len(deleted) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoomEventRepository) DeleteByRoom(_ context.Context, roomID string) ([]string, error) {
	var deleted []roomEventRow
	if _, err := r.client.From(tableEvents).Delete("", "").Eq("room_id", roomID).ExecuteTo(&deleted); err != nil {
		return nil, wrap(err, "delete by room", tableEvents)
	}
	ids := make([]string, 0, len(deleted))
	for _, row := range deleted {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// PlayerRepository is the Supabase implementation of repository.PlayerRepository.
type PlayerRepository struct {
	client *supa.Client
}

func (r *PlayerRepository) Get(_ context.Context, id string) (*domain.Player, error) {
	var rows []playerRow
	if _, err := r.client.From(tablePlayers).Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&rows); err != nil {
		return nil, wrap(err, "get", tablePlayers)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	p := rows[0].domain()
	return &p, nil
}

func (r *PlayerRepository) ListByRoom(_ context.Context, roomID string) ([]domain.Player, error) {
	var rows []playerRow
	if _, err := r.client.From(tablePlayers).Select("*", "", false).Eq("room_id", roomID).ExecuteTo(&rows); err != nil {
		return nil, wrap(err, "list", tablePlayers)
	}
	players := make([]domain.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, row.domain())
	}
	return players, nil
}

func (r *PlayerRepository) Create(_ context.Context, p *domain.Player) error {
	var inserted []playerRow
	row := playerRow{Name: p.Name, Banned: p.Banned, RoomID: p.RoomID}
	if _, err := r.client.From(tablePlayers).Insert(row, false, "", "", "").ExecuteTo(&inserted); err != nil {
		return wrap(err, "insert", tablePlayers)
	}
	if len(inserted) == 0 {
		return fmt.Errorf("supabase: insert %s returned no row", tablePlayers)
	}
	*p = inserted[0].domain()
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p *domain.Player) error {
	var updated []playerRow
	row := playerRow{Name: p.Name, Banned: p.Banned, RoomID: p.RoomID}
	if _, err := r.client.From(tablePlayers).Update(row, "", "").Eq("id", p.ID).ExecuteTo(&updated); err != nil {
		return wrap(err, "update", tablePlayers)
	}
	if len(updated) == 0 {
		return repository.ErrNotFound
	}
	*p = updated[0].domain()
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) error {
	var deleted []playerRow
	if _, err := r.client.From(tablePlayers).Delete("", "").Eq("id", id).ExecuteTo(&deleted); err != nil {
		return wrap(err, "delete", tablePlayers)
	}
	if len(deleted) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// postgrest-go flattens errors to "(code) message".
func isForeignKeyViolation(err error) bool {
	return strings.HasPrefix(err.Error(), "(23503)")
}
