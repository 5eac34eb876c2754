package gormpersistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// setupStore opens an in-memory SQLite database for one test.
func setupStore(t *testing.T) repository.Store {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err, "open test database")
	store := NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRoomRepository_CRUD(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	room := domain.NewRoom()
	room.Open = true
	room.Password = "pw"
	require.NoError(t, store.Rooms.Create(ctx, room))
	require.NotEmpty(t, room.ID)

	got, err := store.Rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "pw", got.Password)
	assert.Equal(t, domain.DefaultPromptRules, got.PromptRules)

	got.Open = false
	got.Temperature = 0.5
	require.NoError(t, store.Rooms.Update(ctx, got))
	require.NoError(t, store.Rooms.UpdateMission(ctx, room.ID, "Find the lost sock"))

	got, err = store.Rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.False(t, got.Open, "false must be written, not skipped as a zero value")
	assert.Equal(t, 0.5, got.Temperature)
	assert.Equal(t, "Find the lost sock", got.Mission)

	rooms, err := store.Rooms.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	_, err = store.Rooms.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Rooms.UpdateMission(ctx, "missing", "x"), repository.ErrNotFound)
}

func TestRoomEventRepository_RequiresReferences(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	room := domain.NewRoom()
	require.NoError(t, store.Rooms.Create(ctx, room))

	err := store.Events.Create(ctx, &domain.RoomEvent{Event: "x", RoomID: room.ID, TypeID: "missing"})
	assert.ErrorIs(t, err, repository.ErrMissingReference)

	err = store.Events.Create(ctx, &domain.RoomEvent{Event: "x", RoomID: "missing", TypeID: "missing"})
	assert.ErrorIs(t, err, repository.ErrMissingReference)
}

func TestRoomDeletion_LeavesNoOrphans(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	keep := domain.NewRoom()
	drop := domain.NewRoom()
	require.NoError(t, store.Rooms.Create(ctx, keep))
	require.NoError(t, store.Rooms.Create(ctx, drop))
	et := &domain.EventType{Title: "Storm", TextPrompt: "A storm hits."}
	require.NoError(t, store.EventTypes.Create(ctx, et))

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Events.Create(ctx, &domain.RoomEvent{Event: "e", RoomID: drop.ID, TypeID: et.ID}))
	}
	require.NoError(t, store.Events.Create(ctx, &domain.RoomEvent{Event: "e", RoomID: keep.ID, TypeID: et.ID}))
	require.NoError(t, store.Players.Create(ctx, &domain.Player{Name: "Ada", RoomID: drop.ID}))

	ids, err := store.Events.DeleteByRoom(ctx, drop.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	require.NoError(t, store.Rooms.Delete(ctx, drop.ID))

	left, err := store.Events.ListByRoom(ctx, drop.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
	players, err := store.Players.ListByRoom(ctx, drop.ID)
	require.NoError(t, err)
	assert.Empty(t, players)

	kept, err := store.Events.ListByRoom(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
	assert.ErrorIs(t, store.Rooms.Delete(ctx, drop.ID), repository.ErrNotFound)
}

func TestRoomDelete_CascadesWithoutService(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	room := domain.NewRoom()
	require.NoError(t, store.Rooms.Create(ctx, room))
	et := &domain.EventType{TextPrompt: "p"}
	require.NoError(t, store.EventTypes.Create(ctx, et))
	require.NoError(t, store.Events.Create(ctx, &domain.RoomEvent{Event: "e", RoomID: room.ID, TypeID: et.ID}))

	require.NoError(t, store.Rooms.Delete(ctx, room.ID))

	left, err := store.Events.ListByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestRoomEventRepository_CreatedAtSet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	room := domain.NewRoom()
	require.NoError(t, store.Rooms.Create(ctx, room))
	et := &domain.EventType{TextPrompt: "p"}
	require.NoError(t, store.EventTypes.Create(ctx, et))

	before := time.Now().Add(-time.Second)
	ev := &domain.RoomEvent{Event: "e", RoomID: room.ID, TypeID: et.ID}
	require.NoError(t, store.Events.Create(ctx, ev))

	got, err := store.Events.Get(ctx, ev.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.After(before))
	assert.Equal(t, et.ID, got.TypeID)
}

func TestEventTypeAndPlayerRepositories(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	et := &domain.EventType{Title: "Omen", TextPrompt: "An omen appears."}
	require.NoError(t, store.EventTypes.Create(ctx, et))
	et.Title = "Dark omen"
	require.NoError(t, store.EventTypes.Update(ctx, et))
	got, err := store.EventTypes.Get(ctx, et.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dark omen", got.Title)
	require.NoError(t, store.EventTypes.Delete(ctx, et.ID))
	assert.ErrorIs(t, store.EventTypes.Delete(ctx, et.ID), repository.ErrNotFound)

	p := &domain.Player{Name: "Bo", RoomID: "r"}
	require.NoError(t, store.Players.Create(ctx, p))
	p.Banned = true
	require.NoError(t, store.Players.Update(ctx, p))
	gotP, err := store.Players.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, gotP.Banned)
}
