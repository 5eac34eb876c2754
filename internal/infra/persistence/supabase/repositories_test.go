package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	supa "github.com/supabase-community/supabase-go"

	"rpg-gamemaster/internal/domain"
	"rpg-gamemaster/internal/repository"
)

// fakePostgREST serves the subset of PostgREST used by the repositories:
// eq filters, inserts, patches and deletes returning representations.
type fakePostgREST struct {
	mu     sync.Mutex
	tables map[string][]map[string]any
	nextID int
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	filters := map[string]string{}
	for key, values := range r.URL.Query() {
		if key == "select" || key == "limit" {
			continue
		}
		filters[key] = strings.TrimPrefix(values[0], "eq.")
	}
	matches := func(row map[string]any) bool {
		for col, want := range filters {
			if fmt.Sprint(row[col]) != want {
				return false
			}
		}
		return true
	}

	var out []map[string]any
	switch r.Method {
	case http.MethodGet:
		for _, row := range f.tables[table] {
			if matches(row) {
				out = append(out, row)
			}
		}
	case http.MethodPost:
		var row map[string]any
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			http.Error(w, `{"code":"400","message":"bad body"}`, http.StatusBadRequest)
			return
		}
		f.nextID++
		row["id"] = fmt.Sprintf("id-%d", f.nextID)
		row["created_at"] = time.Date(2026, 1, 1, 10, 0, f.nextID, 0, time.UTC).Format(time.RFC3339)
		f.tables[table] = append(f.tables[table], row)
		out = append(out, row)
	case http.MethodPatch:
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, `{"code":"400","message":"bad body"}`, http.StatusBadRequest)
			return
		}
		for _, row := range f.tables[table] {
			if matches(row) {
				for k, v := range patch {
					row[k] = v
				}
				out = append(out, row)
			}
		}
	case http.MethodDelete:
		var kept []map[string]any
		for _, row := range f.tables[table] {
			if matches(row) {
				out = append(out, row)
			} else {
				kept = append(kept, row)
			}
		}
		f.tables[table] = kept
	}
	if out == nil {
		out = []map[string]any{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func setupStore(t *testing.T) (repository.Store, *fakePostgREST) {
	t.Helper()
	fake := &fakePostgREST{tables: map[string][]map[string]any{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := supa.NewClient(srv.URL, "test-key", nil)
	require.NoError(t, err)
	return NewStore(client), fake
}

func TestRoomRepository_RoundTrip(t *testing.T) {
	store, fake := setupStore(t)
	ctx := context.Background()

	room := domain.NewRoom()
	room.Password = "secret"
	require.NoError(t, store.Rooms.Create(ctx, room))
	assert.Equal(t, "id-1", room.ID)
	assert.False(t, room.CreatedAt.IsZero())

	stored := fake.tables[tableRooms][0]
	assert.Equal(t, float64(domain.DefaultNumberOfVariant), stored["number_of_variant"])
	assert.Equal(t, false, stored["open"])
	assert.NotContains(t, stored, "updated_at")

	got, err := store.Rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Password)
	assert.Equal(t, domain.DefaultTemperature, got.Temperature)

	got.Open = true
	require.NoError(t, store.Rooms.Update(ctx, got))
	require.NoError(t, store.Rooms.UpdateMission(ctx, room.ID, "Find the relic"))

	got, err = store.Rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, got.Open)
	assert.Equal(t, "Find the relic", got.Mission)
}

func TestRoomRepository_NotFound(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, err := store.Rooms.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = store.Rooms.Update(ctx, &domain.Room{ID: "missing"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, store.Rooms.UpdateMission(ctx, "missing", "x"), repository.ErrNotFound)
	assert.ErrorIs(t, store.Rooms.Delete(ctx, "missing"), repository.ErrNotFound)
}

func TestRoomEventRepository_ListAndDeleteByRoom(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	for _, room := range []string{"r1", "r1", "r2"} {
		ev := &domain.RoomEvent{Event: "storm in " + room, RoomID: room, TypeID: "t1"}
		require.NoError(t, store.Events.Create(ctx, ev))
		assert.Equal(t, room, ev.RoomID)
	}

	events, err := store.Events.ListByRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	ids, err := store.Events.DeleteByRoom(ctx, "r1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"id-1", "id-2"}, ids)

	events, err = store.Events.ListByRoom(ctx, "r2")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "storm in r2", events[0].Event)
}

func TestPlayerRepository_BannedIsWritten(t *testing.T) {
	store, fake := setupStore(t)
	ctx := context.Background()

	p := &domain.Player{Name: "Ayla", RoomID: "r1", Banned: true}
	require.NoError(t, store.Players.Create(ctx, p))

	p.Banned = false
	require.NoError(t, store.Players.Update(ctx, p))
	assert.Equal(t, false, fake.tables[tablePlayers][0]["banned"])

	require.NoError(t, store.Players.Delete(ctx, p.ID))
	_, err := store.Players.Get(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoomEventRepository_ForeignKeyViolation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23503","message":"violates foreign key constraint"}`))
	}))
	t.Cleanup(srv.Close)
	client, err := supa.NewClient(srv.URL, "test-key", nil)
	require.NoError(t, err)

	store := NewStore(client)
	err = store.Events.Create(context.Background(), &domain.RoomEvent{Event: "x", RoomID: "r", TypeID: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "23503")
	assert.ErrorIs(t, err, repository.ErrMissingReference)
}
