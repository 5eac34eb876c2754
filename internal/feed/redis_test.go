package feed

import (
	"context"
	"os"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpg-gamemaster/internal/domain"
)

// Runs against a real server when TEST_REDIS_ADDR is set.
func TestRedisBroker_RelaysBetweenInstances(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	prefix := "test:" + uuid.NewString() + ":"
	a, err := NewRedisBroker(ctx, client, prefix)
	require.NoError(t, err)
	b, err := NewRedisBroker(ctx, client, prefix)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = a.Close()
		_ = b.Close()
	})

	sub := b.Subscribe("r1")
	defer sub.Close()
	other := b.Subscribe("r2")
	defer other.Close()

	require.NoError(t, a.Publish(ctx, Change{Kind: Created, RoomID: "r1", Event: domain.RoomEvent{ID: "e1", RoomID: "r1"}}))

	got := receive(t, sub)
	assert.Equal(t, Created, got.Kind)
	assert.Equal(t, "e1", got.Event.ID)
	assert.Empty(t, other.C())
}
