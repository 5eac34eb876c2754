package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampTemperature(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{5, 2},
		{2, 2},
		{1.3, 1.3},
		{0, 0},
		{-1, -1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClampTemperature(tc.in), "ClampTemperature(%v)", tc.in)
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 := RoomEvent{ID: "a", CreatedAt: base}
	t2 := RoomEvent{ID: "b", CreatedAt: base.Add(time.Minute)}
	t3 := RoomEvent{ID: "c", CreatedAt: base.Add(2 * time.Minute)}

	orders := [][]RoomEvent{
		{t1, t2, t3},
		{t2, t3, t1},
		{t3, t1, t2},
		{t1, t3, t2},
	}
	for _, events := range orders {
		SortNewestFirst(events)
		assert.Equal(t, []string{"c", "b", "a"}, []string{events[0].ID, events[1].ID, events[2].ID})
	}
}

func TestRoomPublicHidesPassword(t *testing.T) {
	r := NewRoom()
	r.ID = "room-1"
	r.Password = "secret"

	pub := r.Public()
	assert.Empty(t, pub.Password)
	assert.Equal(t, "room-1", pub.ID)
	assert.Equal(t, "secret", r.Password, "original room must keep its password")
	assert.True(t, r.HasPassword())
	assert.False(t, pub.HasPassword())
}
