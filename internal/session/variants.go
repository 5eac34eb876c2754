package session

import (
	"math/rand/v2"

	"rpg-gamemaster/internal/domain"
)

// SelectVariants picks min(n, len(pool)) distinct event types uniformly at
// random. n below 1 counts as 1. rng may be nil.
func SelectVariants(pool []domain.EventType, n int, rng *rand.Rand) []domain.EventType {
	if n < 1 {
		n = 1
	}
	if n > len(pool) {
		n = len(pool)
	}
	var perm []int
	if rng != nil {
		perm = rng.Perm(len(pool))
	} else {
		perm = rand.Perm(len(pool))
	}
	out := make([]domain.EventType, n)
	for i := range out {
		out[i] = pool[perm[i]]
	}
	return out
}
