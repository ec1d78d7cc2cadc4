package service

import "math/rand/v2"

// IntN returns a uniform integer in [0, n)
type IntN func(n int) int

// defaultIntN draws from the runtime's auto-seeded source
var defaultIntN IntN = rand.IntN

// shuffle is an unbiased in-place Fisher-Yates shuffle
func shuffle[T any](items []T, intn IntN) {
	for i := len(items) - 1; i > 0; i-- {
		j := intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
