package postgresadapter

import "math/rand"

// SystemRand draws from the process-wide PRNG.
type SystemRand struct{}

func (SystemRand) Intn(n int) int {
	return rand.Intn(n)
}
