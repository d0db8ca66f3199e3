package util

import "math/rand"

// New returns a deterministic generator. Seed 0 is mapped to 1 so that an
// unset flag still produces a reproducible run.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// Derive returns the seed for run i of a batch started from base. It does
// not depend on which worker picks the run up.
func Derive(base int64, i int) int64 {
	return base + int64(i)
}

// Between draws an integer in [lo, hi], both inclusive.
func Between(r *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Uniform draws a float in [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
