package dice

import (
	crand "crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source is the randomness provider for dice rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// seededSource implements Source with a deterministic math/rand
// generator. Not safe for concurrent use; a Roller owns exactly one.
type seededSource struct {
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source seeded with seed.
// The same seed always reproduces the same sequence of values.
func NewSeededSource(seed int64) Source {
	return &seededSource{rng: mrand.New(mrand.NewSource(seed))}
}

func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.rng.Intn(n)
}

// cryptoSource implements Source using crypto/rand, for rolls where
// reproducibility is not requested.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}
