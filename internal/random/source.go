package random

import (
	"math/rand"

	apperrors "github.com/louisbranch/plush/internal/platform/errors"
)

// Source is the uniform randomness every generator component draws from.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). It fails when n <= 0.
	Intn(n int) (int, error)
}

// Rand is the default Source: a *rand.Rand driven by MT19937.
// A Rand is not safe for concurrent use; give each worker its own or wrap
// it with NewLocked.
type Rand struct {
	rng *rand.Rand
}

// New returns a Rand seeded with seed.
func New(seed int64) *Rand {
	return &Rand{rng: rand.New(NewMT19937(seed))}
}

// FromRand adapts an existing *rand.Rand.
func FromRand(rng *rand.Rand) *Rand {
	return &Rand{rng: rng}
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.rng.Float64()
}

// Intn returns a uniform value in [0, n).
func (r *Rand) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, errIntnBound(n)
	}
	return r.rng.Intn(n), nil
}

// Int63 returns a non-negative 63-bit value, used to derive child seeds.
func (r *Rand) Int63() int64 {
	return r.rng.Int63()
}

// Choice returns a uniformly chosen element of items.
func Choice[T any](src Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, apperrors.WithMetadata(apperrors.CodeInvalidArgument, "choice from empty sequence",
			map[string]string{"Argument": "sequence", "Reason": "must not be empty"})
	}
	i, err := src.Intn(len(items))
	if err != nil {
		return zero, err
	}
	return items[i], nil
}

// Shuffle returns a uniformly permuted copy of items. The input is not
// modified.
func Shuffle[T any](src Source, items []T) ([]T, error) {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j, err := src.Intn(i + 1)
		if err != nil {
			return nil, err
		}
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func errIntnBound(n int) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidArgument, "intn bound must be positive", map[string]string{
		"Argument": "bound",
		"Reason":   "must be positive",
	})
}
