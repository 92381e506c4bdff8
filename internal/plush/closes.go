package plush

import (
	"math"
	"strconv"

	apperrors "github.com/louisbranch/plush/internal/platform/errors"
	"github.com/louisbranch/plush/internal/random"
)

// defaultCloseProbabilities approximates Binomial(n=4, p=1/16):
// p(0 closes), p(1 close), ...
var defaultCloseProbabilities = []float64{0.772, 0.206, 0.021, 0.001}

// sumTolerance absorbs rounding in tables written to sum to exactly 1.
// A running sum within it of 1 becomes a full bound.
const sumTolerance = 1e-9

// DefaultCloseProbabilities returns a copy of the default close table.
func DefaultCloseProbabilities() []float64 {
	out := make([]float64, len(defaultCloseProbabilities))
	copy(out, defaultCloseProbabilities)
	return out
}

// CloseSampler draws close counts from a cumulative probability table.
type CloseSampler struct {
	bounds    []float64
	maxCloses int
}

// NewCloseSampler builds a sampler for probs, where probs[i] is the
// probability of i closes. Empty probs selects the default table. Mass
// missing from a table summing below 1 goes to len(probs) closes; a table
// summing above 1 is rejected.
func NewCloseSampler(probs []float64) (CloseSampler, error) {
	if len(probs) == 0 {
		probs = defaultCloseProbabilities
	}

	bounds := make([]float64, 0, len(probs)+1)
	sum := 0.0
	for i, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return CloseSampler{}, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
				"close probability "+strconv.Itoa(i)+" is not a non-negative number",
				map[string]string{
					"Argument": "close parens probabilities",
					"Reason":   "entry " + strconv.Itoa(i) + " must be a non-negative number",
				})
		}
		sum += p
		if sum > 1+sumTolerance {
			return CloseSampler{}, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
				"close probabilities sum past 1 at entry "+strconv.Itoa(i),
				map[string]string{
					"Argument": "close parens probabilities",
					"Reason":   "must not sum to more than 1",
				})
		}
		bound := sum
		if bound >= 1-sumTolerance {
			bound = 1
		}
		bounds = append(bounds, bound)
	}
	bounds = append(bounds, 1.0)

	// u < 1 always stops at the first full bound.
	maxCloses := len(bounds) - 1
	for i, bound := range bounds {
		if bound >= 1 {
			maxCloses = i
			break
		}
	}
	return CloseSampler{bounds: bounds, maxCloses: maxCloses}, nil
}

// Bounds returns the cumulative bounds, ending with the implicit 1.0.
func (s CloseSampler) Bounds() []float64 {
	out := make([]float64, len(s.bounds))
	copy(out, s.bounds)
	return out
}

// MaxCloses is the largest count Sample can return.
func (s CloseSampler) MaxCloses() int {
	return s.maxCloses
}

// Sample returns the index of the first bound >= u, u uniform in [0, 1).
func (s CloseSampler) Sample(src random.Source) int {
	u := src.Float64()
	for i, bound := range s.bounds {
		if u <= bound {
			return i
		}
	}
	return s.maxCloses
}
