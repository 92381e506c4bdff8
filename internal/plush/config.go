package plush

import (
	"math"

	apperrors "github.com/louisbranch/plush/internal/platform/errors"
)

// Marker names a key of an instruction entry.
type Marker string

const (
	MarkerClose           Marker = "close"
	MarkerSilent          Marker = "silent"
	MarkerRandomInsertion Marker = "random-insertion"
	MarkerInstruction     Marker = "instruction"
	MarkerUUID            Marker = "uuid"
)

// DefaultMaxPointsInRandomExpressions is the program size budget used by
// RandomProgram when neither the call nor the config sets one.
const DefaultMaxPointsInRandomExpressions = 50

// Config controls the markers attached to each generated entry.
type Config struct {
	// EpigeneticMarkers lists the optional markers (close, silent) to
	// attach, in key order.
	EpigeneticMarkers []Marker
	// CloseParensProbabilities is the close count table; empty means
	// DefaultCloseProbabilities.
	CloseParensProbabilities []float64
	// SilentInstructionProbability is the chance that silent is true.
	SilentInstructionProbability float64
	// RandomInsertion adds the random-insertion marker to every entry.
	RandomInsertion bool
	// MaxPointsInRandomExpressions is the default RandomProgram budget.
	MaxPointsInRandomExpressions int
}

// DefaultConfig returns a Config with no epigenetic markers.
func DefaultConfig() Config {
	return Config{
		CloseParensProbabilities:     DefaultCloseProbabilities(),
		MaxPointsInRandomExpressions: DefaultMaxPointsInRandomExpressions,
	}
}

// Validate checks every option except the close table, which
// NewCloseSampler checks.
func (c Config) Validate() error {
	seen := make(map[Marker]bool, len(c.EpigeneticMarkers))
	for _, m := range c.EpigeneticMarkers {
		if m != MarkerClose && m != MarkerSilent {
			return invalidArgument("epigenetic markers", "unknown marker "+string(m))
		}
		if seen[m] {
			return invalidArgument("epigenetic markers", "duplicate marker "+string(m))
		}
		seen[m] = true
	}
	p := c.SilentInstructionProbability
	if math.IsNaN(p) || p < 0 || p > 1 {
		return invalidArgument("silent instruction probability", "must be within [0, 1]")
	}
	if c.MaxPointsInRandomExpressions < 0 {
		return invalidArgument("max points in random expressions", "must not be negative")
	}
	return nil
}

// clone copies the slices so a Generator does not alias caller memory.
func (c Config) clone() Config {
	out := c
	out.EpigeneticMarkers = append([]Marker(nil), c.EpigeneticMarkers...)
	out.CloseParensProbabilities = append([]float64(nil), c.CloseParensProbabilities...)
	return out
}

func (c Config) hasMarker(m Marker) bool {
	for _, have := range c.EpigeneticMarkers {
		if have == m {
			return true
		}
	}
	return false
}

func invalidArgument(argument, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidArgument, argument+": "+reason, map[string]string{
		"Argument": argument,
		"Reason":   reason,
	})
}
