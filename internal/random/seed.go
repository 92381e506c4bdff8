// Package random is the single source of randomness for genome generation.
//
// Every draw made while building a genome goes through a Source that the
// caller owns and passes in explicitly. Nothing in this module reads the
// math/rand global generator, so a run is reproducible from its seed and
// concurrent workers can each hold an independent generator.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
