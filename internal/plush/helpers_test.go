package plush

import "github.com/louisbranch/plush/internal/random"

// scriptedSource replays fixed draws and fails the test run loudly when a
// caller draws more than scripted.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scriptedSource: no floats left")
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedSource) Intn(n int) (int, error) {
	if len(s.ints) == 0 {
		panic("scriptedSource: no ints left")
	}
	i := s.ints[0]
	s.ints = s.ints[1:]
	return i % n, nil
}

var _ random.Source = (*scriptedSource)(nil)

func instructions(genome Genome) []any {
	out := make([]any, len(genome))
	for i, e := range genome {
		out[i] = e.Instruction
	}
	return out
}

func withoutUUIDs(genome Genome) Genome {
	out := make(Genome, len(genome))
	for i, e := range genome {
		e.UUID = ""
		out[i] = e
	}
	return out
}
