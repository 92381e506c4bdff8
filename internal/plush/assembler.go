package plush

import (
	"fmt"

	"github.com/louisbranch/plush/internal/random"
)

// pointsPerGenomeEntry is the observed ratio of program points to genome
// entries after assembly.
const pointsPerGenomeEntry = 4

// Assembler expands a genome into an executable program tree. It must
// tolerate unbalanced close counts.
type Assembler interface {
	Assemble(genome Genome, cfg Config) (any, error)
}

// AssemblerFunc adapts a function to Assembler.
type AssemblerFunc func(genome Genome, cfg Config) (any, error)

// Assemble calls f.
func (f AssemblerFunc) Assemble(genome Genome, cfg Config) (any, error) {
	return f(genome, cfg)
}

// RandomProgram assembles a random genome sized for roughly maxPoints
// program points. maxPoints <= 0 uses the configured budget.
func (g *Generator) RandomProgram(src random.Source, asm Assembler, maxPoints int) (any, error) {
	if asm == nil {
		return nil, invalidArgument("assembler", "must not be nil")
	}
	if maxPoints <= 0 {
		maxPoints = g.cfg.MaxPointsInRandomExpressions
	}
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPointsInRandomExpressions
	}

	genome, err := g.RandomGenome(src, GenomeBudget(maxPoints))
	if err != nil {
		return nil, err
	}
	program, err := asm.Assemble(genome, g.Config())
	if err != nil {
		return nil, fmt.Errorf("assemble program: %w", err)
	}
	return program, nil
}

// GenomeBudget converts a program point budget to a max genome size.
func GenomeBudget(maxPoints int) int {
	return max(maxPoints/pointsPerGenomeEntry, 1)
}
