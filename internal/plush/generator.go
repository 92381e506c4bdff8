package plush

import (
	"context"
	"fmt"

	apperrors "github.com/louisbranch/plush/internal/platform/errors"
	"github.com/louisbranch/plush/internal/platform/id"
	"github.com/louisbranch/plush/internal/random"
)

// Generator builds instruction entries and genomes from an atom pool.
// It holds no mutable state and may be shared between goroutines, as long
// as each goroutine passes its own Source.
type Generator struct {
	pool   []Atom
	cfg    Config
	closes CloseSampler
	newID  func() (string, error)
}

// New validates pool and cfg and returns a Generator for them.
func New(pool []Atom, cfg Config) (*Generator, error) {
	if len(pool) == 0 {
		return nil, invalidArgument("atom generators", "pool must not be empty")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	closes, err := NewCloseSampler(cfg.CloseParensProbabilities)
	if err != nil {
		return nil, err
	}

	return &Generator{
		pool:   append([]Atom(nil), pool...),
		cfg:    cfg.clone(),
		closes: closes,
		newID:  id.NewID,
	}, nil
}

// Config returns a copy of the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg.clone()
}

// Entry builds one instruction entry. Draws happen in key order: the
// epigenetic markers as configured, then the atom.
func (g *Generator) Entry(src random.Source) (Entry, error) {
	if src == nil {
		return Entry{}, invalidArgument("random source", "must not be nil")
	}

	entry := Entry{markers: g.cfg.EpigeneticMarkers}
	for _, m := range g.cfg.EpigeneticMarkers {
		switch m {
		case MarkerClose:
			entry.Close = g.closes.Sample(src)
		case MarkerSilent:
			entry.Silent = src.Float64() < g.cfg.SilentInstructionProbability
		}
	}

	atom, err := random.Choice(src, g.pool)
	if err != nil {
		return Entry{}, err
	}
	instruction, err := atom.Resolve(src)
	if err != nil {
		return Entry{}, err
	}
	entry.Instruction = instruction

	uuid, err := g.newID()
	if err != nil {
		return Entry{}, fmt.Errorf("entry uuid: %w", err)
	}
	entry.UUID = uuid
	entry.RandomInsertion = g.cfg.RandomInsertion

	return entry, nil
}

// Genome builds exactly size entries, in order, from src.
func (g *Generator) Genome(src random.Source, size int) (Genome, error) {
	if size < 0 {
		return nil, invalidArgument("genome size", "must not be negative")
	}
	genome := make(Genome, 0, size)
	for i := 0; i < size; i++ {
		entry, err := g.Entry(src)
		if err != nil {
			return nil, fmt.Errorf("genome entry %d: %w", i, err)
		}
		genome = append(genome, entry)
	}
	return genome, nil
}

// RandomGenome builds a genome whose length is uniform over [1, maxSize].
func (g *Generator) RandomGenome(src random.Source, maxSize int) (Genome, error) {
	if maxSize < 1 {
		return nil, invalidArgument("max genome size", "must be at least 1")
	}
	if src == nil {
		return nil, invalidArgument("random source", "must not be nil")
	}
	n, err := src.Intn(maxSize)
	if err != nil {
		return nil, err
	}
	return g.Genome(src, n+1)
}

// RandomGenomeContext is RandomGenome with the Source bound to ctx by
// random.WithSource.
func (g *Generator) RandomGenomeContext(ctx context.Context, maxSize int) (Genome, error) {
	src := random.FromContext(ctx)
	if src == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidArgument, "no random source bound to context",
			map[string]string{"Argument": "context", "Reason": "no random source bound"})
	}
	return g.RandomGenome(src, maxSize)
}
