package plush

import (
	"context"
	"fmt"
	"runtime"

	"github.com/louisbranch/plush/internal/random"
	"golang.org/x/sync/errgroup"
)

// PopulationConfig describes a batch of random genomes.
type PopulationConfig struct {
	Size          int
	MaxGenomeSize int
	Seed          int64
	// Workers bounds parallelism; <= 0 uses GOMAXPROCS.
	Workers int
}

// Population builds cfg.Size random genomes in parallel. Each individual
// gets its own Source seeded from a master generator before any work
// starts, so the result depends on cfg.Seed only, not on Workers or
// scheduling.
func Population(ctx context.Context, g *Generator, cfg PopulationConfig) ([]Genome, error) {
	if g == nil {
		return nil, invalidArgument("generator", "must not be nil")
	}
	if cfg.Size < 0 {
		return nil, invalidArgument("population size", "must not be negative")
	}
	if cfg.MaxGenomeSize < 1 {
		return nil, invalidArgument("max genome size", "must be at least 1")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	master := random.New(cfg.Seed)
	seeds := make([]int64, cfg.Size)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	genomes := make([]Genome, cfg.Size)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, seed := range seeds {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			workerCtx := random.WithSource(groupCtx, random.New(seed))
			genome, err := g.RandomGenomeContext(workerCtx, cfg.MaxGenomeSize)
			if err != nil {
				return fmt.Errorf("individual %d: %w", i, err)
			}
			genomes[i] = genome
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return genomes, nil
}
