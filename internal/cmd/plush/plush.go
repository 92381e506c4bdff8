// Package plush implements the genome generator command.
package plush

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	platformcmd "github.com/louisbranch/plush/internal/platform/cmd"
	apperrors "github.com/louisbranch/plush/internal/platform/errors"
	"github.com/louisbranch/plush/internal/platform/otel"
	"github.com/louisbranch/plush/internal/plush"
	"github.com/louisbranch/plush/internal/plush/luapool"
	"github.com/louisbranch/plush/internal/random"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
)

// Config holds genome generator command configuration.
type Config struct {
	Seed               int64     `env:"SEED" envDefault:"0"`
	GenomeSize         int       `env:"GENOME_SIZE" envDefault:"-1"`
	MaxGenomeSize      int       `env:"MAX_GENOME_SIZE" envDefault:"50"`
	Population         int       `env:"POPULATION" envDefault:"1"`
	Workers            int       `env:"WORKERS" envDefault:"0"`
	Atoms              []string  `env:"ATOMS" envSeparator:","`
	AtomsScript        string    `env:"ATOMS_SCRIPT"`
	EpigeneticMarkers  []string  `env:"EPIGENETIC_MARKERS" envSeparator:","`
	CloseProbabilities []float64 `env:"CLOSE_PROBABILITIES" envSeparator:","`
	SilentProbability  float64   `env:"SILENT_PROBABILITY" envDefault:"0"`
	RandomInsertion    bool      `env:"RANDOM_INSERTION" envDefault:"false"`
	Locale             string    `env:"LOCALE" envDefault:"en-US"`
}

// ParseConfig loads env defaults and then parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	fs.IntVar(&cfg.GenomeSize, "genome-size", cfg.GenomeSize, "fixed genome size (negative = random size)")
	fs.IntVar(&cfg.MaxGenomeSize, "max-genome-size", cfg.MaxGenomeSize, "upper bound for random genome sizes")
	fs.IntVar(&cfg.Population, "population", cfg.Population, "number of genomes to generate")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel workers for random sizes (0 = GOMAXPROCS)")
	fs.StringVar(&cfg.AtomsScript, "atoms-script", cfg.AtomsScript, "Lua script returning the atom pool")
	fs.Float64Var(&cfg.SilentProbability, "silent-probability", cfg.SilentProbability, "probability that silent is true")
	fs.BoolVar(&cfg.RandomInsertion, "random-insertion", cfg.RandomInsertion, "mark entries as randomly inserted")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	fs.Func("atoms", "comma separated literal atoms", func(value string) error {
		cfg.Atoms = splitList(value)
		return nil
	})
	fs.Func("markers", "comma separated epigenetic markers (close, silent)", func(value string) error {
		cfg.EpigeneticMarkers = splitList(value)
		return nil
	})
	fs.Func("close-probabilities", "comma separated close count probabilities", func(value string) error {
		probs, err := parseFloats(splitList(value))
		if err != nil {
			return err
		}
		cfg.CloseProbabilities = probs
		return nil
	})

	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates the configured genomes and writes one JSON array per line.
func Run(ctx context.Context, cfg Config, out io.Writer) (err error) {
	if out == nil {
		out = io.Discard
	}

	ctx, span := otel.Tracer().Start(ctx, "plush.generate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
		}
		span.End()
	}()

	seed := cfg.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return err
		}
		log.Printf("using seed %d", seed)
	}

	atoms, closeAtoms, err := loadAtoms(cfg)
	if err != nil {
		return err
	}
	defer closeAtoms()

	markers := make([]plush.Marker, 0, len(cfg.EpigeneticMarkers))
	for _, m := range cfg.EpigeneticMarkers {
		markers = append(markers, plush.Marker(m))
	}
	gen, err := plush.New(atoms, plush.Config{
		EpigeneticMarkers:            markers,
		CloseParensProbabilities:     cfg.CloseProbabilities,
		SilentInstructionProbability: cfg.SilentProbability,
		RandomInsertion:              cfg.RandomInsertion,
	})
	if err != nil {
		return fmt.Errorf("configure generator: %w", err)
	}

	var genomes []plush.Genome
	if cfg.GenomeSize >= 0 {
		genomes, err = fixedGenomes(gen, seed, cfg.GenomeSize, cfg.Population)
	} else {
		genomes, err = plush.Population(ctx, gen, plush.PopulationConfig{
			Size:          cfg.Population,
			MaxGenomeSize: cfg.MaxGenomeSize,
			Seed:          seed,
			Workers:       cfg.Workers,
		})
	}
	if err != nil {
		return err
	}

	entries := 0
	enc := json.NewEncoder(out)
	for _, genome := range genomes {
		entries += len(genome)
		if err := enc.Encode(genome); err != nil {
			return fmt.Errorf("write genome: %w", err)
		}
	}
	span.SetAttributes(
		attribute.Int64("plush.seed", seed),
		attribute.Int("plush.genomes", len(genomes)),
		attribute.Int("plush.entries", entries),
	)
	return nil
}

// ErrorMessage renders a Run failure for the user in cfg.Locale.
func ErrorMessage(cfg Config, err error) string {
	return apperrors.Localize(err, cfg.Locale)
}

// fixedGenomes draws every genome from one sequential source.
func fixedGenomes(gen *plush.Generator, seed int64, size, count int) ([]plush.Genome, error) {
	src := random.New(seed)
	genomes := make([]plush.Genome, 0, max(count, 0))
	for i := 0; i < count; i++ {
		genome, err := gen.Genome(src, size)
		if err != nil {
			return nil, err
		}
		genomes = append(genomes, genome)
	}
	return genomes, nil
}

func loadAtoms(cfg Config) ([]plush.Atom, func(), error) {
	atoms := make([]plush.Atom, 0, len(cfg.Atoms))
	for _, raw := range cfg.Atoms {
		atoms = append(atoms, plush.Literal(parseLiteral(raw)))
	}
	if cfg.AtomsScript == "" {
		return atoms, func() {}, nil
	}

	pool, err := luapool.LoadFile(cfg.AtomsScript)
	if err != nil {
		return nil, nil, err
	}
	closePool := func() {
		if err := pool.Close(); err != nil {
			log.Printf("close atom script: %v", err)
		}
	}
	return append(atoms, pool.Atoms()...), closePool, nil
}

// parseLiteral reads integers, floats and booleans; anything else is an
// instruction symbol.
func parseLiteral(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseFloats(values []string) ([]float64, error) {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse probability %q: %w", v, err)
		}
		out = append(out, f)
	}
	return out, nil
}
