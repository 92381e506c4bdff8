package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	MaxGenomeSize int `env:"TEST_MAX_GENOME_SIZE" envDefault:"100"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.MaxGenomeSize != 100 {
		t.Fatalf("expected default max genome size 100, got %d", cfg.MaxGenomeSize)
	}
}

func TestParseEnvUsesPrefix(t *testing.T) {
	t.Setenv("TEST_MAX_GENOME_SIZE", "7")
	t.Setenv("PLUSH_TEST_MAX_GENOME_SIZE", "12")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.MaxGenomeSize != 12 {
		t.Fatalf("expected prefixed value 12, got %d", cfg.MaxGenomeSize)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("PLUSH_TEST_MAX_GENOME_SIZE", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
