package config_test

import (
	"os"
	"testing"

	"github.com/fathomchess/zugzwang/config"
)

func TestDefaultIsValid(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadAppliesOverridesOnTopOfDefaults(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "*.toml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	if _, err := f.WriteString("hash_mb = 256\n"); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	f.Close()

	opts, err := config.Load(f.Name())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.HashMB != 256 {
		t.Fatalf("expected hash_mb to be overridden to 256, got %d", opts.HashMB)
	}
	if opts.Threads != config.DefaultThreads {
		t.Fatalf("expected threads to keep its default, got %d", opts.Threads)
	}
}

func TestValidateRejectsOutOfRangeHash(t *testing.T) {
	opts := config.Default()
	opts.HashMB = config.MaxHashMB + 1
	if err := opts.Validate(); err == nil {
		t.Fatalf("expected an error for an oversized hash table")
	}
}

func TestSetHashRejectsOutOfRange(t *testing.T) {
	opts := config.Default()
	if err := opts.SetHash(0); err == nil {
		t.Fatalf("expected an error for a zero-size hash table")
	}
	if err := opts.SetHash(128); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.HashMB != 128 {
		t.Fatalf("expected hash_mb to be updated to 128, got %d", opts.HashMB)
	}
}
