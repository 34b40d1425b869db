// Package config holds the engine's tunable options: the defaults
// advertised to a UCI GUI via "option name ... type ...", overridable at
// startup from an optional TOML file and at runtime via "setoption".
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Defaults matches the teacher's single-worker, no-book engine shape:
// Threads is advertised for GUI compatibility but fixed at 1, since the
// searcher is not safe for concurrent use by more than one goroutine.
const (
	DefaultHashMB  = 64
	MinHashMB      = 1
	MaxHashMB      = 4096
	DefaultThreads = 1
	DefaultDepth   = 64
)

// Options is the set of engine options a UCI GUI can query and change.
type Options struct {
	HashMB  int `toml:"hash_mb"`
	Threads int `toml:"threads"`
	Depth   int `toml:"depth"`
}

// Default returns the engine's out-of-the-box option values.
func Default() Options {
	return Options{
		HashMB:  DefaultHashMB,
		Threads: DefaultThreads,
		Depth:   DefaultDepth,
	}
}

// Load reads options from a TOML file, starting from [Default] so an
// incomplete file still yields sane values for the fields it omits.
func Load(path string) (Options, error) {
	opts := Default()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, fmt.Errorf("config: loading %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate reports whether opts is within the ranges advertised by the
// engine's UCI "option" declarations.
func (o Options) Validate() error {
	if o.HashMB < MinHashMB || o.HashMB > MaxHashMB {
		return fmt.Errorf("config: hash size %d MB out of range [%d, %d]", o.HashMB, MinHashMB, MaxHashMB)
	}
	if o.Threads != DefaultThreads {
		return fmt.Errorf("config: threads %d unsupported, engine is single-worker", o.Threads)
	}
	return nil
}

// SetHash validates and applies the value of a "setoption name Hash value
// <mb>" request.
func (o *Options) SetHash(mb int) error {
	if mb < MinHashMB || mb > MaxHashMB {
		return fmt.Errorf("config: hash size %d MB out of range [%d, %d]", mb, MinHashMB, MaxHashMB)
	}
	o.HashMB = mb
	return nil
}
