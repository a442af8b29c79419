// config.go loads the engine's tunable constants from a TOML file.
// Everything here is a number named elsewhere in this package as a
// literal constant (spec.md doesn't mandate any of these exact
// values). Config only carries the values: nothing in this package
// reads it, and the search uses the package constants
// (FutilityMargin, lmrMinDepth, PollingStride, MaxPly) directly, so
// a loaded Config changes search behaviour only where the caller
// passes its fields on (e.g. HashSizeMB to NewTranspositionTable,
// Threads to ParallelSearch).
//
// Grounded on the TOML-driven engine configuration conventions used
// by FrankyGo and TermChess in the retrieved example pack (both
// require github.com/BurntSushi/toml); this teacher has no config
// file of its own, so the convention is adopted from the rest of the
// pack per the ambient-stack rules.

package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config bundles the engine's tunable parameters.
type Config struct {
	HashSizeMB       int `toml:"hash_size_mb"`
	DefaultMovesToGo int `toml:"default_moves_to_go"`
	MaxDepth         int `toml:"max_depth"`
	FutilityMargin   int `toml:"futility_margin"`
	LMRMinDepth      int `toml:"lmr_min_depth"`
	PollingStride    int `toml:"polling_stride"`

	// Threads is the number of parallel root-search workers sharing
	// one transposition table (spec.md §4.7; original_source/src/
	// search.rs calls this field "concurrency"). No code reads it on
	// its own; a caller passes it as ParallelSearch's threads
	// argument, where 1 runs a single worker.
	Threads int `toml:"threads"`
}

// DefaultConfig returns the constants this package otherwise uses
// as literals (spec.md §5's 8 MiB default TT, §4.6/§4.7's margins).
func DefaultConfig() Config {
	return Config{
		HashSizeMB:       8,
		DefaultMovesToGo: 30,
		MaxDepth:         MaxPly,
		FutilityMargin:   FutilityMargin,
		LMRMinDepth:      lmrMinDepth,
		PollingStride:    PollingStride,
		Threads:          1,
	}
}

// LoadConfig reads a TOML file at path, starting from DefaultConfig
// and overriding only the fields the file sets.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("engine: config %q: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: config %q: %w", path, err)
	}
	return cfg, nil
}
