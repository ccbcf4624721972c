// Package config loads the ambient tuning knobs a serializability run
// needs beyond the Network System itself: the external checker's
// installation prefix, the per-disjunct timeout, the output directory
// root, and the strict/lenient proof-parsing toggle (DESIGN.md's
// decision for spec.md §7's "missing cert function" Open Question).
// Loading follows drand-drand's proposal_file.go idiom
// (toml.DecodeFile into a plain struct), plus environment variable
// overrides for the "single variable selects the installation prefix"
// knob spec.md §6 calls out explicitly.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// CheckerPrefixEnvVar is the environment variable spec.md §6 refers to
// as "a single variable selects the installation prefix of the
// Presburger library"; when set, it overrides Config.CheckerPrefix
// regardless of what the TOML file says.
const CheckerPrefixEnvVar = "SERIALCHECK_CHECKER_PREFIX"

// Config holds one analysis run's tuning knobs.
type Config struct {
	// CheckerPrefix is the installation prefix (bin directory) of the
	// external reachability checker.
	CheckerPrefix string `toml:"checker_prefix"`
	// DefaultTimeoutSeconds bounds each disjunct's checker invocation.
	DefaultTimeoutSeconds int `toml:"default_timeout_seconds"`
	// OutputRoot is the directory under which each run's per-analysis
	// subdirectory (named by its github.com/google/uuid identifier) is
	// created.
	OutputRoot string `toml:"output_root"`
	// StrictProofParsing controls what happens when a checker reports
	// unreachable but its stdout has no parseable `cert` function:
	// false (default) ends the whole reachability.Check call with a
	// Timeout decision at that disjunct; true surfaces
	// proof.ErrCertNotFound as a hard error.
	StrictProofParsing bool `toml:"strict_proof_parsing"`
	// LogLevel names a zerolog level ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`
	// LogPretty selects obslog's human-readable console writer over
	// newline-delimited JSON.
	LogPretty bool `toml:"log_pretty"`
}

// Default returns the zero-configuration fallback: an empty checker
// prefix (the caller must supply one, via file or env var, before
// invoking a real checker), a 30 second per-disjunct timeout, an
// "./serialcheck-out" output root, lenient proof parsing, and info-level
// pretty logging.
func Default() Config {
	return Config{
		DefaultTimeoutSeconds: 30,
		OutputRoot:            "serialcheck-out",
		StrictProofParsing:    false,
		LogLevel:              "info",
		LogPretty:             true,
	}
}

// Load reads path (if non-empty) as TOML over Default(), then applies
// CheckerPrefixEnvVar if set. An empty path returns Default() with only
// the environment override applied, matching "the TOML file is
// optional; environment variables always take precedence" from
// spec.md §6.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, configErrorf("Load", "decoding %q: %s", path, err)
		}
	}
	if prefix := os.Getenv(CheckerPrefixEnvVar); prefix != "" {
		cfg.CheckerPrefix = prefix
	}
	return cfg, nil
}

// Timeout returns DefaultTimeoutSeconds as a time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.DefaultTimeoutSeconds) * time.Second
}
