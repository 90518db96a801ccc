package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// TOMLOverrides is the machine-authored alternate to .lci.kdl: a small
// pinned set of fields a CI pipeline writes out (schema_version to pin
// against, skip patterns to fold into Exclude, build tuning), rather
// than the full hand-authored KDL document. Unlike LoadKDL's manual
// node walk, go-toml/v2's struct-tag decoding maps this directly —
// there's no hand-authored-document flexibility to account for here.
type TOMLOverrides struct {
	SchemaVersion int      `toml:"schema_version"`
	Skip          []string `toml:"skip"`
	Build         struct {
		CacheDir         string `toml:"cache_dir"`
		Workers          int    `toml:"workers"`
		FileTimeoutSec   int    `toml:"file_timeout_sec"`
		DefaultScopeMode string `toml:"default_scope_mode"`
		WatchDebounceMs  int    `toml:"watch_debounce_ms"`
	} `toml:"build"`
}

// LoadTOMLOverrides reads a CI-generated ".irbuild.toml" from projectRoot,
// if present, and returns nil with no error when it doesn't exist.
func LoadTOMLOverrides(projectRoot string) (*TOMLOverrides, error) {
	path := filepath.Join(projectRoot, ".irbuild.toml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read .irbuild.toml: %w", err)
	}

	var overrides TOMLOverrides
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse .irbuild.toml: %w", err)
	}
	return &overrides, nil
}

// ApplyTOMLOverrides folds a CI-pinned override set onto cfg: skip
// patterns are appended to Exclude, and any nonzero Build field wins
// over what the KDL config (or its defaults) already set. A version
// mismatch between the override file and cfg.Version is reported but
// not fatal — the overrides still apply, since a CI pipeline a
// schema_version behind is still worth honoring for its skip/build
// fields.
func ApplyTOMLOverrides(cfg *Config, overrides *TOMLOverrides) error {
	if overrides == nil {
		return nil
	}

	var versionErr error
	if overrides.SchemaVersion != 0 && overrides.SchemaVersion != cfg.Version {
		versionErr = fmt.Errorf(".irbuild.toml schema_version %d does not match config version %d", overrides.SchemaVersion, cfg.Version)
	}

	cfg.Exclude = append(cfg.Exclude, overrides.Skip...)

	if overrides.Build.CacheDir != "" {
		cfg.Build.CacheDir = overrides.Build.CacheDir
	}
	if overrides.Build.Workers != 0 {
		cfg.Build.Workers = overrides.Build.Workers
	}
	if overrides.Build.FileTimeoutSec != 0 {
		cfg.Build.FileTimeoutSec = overrides.Build.FileTimeoutSec
	}
	if overrides.Build.DefaultScopeMode != "" {
		cfg.Build.DefaultScopeMode = overrides.Build.DefaultScopeMode
	}
	if overrides.Build.WatchDebounceMs != 0 {
		cfg.Build.WatchDebounceMs = overrides.Build.WatchDebounceMs
	}

	return versionErr
}
