package orchestrator

import (
	"fmt"

	"github.com/standardbeagle/irengine/internal/config"
	"github.com/standardbeagle/irengine/internal/debug"
	"github.com/standardbeagle/irengine/internal/ircache"
	"github.com/standardbeagle/irengine/internal/scope"
)

// OptionsFromConfig derives the orchestrator's Options from a loaded
// *config.Config, so a CLI driver only has to thread one config value
// through instead of duplicating its fields into flags.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RepoID:           cfg.Project.Name,
		Workers:          cfg.Build.Workers,
		Include:          cfg.Include,
		Exclude:          cfg.Exclude,
		BuildOptionsHash: buildOptionsHash(cfg),
	}
}

// buildOptionsHash folds the config's Version into ircache's key, so a
// cached document built under a different config version is never
// served back. No other config field (include/exclude, build tuning)
// contributes to the hash.
func buildOptionsHash(cfg *config.Config) string {
	return fmt.Sprintf("v1:%d", cfg.Version)
}

// ModeFromConfig maps the config's default scope mode name to scope.Mode.
func ModeFromConfig(cfg *config.Config) scope.Mode {
	return scope.ParseMode(cfg.Build.DefaultScopeMode)
}

// CacheFromConfig builds the two-tier cache Options implies: memory
// always, disk when CacheDir is set. A disk error degrades to
// memory-only rather than failing the build outright, since the disk
// tier is an optimization, not a correctness requirement.
func CacheFromConfig(cfg *config.Config) (*ircache.Cache, error) {
	mem := ircache.NewMemoryCache(10000)
	if cfg.Build.CacheDir == "" {
		return ircache.New(mem, nil), nil
	}
	disk, err := ircache.NewDiskCache(cfg.Build.CacheDir)
	if err != nil {
		debug.LogBuild("disk cache unavailable at %s, falling back to memory-only: %v", cfg.Build.CacheDir, err)
		return ircache.New(mem, nil), nil
	}
	return ircache.New(mem, disk), nil
}
