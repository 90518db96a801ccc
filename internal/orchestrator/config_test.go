package orchestrator

import (
	"testing"

	"github.com/standardbeagle/irengine/internal/config"
	"github.com/standardbeagle/irengine/internal/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromConfig_CarriesProjectAndPatterns(t *testing.T) {
	cfg := &config.Config{
		Version: 3,
		Project: config.Project{Name: "demo"},
		Build:   config.Build{Workers: 4},
		Include: []string{"**/*.go"},
		Exclude: []string{"vendor/**"},
	}

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, "demo", opts.RepoID)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, []string{"**/*.go"}, opts.Include)
	assert.Equal(t, []string{"vendor/**"}, opts.Exclude)
	assert.NotEmpty(t, opts.BuildOptionsHash)
}

func TestModeFromConfig_ParsesDefaultScopeMode(t *testing.T) {
	cfg := &config.Config{Build: config.Build{DefaultScopeMode: "deep"}}
	assert.Equal(t, scope.ModeDeep, ModeFromConfig(cfg))
}

func TestCacheFromConfig_MemoryOnlyWhenCacheDirEmpty(t *testing.T) {
	cfg := &config.Config{Build: config.Build{}}
	cache, err := CacheFromConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, cache)
}

func TestCacheFromConfig_UsesDiskCacheWhenDirSet(t *testing.T) {
	cfg := &config.Config{Build: config.Build{CacheDir: t.TempDir()}}
	cache, err := CacheFromConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, cache)
}
