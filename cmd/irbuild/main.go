package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/standardbeagle/irengine/internal/config"
	"github.com/standardbeagle/irengine/internal/orchestrator"
	"github.com/standardbeagle/irengine/internal/scope"
	"github.com/standardbeagle/irengine/internal/version"

	"github.com/urfave/cli/v2"
)

func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", c.String("config"), err)
	}
	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	if root := c.String("root"); root != "" {
		cfg.Project.Root = root
	}
	return cfg, nil
}

// buildSummary is the JSON shape printed to stdout after a build or an
// incremental rebuild, deliberately small: document/node counts and
// failures rather than the full IR, which belongs in the cache, not a
// terminal.
type buildSummary struct {
	SnapshotID    string   `json:"snapshot_id"`
	DocumentCount int      `json:"document_count"`
	NodeCount     int      `json:"node_count"`
	Failures      []string `json:"failures,omitempty"`
	ScopeFiles    []string `json:"scope_files,omitempty"`
	AffectedCount int      `json:"affected_count,omitempty"`
}

func summarize(result *orchestrator.BuildResult) buildSummary {
	s := buildSummary{SnapshotID: result.SnapshotID, DocumentCount: len(result.Documents)}
	for _, doc := range result.Documents {
		s.NodeCount += len(doc.Nodes)
	}
	for _, f := range result.FileFailures {
		s.Failures = append(s.Failures, fmt.Sprintf("%s: %s", f.FilePath, f.Message))
	}
	return s
}

func buildCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	cache, err := orchestrator.CacheFromConfig(cfg)
	if err != nil {
		return err
	}
	o := orchestrator.New(cache, orchestrator.OptionsFromConfig(cfg))

	result, err := o.Build(c.Context, cfg.Project.Root)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	return json.NewEncoder(os.Stdout).Encode(summarize(result))
}

func watchCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	cache, err := orchestrator.CacheFromConfig(cfg)
	if err != nil {
		return err
	}
	o := orchestrator.New(cache, orchestrator.OptionsFromConfig(cfg))

	mode := modeFromFlag(c.String("mode"), orchestrator.ModeFromConfig(cfg))
	debounce := orchestrator.DefaultWatchDebounce
	if ms := cfg.Build.WatchDebounceMs; ms > 0 {
		debounce = time.Duration(ms) * time.Millisecond
	}

	outcomes, err := o.WatchAndRebuild(c.Context, cfg.Project.Root, mode, debounce)
	if err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for outcome := range outcomes {
		summary := summarize(outcome.Result)
		for f := range outcome.Scope {
			summary.ScopeFiles = append(summary.ScopeFiles, f)
		}
		if outcome.Impact != nil {
			summary.AffectedCount = outcome.Impact.TotalAffectedCount()
		}
		if err := enc.Encode(summary); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	app := &cli.App{
		Name:    "irbuild",
		Usage:   "Layered intermediate-representation builder for multi-language codebases",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: ".lci.kdl", Usage: "Config file path"},
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Usage: "Project root to build (overrides config)"},
			&cli.StringSliceFlag{Name: "include", Usage: "Include files matching glob patterns"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "Exclude files matching glob patterns"},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Run a full layered build and print a summary",
				Action: buildCommand,
			},
			{
				Name:  "watch",
				Usage: "Watch for file changes and print an incremental rebuild summary per batch",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Usage: "Scope mode override: fast, balanced, deep, bootstrap, repair"},
				},
				Action: watchCommand,
			},
		},
		Action: func(c *cli.Context) error {
			return buildCommand(c)
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "irbuild: %v\n", err)
		os.Exit(1)
	}
}

// modeFromFlag prefers an explicit --mode flag over the config default.
func modeFromFlag(flag string, fallback scope.Mode) scope.Mode {
	if flag == "" {
		return fallback
	}
	return scope.ParseMode(flag)
}
