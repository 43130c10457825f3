// Package commands implements the tagger CLI commands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/tagger/internal/cli/config"
	"github.com/leapstack-labs/tagger/internal/cli/output"
	"github.com/leapstack-labs/tagger/internal/engine"
	"github.com/leapstack-labs/tagger/internal/resolver"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext wired from the command's
// context and the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   engine.New(engine.Config{Logger: logger}),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), output.Mode(cfg.OutputFormat)),
	}
}

// getConfig returns the loaded configuration, falling back to a
// defaults-plus-environment load when no full load has happened (e.g. in
// tests that build commands directly).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cfg, err := config.LoadEnvConfig()
	if err != nil {
		return &config.Config{OutputFormat: config.DefaultOutput}
	}
	return cfg
}

// searchMode maps the --or flag onto combination semantics.
func searchMode(cfg *config.Config) resolver.Mode {
	if cfg.Or {
		return resolver.ModeOr
	}
	return resolver.ModeAnd
}
