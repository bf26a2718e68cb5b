package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/padd/pkg/buildinfo"
	"github.com/matzehuels/padd/pkg/config"
	perrors "github.com/matzehuels/padd/pkg/errors"
	"github.com/matzehuels/padd/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "padd"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "padd lays out baseline and column grid overlays",
		Long:         `padd computes CSS grid column templates, snaps measurements to a baseline unit and renders grid overlays as HTML, SVG, JSON or terminal art.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./padd.toml, then the user config dir)")

	root.AddCommand(c.calcCommand())
	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.windowCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Settings
// =============================================================================

// loadSettings loads the --config file, or the first config file found in
// the working directory and the user config dir. Without --config and without
// any file, the built-in defaults are used. It returns the path loaded, or ""
// for defaults.
func (c *CLI) loadSettings(ctx context.Context) (config.Settings, string, error) {
	logger := loggerFromContext(ctx)
	if c.configPath != "" {
		s, err := config.Load(c.configPath)
		if err != nil {
			return config.Settings{}, "", err
		}
		logger.Debug("loaded config", "path", c.configPath)
		return s, c.configPath, nil
	}

	for _, path := range configCandidates() {
		s, err := config.Load(path)
		if perrors.Is(err, perrors.ErrCodeFileNotFound) {
			continue
		}
		if err != nil {
			return config.Settings{}, "", err
		}
		logger.Debug("loaded config", "path", path)
		return s, path, nil
	}
	logger.Debug("no config file found, using defaults")
	return config.Default(), "", nil
}

// configCandidates lists the config files looked up without --config.
func configCandidates() []string {
	paths := []string{config.DefaultPath}
	if dir, err := configDir(); err == nil {
		paths = append(paths, filepath.Join(dir, config.DefaultPath))
	}
	return paths
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/padd/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
