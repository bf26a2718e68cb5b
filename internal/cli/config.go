package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/padd/pkg/config"
	perrors "github.com/matzehuels/padd/pkg/errors"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or show overlay configuration",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to padd.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigInit(cmd, path, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if err := perrors.ValidatePath(path); err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return perrors.New(perrors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
	}
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()

	if err := config.Default().Encode(f); err != nil {
		return perrors.Wrap(perrors.ErrCodeInternal, err, "write %s", path)
	}
	printSuccess(cmd.ErrOrStderr(), "Wrote default configuration")
	printFile(cmd.ErrOrStderr(), path)
	return nil
}

func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := c.loadSettings(cmd.Context())
			if err != nil {
				return err
			}
			if path == "" {
				printInfo(cmd.ErrOrStderr(), "no config file found, showing defaults")
			} else {
				printInfo(cmd.ErrOrStderr(), "loaded %s", path)
			}
			return s.Encode(cmd.OutOrStdout())
		},
	}
}
