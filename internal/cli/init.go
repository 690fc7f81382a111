// Package cli provides the command-line interface for skstress.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/varungandhi-apple/swift-source-compat-suite/internal/config"
)

// InitFlags holds flags specific to the init command.
type InitFlags struct {
	// Project writes the config into the current checkout instead of the
	// global location.
	Project bool
}

// AddInitCommand adds the init command to the root command.
func AddInitCommand(root *cobra.Command) {
	flags := &InitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write a commented default configuration file.

By default the file is written to ~/.skstress/config.yaml. With --project it
is written to .skstress/config.yaml in the current directory, which overrides
the global config for this checkout. An existing file is never overwritten.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Project, "project", false, "write .skstress/config.yaml in the current directory")

	root.AddCommand(cmd)
}

// runInit writes the default config to the selected location.
func runInit(cmd *cobra.Command, flags *InitFlags) error {
	path := config.ProjectConfigPath()
	if !flags.Project {
		var err error
		path, err = config.GlobalConfigPath()
		if err != nil {
			return err
		}
	}

	if err := config.WriteDefault(path); err != nil {
		if stderrors.Is(err, os.ErrExist) {
			cmd.PrintErrf("config file already exists at %s; not overwriting\n", path)
			return nil
		}
		return err
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote default config to %s\n", path)
	return err
}
