// Package cmd wires cobra commands to the internal/aim facade. It
// stays deliberately thin: flag parsing and output formatting only,
// no business logic.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aimcal/aim/config"
	"github.com/aimcal/aim/credentials"
	"github.com/aimcal/aim/internal/aim"
	"github.com/aimcal/aim/logging"
)

// env carries the flags and open facade shared by every subcommand.
type env struct {
	configPath string
	verbose    bool
	stdout     io.Writer
	stderr     io.Writer
}

// Execute runs the CLI with the given arguments and IO writers,
// returning the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	e := &env{stdout: stdout, stderr: stderr}
	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "aim",
		Short:         "A local-first calendar and to-do core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "path to config.yaml (defaults to XDG config dir)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newIngestCmd(e),
		newTodoCmd(e),
		newEventCmd(e),
		newSyncCmd(e),
	)
	return root
}

// open loads configuration and wires a facade instance, ready for a
// subcommand to call into.
func (e *env) open(ctx context.Context) (*aim.Aim, error) {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return nil, err
	}
	level := "info"
	if e.verbose {
		level = "debug"
	}
	logger := logging.New(e.stderr, level)
	creds := credentials.NewManager()
	return aim.Open(ctx, cfg, creds, logger)
}
