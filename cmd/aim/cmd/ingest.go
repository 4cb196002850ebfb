package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIngestCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <directory>",
		Short: "Parse every .ics file in a directory into the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a, err := e.open(c.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			report, err := a.IngestDirectory(c.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "parsed %d file(s): %d event(s), %d todo(s)\n", report.Parsed, report.Events, report.Todos)
			for _, f := range report.Failures {
				fmt.Fprintf(e.stderr, "  %s: %v\n", f.Path, f.Err)
			}
			return nil
		},
	}
}
