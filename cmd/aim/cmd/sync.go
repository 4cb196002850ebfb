package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd(e *env) *cobra.Command {
	sync := &cobra.Command{
		Use:   "sync",
		Short: "Discover and synchronize CalDAV calendars",
	}
	sync.AddCommand(newSyncDiscoverCmd(e), newSyncCalendarCmd(e))
	return sync
}

func newSyncDiscoverCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "List the calendar collections advertised by the configured server",
		RunE: func(cc *cobra.Command, args []string) error {
			a, err := e.open(cc.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			cals, err := a.DiscoverCalendars(cc.Context())
			if err != nil {
				return err
			}
			for _, c := range cals {
				fmt.Fprintf(e.stdout, "%s\t%s\n", c.Path, c.DisplayName)
			}
			return nil
		},
	}
}

func newSyncCalendarCmd(e *env) *cobra.Command {
	var compType string

	c := &cobra.Command{
		Use:   "calendar <path>",
		Short: "Run a sync pass against one calendar collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			a, err := e.open(cc.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result, err := a.SyncCalendar(cc.Context(), args[0], compType)
			if err != nil {
				return err
			}
			if result.Unchanged {
				fmt.Fprintln(e.stdout, "unchanged")
				return nil
			}
			fmt.Fprintf(e.stdout, "added %d, modified %d, deleted %d\n", result.Added, result.Modified, result.Deleted)
			return nil
		},
	}
	c.Flags().StringVar(&compType, "type", "VEVENT", "component type to sync (VEVENT or VTODO)")
	return c
}
