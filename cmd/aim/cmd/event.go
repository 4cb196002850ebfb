package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aimcal/aim/store"
)

func newEventCmd(e *env) *cobra.Command {
	event := &cobra.Command{
		Use:   "event",
		Short: "Inspect events",
	}
	event.AddCommand(newEventListCmd(e), newEventGetCmd(e))
	return event
}

func newEventListCmd(e *env) *cobra.Command {
	var since string
	var limit, offset int

	c := &cobra.Command{
		Use:   "list",
		Short: "List events ordered by start",
		RunE: func(cc *cobra.Command, args []string) error {
			a, err := e.open(cc.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			events, err := a.ListEvents(cc.Context(),
				store.EventCondition{StartableSince: since},
				store.Pager{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}
			for _, ev := range events {
				fmt.Fprintf(e.stdout, "%s\t%s\t%s\n", ev.UID, ev.Start, ev.Summary)
			}
			return nil
		},
	}
	c.Flags().StringVar(&since, "since", "", "only events starting at or after this stamp")
	c.Flags().IntVar(&limit, "limit", 50, "maximum rows to return")
	c.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return c
}

func newEventGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <uid>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			a, err := e.open(cc.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ev, err := a.GetEvent(cc.Context(), args[0])
			if err != nil {
				return err
			}
			if ev == nil {
				return fmt.Errorf("event %s not found", args[0])
			}
			fmt.Fprintf(e.stdout, "%s\n%s\n%s – %s\n%s\n", ev.UID, ev.Summary, ev.Start, ev.End, ev.Description)
			return nil
		},
	}
}
