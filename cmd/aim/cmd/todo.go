package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aimcal/aim/internal/aim"
)

func newTodoCmd(e *env) *cobra.Command {
	todo := &cobra.Command{
		Use:   "todo",
		Short: "Manage to-dos",
	}
	todo.AddCommand(newTodoAddCmd(e), newTodoDoneCmd(e))
	return todo
}

func newTodoAddCmd(e *env) *cobra.Command {
	var due string
	var priority int

	c := &cobra.Command{
		Use:   "add <summary>",
		Short: "Create a new to-do",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			a, err := e.open(cc.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			summary := args[0]
			patch := aim.TodoPatch{Summary: &summary}
			if due != "" {
				patch.Due = &due
			}
			if cc.Flags().Changed("priority") {
				patch.Priority = &priority
			}

			rec, err := a.UpsertTodo(cc.Context(), patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "added todo %s: %s\n", rec.UID, rec.Summary)
			return nil
		},
	}
	c.Flags().StringVar(&due, "due", "", "due date/time, RFC 5545 form")
	c.Flags().IntVar(&priority, "priority", 0, "priority 1-9 (0 = none)")
	return c
}

func newTodoDoneCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id-or-uid>",
		Short: "Mark a to-do as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			a, err := e.open(cc.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.MarkDone(cc.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(e.stdout, "marked %s done\n", args[0])
			return nil
		},
	}
}
