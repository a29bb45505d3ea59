package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/ui"
)

func newAddCmd(app *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args:  minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usageErr(fmt.Errorf("add: empty title"))
			}

			sess, err := openStore(cmd, app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			form := todo.NewSession(sess.store)
			if err := form.OpenForCreate(); err != nil {
				return err
			}
			if err := form.UpdateField(todo.FieldTitle, title); err != nil {
				return usageErr(err)
			}
			if cmd.Flags().Changed("status") {
				if err := form.UpdateField(todo.FieldStatus, status); err != nil {
					return usageErr(fmt.Errorf("add: %w", err))
				}
			}
			items, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added #%d", len(items)))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Initial status (Pending|Completed)")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var title, status string
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change the title and/or status of the item at a 1-based index",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseIndex("edit", args[0])
			if err != nil {
				return err
			}
			titleSet, statusSet := cmd.Flags().Changed("title"), cmd.Flags().Changed("status")
			if !titleSet && !statusSet {
				return usageErr(fmt.Errorf("edit: nothing to change (use --title and/or --status)"))
			}

			sess, err := openStore(cmd, app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			form := todo.NewSession(sess.store)
			if err := form.OpenForEdit(p); err != nil {
				return indexErr(err)
			}
			if titleSet {
				if err := form.UpdateField(todo.FieldTitle, title); err != nil {
					return usageErr(err)
				}
			}
			if statusSet {
				if err := form.UpdateField(todo.FieldStatus, status); err != nil {
					return usageErr(fmt.Errorf("edit: %w", err))
				}
			}
			if _, err := form.Submit(cmd.Context()); err != nil {
				return indexErr(err)
			}
			ui.OK(cmd.OutOrStdout(), "updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&status, "status", "", "New status (Pending|Completed)")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle Completed for the item at a 1-based index",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseIndex("done", args[0])
			if err != nil {
				return err
			}
			sess, err := openStore(cmd, app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			items, err := sess.store.Toggle(cmd.Context(), p)
			if err != nil {
				return indexErr(err)
			}
			ui.OK(cmd.OutOrStdout(), "toggled: now "+items[p].Status.String())
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove the item at a 1-based index",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseIndex("rm", args[0])
			if err != nil {
				return err
			}
			sess, err := openStore(cmd, app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			if _, err := sess.store.Remove(cmd.Context(), p); err != nil {
				return indexErr(err)
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}
