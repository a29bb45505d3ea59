package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/ui"
)

const maxTitleWidth = 80

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openStore(cmd, app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			ui.Panel(cmd.OutOrStdout(), listLines(sess.store, group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by Pending/Completed")
	return cmd
}

// entry keeps an item's 1-based index so grouped output still shows the
// number `done` and `rm` expect.
type entry struct {
	index int
	item  model.Item
}

func listLines(s *todo.Store, group bool) []string {
	t := ui.Current()
	items := s.Items()
	done, pending := s.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(items),
	)

	lines := []string{header, t.Muted.Render(ui.ProgressBar(done, len(items), 28)), ""}
	entries := make([]entry, len(items))
	for i, it := range items {
		entries[i] = entry{index: i + 1, item: it}
	}
	if group {
		lines = append(lines, groupLines(entries)...)
	} else {
		lines = append(lines, flatLines(entries)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return lines
}

func flatLines(entries []entry) []string {
	t := ui.Current()
	if len(entries) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		box, boxStyle, titleStyle := t.BoxUnchecked, t.Muted, t.Title.UnsetBold()
		if e.item.Done() {
			box, boxStyle, titleStyle = t.BoxChecked, t.Success, t.Done
		}
		title := ansi.Truncate(e.item.Title, maxTitleWidth, "...")
		out = append(out, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", e.index)), boxStyle.Render(box), titleStyle.Render(title)))
	}
	return out
}

func groupLines(entries []entry) []string {
	var pend, done []entry
	for _, e := range entries {
		if e.item.Done() {
			done = append(done, e)
		} else {
			pend = append(pend, e)
		}
	}
	t := ui.Current()
	section := func(name string, es []entry) []string {
		lines := []string{t.Accent.Render(name)}
		if len(es) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(es)...)
	}

	lines := section(model.StatusPending.String(), pend)
	lines = append(lines, "")
	return append(lines, section(model.StatusCompleted.String(), done)...)
}
