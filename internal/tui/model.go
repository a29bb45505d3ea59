// Package tui is the interactive front end: a list of items and a single
// add/edit form. Every user intent is forwarded to todo.Session or
// todo.Store; the model only mirrors their state.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/ui"
)

type Model struct {
	ctx     context.Context
	store   *todo.Store
	session *todo.Session
	logger  *log.Logger

	list   list.Model
	ti     textinput.Model
	keys   keyMap
	errMsg string

	width, height int
}

func New(ctx context.Context, s *todo.Store, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	keys := defaultKeyMap()

	l := list.New(toListItems(s.Items()), itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	// Positions are identities; a filtered view would renumber them.
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0

	m := Model{
		ctx:     ctx,
		store:   s,
		session: todo.NewSession(s),
		logger:  logger,
		list:    l,
		ti:      ti,
		keys:    keys,
		width:   80,
		height:  24,
	}
	m.list.Title = m.header()
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}
	if m.session.IsOpen() {
		return m.updateForm(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(km, m.keys.Add):
		if err := m.session.OpenForCreate(); err != nil {
			cmd := m.fail("add", err)
			return m, cmd
		}
		cmd := m.openForm("New item title...")
		return m, cmd

	case key.Matches(km, m.keys.Edit):
		if m.store.Len() == 0 {
			return m, nil
		}
		if err := m.session.OpenForEdit(m.list.Index()); err != nil {
			cmd := m.fail("edit", err)
			return m, cmd
		}
		cmd := m.openForm("Edit item title...")
		return m, cmd

	case key.Matches(km, m.keys.Toggle):
		if m.store.Len() == 0 {
			return m, nil
		}
		_, err := m.store.Toggle(m.ctx, m.list.Index())
		cmd := m.afterMutation("toggle", err)
		return m, cmd

	case key.Matches(km, m.keys.Delete):
		if m.store.Len() == 0 {
			return m, nil
		}
		_, err := m.store.Remove(m.ctx, m.list.Index())
		cmd := m.afterMutation("delete", err)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case km.Type == tea.KeyCtrlC:
			return m, tea.Quit

		case key.Matches(km, m.keys.Cancel):
			m.session.Cancel()
			m.closeForm()
			return m, nil

		case key.Matches(km, m.keys.CycleStatus):
			next := m.session.Draft().Status.Toggle()
			if err := m.session.UpdateField(todo.FieldStatus, next.String()); err != nil {
				cmd := m.fail("status", err)
				return m, cmd
			}
			return m, nil

		case key.Matches(km, m.keys.Submit):
			_, err := m.session.Submit(m.ctx)
			if !m.session.IsOpen() {
				m.closeForm()
			}
			cmd := m.afterMutation("save", err)
			return m, cmd
		}
	}

	prev := m.ti.Value()
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	next := m.ti.Value()
	if next == prev {
		return m, cmd
	}
	title := applyEdit(m.session.Draft().Title, prev, next)
	if err := m.session.UpdateField(todo.FieldTitle, title); err != nil {
		failCmd := m.fail("title", err)
		return m, tea.Batch(cmd, failCmd)
	}
	return m, cmd
}

func (m *Model) openForm(placeholder string) tea.Cmd {
	m.errMsg = ""
	m.ti.Placeholder = placeholder
	m.ti.SetValue(m.session.Draft().Title)
	m.ti.CursorEnd()
	m.resize()
	return m.ti.Focus()
}

func (m *Model) closeForm() {
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// afterMutation re-syncs the list with the store and reports err, if any.
func (m *Model) afterMutation(op string, err error) tea.Cmd {
	cmd := m.refresh()
	if err != nil {
		return tea.Batch(cmd, m.fail(op, err))
	}
	m.errMsg = ""
	return cmd
}

func (m *Model) refresh() tea.Cmd {
	idx := m.list.Index()
	cmd := m.list.SetItems(toListItems(m.store.Items()))
	if n := m.store.Len(); n > 0 {
		if idx >= n {
			idx = n - 1
		}
		m.list.Select(idx)
	}
	m.list.Title = m.header()
	return cmd
}

func (m *Model) fail(op string, err error) tea.Cmd {
	switch {
	case errors.Is(err, todo.ErrPersistence):
		m.errMsg = "not saved: " + err.Error()
		m.logger.Error("change kept in memory only", "op", op, "err", err)
	default:
		m.errMsg = op + ": " + err.Error()
		m.logger.Warn("action failed", "op", op, "err", err)
	}
	return m.list.NewStatusMessage(ui.Current().Error.Render(m.errMsg))
}

func (m Model) header() string {
	t := ui.Current()
	done, pending := m.store.Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.session.IsOpen() {
		h = m.height - 8
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	m.list.SetSize(w, h)
	m.ti.Width = w - 6
}

func (m Model) View() string {
	t := ui.Current()
	done, _ := m.store.Stats()
	bar := t.Muted.Render(ui.ProgressBar(done, m.store.Len(), 28))
	content := bar + "\n" + m.list.View()

	if m.session.IsOpen() {
		content += "\n" + ui.PanelString(m.formView())
	}
	return ui.PanelString(content)
}

func (m Model) formView() string {
	t := ui.Current()
	title := "Add new item"
	if m.session.State() == todo.StateEditing {
		title = "Edit item"
	}
	if m.errMsg != "" {
		title += "  " + t.Error.Render(m.errMsg)
	}

	status := m.session.Draft().Item().Status
	style := t.Pending
	if status == model.StatusCompleted {
		style = t.Success
	}
	return t.Title.Render(title) + "\n" +
		m.ti.View() + "\n" +
		"Status: " + style.Render(status.String()) + "  " +
		t.Muted.Render("tab: status · enter: save · esc: cancel")
}
