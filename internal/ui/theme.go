package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	SymOK, SymFail           string

	Border      lipgloss.Border
	BorderColor lipgloss.TerminalColor
}

var themes = map[string]Theme{
	"classic": {
		Name:    "classic",
		Title:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),

		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
		SymOK: "✔", SymFail: "✖",

		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
	},
	"neon": {
		Name:    "neon",
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),

		BoxUnchecked: "◻", BoxChecked: "◼",
		SymDone: "✔", SymPending: "•",
		SymOK: "✔", SymFail: "✖",

		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("13"),
	},
	"mono": {
		Name:    "mono",
		Title:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Accent:  lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Pending: lipgloss.NewStyle(),

		Selected: lipgloss.NewStyle(),
		Done:     lipgloss.NewStyle(),

		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymPending: "-",
		SymOK: "ok:", SymFail: "error:",

		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.NoColor{},
	},
}

var current = themes["classic"]

// SetTheme switches the active theme. Unknown names fall back to classic.
func SetTheme(name string) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		t = themes["classic"]
	}
	current = t
}

// Current exposes what renderers need.
func Current() Theme { return current }

// ThemeNames lists the known themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
