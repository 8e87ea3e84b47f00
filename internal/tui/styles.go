package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7D56F4")
	muted   = lipgloss.Color("#808080")
	accent  = lipgloss.Color("#04B575")
)

// Styles holds the lipgloss styles used by the storefront view.
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Pane     lipgloss.Style
	Footer   lipgloss.Style
}

// DefaultStyles returns the storefront's default styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(muted),

		Focused: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		Pane: lipgloss.NewStyle().
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(muted),

		Footer: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),
	}
}
