package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains all lipgloss styles for the dashboard
type Styles struct {
	// Header styling
	Title   lipgloss.Style
	Profile lipgloss.Style
	Clock   lipgloss.Style

	// Tabs
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Badge     lipgloss.Style

	// Next-action banner
	Banner       lipgloss.Style
	BannerUrgent lipgloss.Style

	// Rows
	RowNumber lipgloss.Style
	RowDim    lipgloss.Style
	Paid      lipgloss.Style
	Urgent    lipgloss.Style
	Warn      lipgloss.Style
	OK        lipgloss.Style

	// Alert modal
	AlertBox   lipgloss.Style
	AlertTitle lipgloss.Style

	// Footer styling
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Transient notice
	Notice lipgloss.Style
}

// DefaultStyles returns the default dashboard styles
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Profile: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Clock:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1).Underline(true),
		Badge:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

		Banner:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		BannerUrgent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),

		RowNumber: lipgloss.NewStyle().Bold(true),
		RowDim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Paid:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Urgent:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		OK:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),

		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2),
		AlertTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),

		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginTop(1),
		FooterKey: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),

		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
