package menu

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7c3aed")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")).Bold(true)
)
