package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorNeonGreen = lipgloss.Color("#00FF99")
	colorTextSub   = lipgloss.Color("#64748B")
	colorDanger    = lipgloss.Color("#FF0055")

	special = lipgloss.NewStyle().Foreground(colorNeonGreen).Bold(true)
	subtle  = lipgloss.NewStyle().Foreground(colorTextSub)
	danger  = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
)
