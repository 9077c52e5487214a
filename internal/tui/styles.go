package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	launcherStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 2)
	userStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	botStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	replyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)
