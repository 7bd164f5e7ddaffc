package ui

import "github.com/charmbracelet/lipgloss"

var (
	hnOrange = lipgloss.Color("#FF6600")

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(hnOrange).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	SubmitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(hnOrange).
			Bold(true).
			Padding(0, 1)

	SubmitDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Background(lipgloss.Color("#333333")).
				Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(hnOrange)
)
