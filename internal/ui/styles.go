package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#7C3AED")
	colorDim    = lipgloss.Color("#6B7280")
	colorError  = lipgloss.Color("#EF4444")
	colorDone   = lipgloss.Color("#10B981")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	doneStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Strikethrough(true)

	checkDoneStyle = lipgloss.NewStyle().
			Foreground(colorDone)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(colorDim)
)
