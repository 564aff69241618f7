package main

import (
	"github.com/charmbracelet/lipgloss"

	"insight-chat/internal/theme"
)

// styles groups the lipgloss styles used by the chat view, resolved once per
// theme.
type styles struct {
	Header    lipgloss.Style
	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	UserText  lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Spinner   lipgloss.Style
	Input     lipgloss.Style
	Dark      bool
}

// seriesColors maps the four dataset palette slots onto terminal colors:
// violet, sky, red, emerald.
var seriesColors = [...]lipgloss.Color{
	lipgloss.Color("135"),
	lipgloss.Color("39"),
	lipgloss.Color("203"),
	lipgloss.Color("42"),
}

func newStyles(t theme.Theme) styles {
	dark := t == theme.Dark
	text := lipgloss.Color("252")
	muted := lipgloss.Color("244")
	if !dark {
		text = lipgloss.Color("235")
		muted = lipgloss.Color("243")
	}
	return styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")),
		UserLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		BotLabel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")).MarginTop(1),
		UserText:  lipgloss.NewStyle().Foreground(text),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Spinner:   lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("135")).
			Padding(0, 1),
		Dark: dark,
	}
}

func seriesColor(i int) lipgloss.Color {
	return seriesColors[i%len(seriesColors)]
}
