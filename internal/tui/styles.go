package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vizalsl/portfolio/internal/catalog"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#4F46E5")
	colorSecondary = lipgloss.Color("#059669")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorMuted     = lipgloss.Color("#666666")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
)

var (
	activeFilterStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(colorPrimary).
				Padding(0, 1)

	inactiveFilterStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorSubtle).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

func typeStyle(t catalog.Type) lipgloss.Style {
	switch t {
	case catalog.TypePersonal:
		return lipgloss.NewStyle().Foreground(colorPrimary)
	case catalog.TypeProfessional:
		return lipgloss.NewStyle().Foreground(colorSecondary)
	default:
		return lipgloss.NewStyle().Foreground(colorAccent)
	}
}
