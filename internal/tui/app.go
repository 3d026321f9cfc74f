// Package tui renders the project gallery in the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vizalsl/portfolio/internal/content"
	"github.com/vizalsl/portfolio/internal/gallery"
)

// App is the root Bubble Tea model.
type App struct {
	site   *content.Site
	state  *gallery.State
	cursor int
	width  int
	height int

	help     help.Model
	showHelp bool
}

func NewApp(site *content.Site) App {
	h := help.New()
	h.ShowAll = false

	return App{
		site:  site,
		state: gallery.New(),
		help:  h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) view() gallery.View {
	return a.state.View(a.site.Catalog, a.site.ExtraFilters...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Clear):
			a.state.Clear()
			return a, nil
		}

		// The overlay captures everything else until it is closed.
		if _, open := a.state.SelectedID(); open {
			return a, nil
		}

		v := a.view()
		switch {
		case key.Matches(msg, keys.PrevFilter):
			a.shiftFilter(v, -1)
		case key.Matches(msg, keys.NextFilter):
			a.shiftFilter(v, 1)
		case key.Matches(msg, keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
		case key.Matches(msg, keys.Down):
			if a.cursor < len(v.Projects)-1 {
				a.cursor++
			}
		case key.Matches(msg, keys.Select):
			if a.cursor < len(v.Projects) {
				a.state.Select(v.Projects[a.cursor].ID)
			}
		}
	}
	return a, nil
}

// shiftFilter moves the active filter by delta, wrapping around.
func (a *App) shiftFilter(v gallery.View, delta int) {
	if len(v.Filters) == 0 {
		return
	}
	idx := 0
	for i, f := range v.Filters {
		if f.Active {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(v.Filters)) % len(v.Filters)
	a.state.SetFilter(v.Filters[idx].Label)
	a.cursor = 0
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	v := a.view()
	header := a.renderHeader(v)
	footer := footerStyle.Render(a.help.View(keys))

	body := a.renderList(v)
	if v.Selected != nil {
		body = a.renderOverlay(v)
	}

	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}
	body = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (a App) renderHeader(v gallery.View) string {
	var filters []string
	for _, f := range v.Filters {
		label := fmt.Sprintf("%s %d", f.Label, f.Count)
		if f.Active {
			filters = append(filters, activeFilterStyle.Render(label))
		} else {
			filters = append(filters, inactiveFilterStyle.Render(label))
		}
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render(a.site.Profile.Name + " · Projects")
	row := lipgloss.NewStyle().Width(a.width - 2).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, filters...))
	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, row))
}

func (a App) renderList(v gallery.View) string {
	if v.Empty() {
		return mutedStyle.Render(fmt.Sprintf("  No projects match %q yet.", v.ActiveFilter))
	}

	var rows []string
	for i, p := range v.Projects {
		cursor := "  "
		style := normalItemStyle
		if i == a.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := style.Render(cursor+p.Title) + "  " +
			typeStyle(p.Type).Render(string(p.Type)) + " " +
			mutedStyle.Render(p.Year+" · "+string(p.Status))
		rows = append(rows, line)
		rows = append(rows, mutedStyle.Render("    "+p.Description))
		rows = append(rows, "    "+renderTags(p.Tags))
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (a App) renderOverlay(v gallery.View) string {
	p := v.Selected
	w := a.width - 4
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}

	rows := []string{
		titleStyle.Render(p.Title),
		typeStyle(p.Type).Render(string(p.Type)) + " " + mutedStyle.Render(p.Year+" · "+string(p.Status)),
		"",
		lipgloss.NewStyle().Width(w - 6).Render(p.LongDescription),
		"",
		renderTags(p.Tags),
	}
	if p.Links != nil && !p.Links.Empty() {
		rows = append(rows, "")
		for _, l := range []struct{ label, url string }{
			{"Demo", p.Links.Demo},
			{"Code", p.Links.GitHub},
			{"Article", p.Links.Medium},
		} {
			if l.url != "" {
				rows = append(rows, mutedStyle.Render(l.label+": ")+l.url)
			}
		}
	}
	rows = append(rows, "", mutedStyle.Render("esc: close"))

	return overlayStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderTags(tags []string) string {
	rendered := make([]string, len(tags))
	for i, t := range tags {
		rendered[i] = tagStyle.Render(t)
	}
	return strings.Join(rendered, " ")
}
