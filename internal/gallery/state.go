// Package gallery holds the per-view filter and selection state of the
// project gallery and projects it over a catalog for rendering.
package gallery

import (
	"strings"

	"github.com/vizalsl/portfolio/internal/catalog"
)

// State is the transient gallery state owned by one view. The zero value
// is not ready for use; call New.
type State struct {
	activeFilter string
	selectedID   string
	hasSelection bool
}

// New returns the state a freshly mounted view starts with.
func New() *State {
	return &State{activeFilter: catalog.FilterAll}
}

// ActiveFilter returns the filter currently applied.
func (s *State) ActiveFilter() string {
	return s.activeFilter
}

// SetFilter changes the active filter. A blank filter resets to
// catalog.FilterAll. The selection is left alone.
func (s *State) SetFilter(filter string) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		filter = catalog.FilterAll
	}
	s.activeFilter = filter
}

// Select puts id in the single selection slot, replacing any previous
// selection. The id is not checked against a catalog.
func (s *State) Select(id string) {
	s.selectedID = id
	s.hasSelection = true
}

// Clear empties the selection slot.
func (s *State) Clear() {
	s.selectedID = ""
	s.hasSelection = false
}

// SelectedID returns the selected project id, if any.
func (s *State) SelectedID() (string, bool) {
	return s.selectedID, s.hasSelection
}

// FilterOption is one filter button.
type FilterOption struct {
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"-"`
}

// View is everything a renderer needs to draw the gallery.
type View struct {
	ActiveFilter string
	Filters      []FilterOption
	Projects     []catalog.Project
	// Selected is nil when nothing is selected or the selection names a
	// project that is not in the catalog.
	Selected *catalog.Project
}

// Empty reports whether the active filter matched no project.
func (v View) Empty() bool {
	return len(v.Projects) == 0
}

// View projects the state over c. extra lists filter labels defined
// outside the catalog data.
func (s *State) View(c *catalog.Catalog, extra ...string) View {
	labels := c.Filters(extra...)
	options := make([]FilterOption, len(labels))
	for i, label := range labels {
		options[i] = FilterOption{
			Label:  label,
			Count:  c.Count(label),
			Active: label == s.activeFilter,
		}
	}

	v := View{
		ActiveFilter: s.activeFilter,
		Filters:      options,
		Projects:     c.Filter(s.activeFilter),
	}
	if id, ok := s.SelectedID(); ok {
		if p, found := c.Get(id); found {
			v.Selected = &p
		}
	}
	return v
}
