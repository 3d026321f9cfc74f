// Package catalog holds the fixed, ordered list of portfolio projects and
// the filter that narrows it for display.
package catalog

import (
	"fmt"
	"strings"
)

// FilterAll is the sentinel filter that matches every project.
const FilterAll = "All"

// Catalog is an immutable ordered collection of projects. It is safe for
// concurrent use once built.
type Catalog struct {
	projects []Project
	index    map[string]int
}

// New validates projects and returns a catalog that owns a copy of them.
func New(projects []Project) (*Catalog, error) {
	if len(projects) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		projects: make([]Project, 0, len(projects)),
		index:    make(map[string]int, len(projects)),
	}
	for i, p := range projects {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" || strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("project %d: %w", i, ErrInvalidProject)
		}
		if !p.Type.Valid() {
			return nil, fmt.Errorf("project %q: %w: %q", p.ID, ErrInvalidType, p.Type)
		}
		if !p.Status.Valid() {
			return nil, fmt.Errorf("project %q: %w: %q", p.ID, ErrInvalidStatus, p.Status)
		}
		if _, exists := c.index[p.ID]; exists {
			return nil, fmt.Errorf("project %q: %w", p.ID, ErrDuplicateID)
		}
		p.Tags = normalizeTags(p.Tags)
		c.index[p.ID] = len(c.projects)
		c.projects = append(c.projects, p.clone())
	}
	return c, nil
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// Projects returns every project in catalog order.
func (c *Catalog) Projects() []Project {
	return cloneAll(c.projects)
}

// Get returns the project with the given ID.
func (c *Catalog) Get(id string) (Project, bool) {
	i, ok := c.index[id]
	if !ok {
		return Project{}, false
	}
	return c.projects[i].clone(), true
}

// Filter returns the projects matching filter, in catalog order.
func (c *Catalog) Filter(filter string) []Project {
	return Filter(c.projects, filter)
}

// Count returns how many projects match filter.
func (c *Catalog) Count(filter string) int {
	n := 0
	for _, p := range c.projects {
		if p.Matches(filter) {
			n++
		}
	}
	return n
}

// Filters returns the labels a visitor can filter by: FilterAll, every tag
// in first-seen order, every type present, then any extra label not
// already listed. Extra labels may match nothing.
func (c *Catalog) Filters(extra ...string) []string {
	seen := map[string]bool{FilterAll: true}
	labels := []string{FilterAll}
	add := func(label string) {
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		labels = append(labels, label)
	}

	for _, p := range c.projects {
		for _, tag := range p.Tags {
			add(tag)
		}
	}
	for _, t := range Types {
		for _, p := range c.projects {
			if p.Type == t {
				add(string(t))
				break
			}
		}
	}
	for _, label := range extra {
		add(strings.TrimSpace(label))
	}
	return labels
}

// Filter returns the sub-sequence of projects that match filter. FilterAll
// returns every project. A filter matching nothing yields an empty slice.
func Filter(projects []Project, filter string) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.Matches(filter) {
			out = append(out, p.clone())
		}
	}
	return out
}

// normalizeTags trims each tag and drops blank ones so every tag is usable
// as a filter label as written. The result is never nil.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func cloneAll(projects []Project) []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = p.clone()
	}
	return out
}
