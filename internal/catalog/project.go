package catalog

// Type classifies a project by where it was built.
type Type string

const (
	TypePersonal     Type = "Personal"
	TypeProfessional Type = "Professional"
	TypeMVP          Type = "MVP"
)

// Types lists the closed set of project types in display order.
var Types = []Type{TypePersonal, TypeProfessional, TypeMVP}

// Valid reports whether t is a member of the closed set.
func (t Type) Valid() bool {
	switch t {
	case TypePersonal, TypeProfessional, TypeMVP:
		return true
	}
	return false
}

// Status reports how far along a project is.
type Status string

const (
	StatusCompleted  Status = "Completed"
	StatusInProgress Status = "In Progress"
)

func (s Status) Valid() bool {
	return s == StatusCompleted || s == StatusInProgress
}

// Links holds the optional outbound URLs of a project.
type Links struct {
	Demo   string `json:"demo,omitempty" yaml:"demo,omitempty"`
	GitHub string `json:"github,omitempty" yaml:"github,omitempty"`
	Medium string `json:"medium,omitempty" yaml:"medium,omitempty"`
}

// Empty reports whether no link is set.
func (l Links) Empty() bool {
	return l.Demo == "" && l.GitHub == "" && l.Medium == ""
}

// Project is a single gallery entry.
type Project struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Year            string   `json:"year" yaml:"year"`
	Description     string   `json:"description" yaml:"description"`
	LongDescription string   `json:"long_description" yaml:"long_description"`
	Tags            []string `json:"tags" yaml:"tags"`
	Type            Type     `json:"type" yaml:"type"`
	Status          Status   `json:"status" yaml:"status"`
	Links           *Links   `json:"links,omitempty" yaml:"links,omitempty"`
}

// HasTag reports whether tag appears in the project's tags.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether the project satisfies filter through either its
// tags or its type.
func (p Project) Matches(filter string) bool {
	if filter == FilterAll {
		return true
	}
	return p.HasTag(filter) || string(p.Type) == filter
}

// clone returns a deep copy so callers cannot mutate catalog internals.
func (p Project) clone() Project {
	out := p
	if p.Tags != nil {
		out.Tags = make([]string, len(p.Tags))
		copy(out.Tags, p.Tags)
	}
	if p.Links != nil {
		l := *p.Links
		out.Links = &l
	}
	return out
}
