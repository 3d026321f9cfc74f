// Package content loads the site's static copy: profile, skills,
// experience, projects and blog links.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vizalsl/portfolio/internal/catalog"
)

//go:embed default.yaml
var defaultDocument []byte

// ErrInvalidContent indicates a document that cannot back the site.
var ErrInvalidContent = errors.New("invalid content")

const dateLayout = "2006-01-02"

// Date is a calendar day written as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("line %d: parse date %q: %w", node.Line, raw, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type Education struct {
	Degree    string `yaml:"degree"`
	Graduated string `yaml:"graduated"`
	Summary   string `yaml:"summary"`
}

type Links struct {
	Email    string `yaml:"email"`
	LinkedIn string `yaml:"linkedin"`
	Medium   string `yaml:"medium"`
	Resume   string `yaml:"resume"`
}

type Profile struct {
	Name         string    `yaml:"name"`
	Headline     string    `yaml:"headline"`
	Tagline      string    `yaml:"tagline"`
	About        string    `yaml:"about"`
	Location     string    `yaml:"location"`
	ResponseTime string    `yaml:"response_time"`
	Stats        []Stat    `yaml:"stats"`
	Education    Education `yaml:"education"`
	Learning     []string  `yaml:"learning"`
	Links        Links     `yaml:"links"`
}

type SkillGroup struct {
	Category string   `yaml:"category"`
	Icon     string   `yaml:"icon"`
	Items    []string `yaml:"items"`
}

type Role struct {
	Role         string   `yaml:"role"`
	Company      string   `yaml:"company"`
	Period       string   `yaml:"period"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
}

// Post links to an article published elsewhere.
type Post struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Summary   string `json:"summary" yaml:"summary"`
	Published Date   `json:"published" yaml:"published"`
	ReadTime  string `json:"read_time" yaml:"read_time"`
	URL       string `json:"url" yaml:"url"`
	Category  string `json:"category" yaml:"category"`
}

// Site is the loaded, validated content of the page.
type Site struct {
	Profile      Profile
	Skills       []SkillGroup
	Experience   []Role
	Blogs        []Post
	Catalog      *catalog.Catalog
	ExtraFilters []string
}

type document struct {
	Profile    Profile           `yaml:"profile"`
	Skills     []SkillGroup      `yaml:"skills"`
	Experience []Role            `yaml:"experience"`
	Projects   []catalog.Project `yaml:"projects"`
	Blogs      []Post            `yaml:"blogs"`
	Filters    struct {
		Extra []string `yaml:"extra"`
	} `yaml:"filters"`
}

// Default returns the content compiled into the binary.
func Default() (*Site, error) {
	return Load(bytes.NewReader(defaultDocument))
}

// LoadFile reads a content document from path. An empty path selects the
// compiled-in default.
func LoadFile(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a content document.
func Load(r io.Reader) (*Site, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}

	if strings.TrimSpace(doc.Profile.Name) == "" {
		return nil, fmt.Errorf("%w: profile name is required", ErrInvalidContent)
	}
	cat, err := catalog.New(doc.Projects)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	seen := make(map[string]bool, len(doc.Blogs))
	for _, p := range doc.Blogs {
		if p.ID == "" || seen[p.ID] {
			return nil, fmt.Errorf("%w: blog post id %q missing or repeated", ErrInvalidContent, p.ID)
		}
		seen[p.ID] = true
	}

	return &Site{
		Profile:      doc.Profile,
		Skills:       doc.Skills,
		Experience:   doc.Experience,
		Blogs:        doc.Blogs,
		Catalog:      cat,
		ExtraFilters: doc.Filters.Extra,
	}, nil
}
