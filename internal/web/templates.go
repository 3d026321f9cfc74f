package web

import (
	"embed"
	"html/template"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vizalsl/portfolio/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

// cardTagLimit is how many tags a project card shows before "+N more".
const cardTagLimit = 3

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"galleryURL": galleryURL,
		"pageURL":    pageURL,
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"ago": func(t time.Time) string {
			return humanize.Time(t)
		},
		"cardTags": func(tags []string) []string {
			if len(tags) > cardTagLimit {
				return tags[:cardTagLimit]
			}
			return tags
		},
		"moreTags": func(tags []string) int {
			if len(tags) > cardTagLimit {
				return len(tags) - cardTagLimit
			}
			return 0
		},
		"typeBadge": func(t catalog.Type) string {
			switch t {
			case catalog.TypePersonal:
				return "bg-indigo-600 text-white"
			case catalog.TypeProfessional:
				return "bg-emerald-600 text-white"
			default:
				return "bg-amber-500 text-slate-900"
			}
		},
	}
}

func galleryQuery(filter, project string) url.Values {
	q := url.Values{}
	if filter != "" && filter != catalog.FilterAll {
		q.Set("filter", filter)
	}
	if project != "" {
		q.Set("project", project)
	}
	return q
}

// galleryURL addresses the gallery fragment for a filter and selection.
func galleryURL(filter, project string) string {
	q := galleryQuery(filter, project)
	if len(q) == 0 {
		return "/projects"
	}
	return "/projects?" + q.Encode()
}

// pageURL addresses the full page for the same state, for history entries.
func pageURL(filter, project string) string {
	q := galleryQuery(filter, project)
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
