package gallery_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizalsl/portfolio/internal/catalog"
	"github.com/vizalsl/portfolio/internal/gallery"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Project{
		{ID: "healthcare-ai", Title: "Healthcare", Tags: []string{"Python", "AI", "Healthcare", "ETL"}, Type: catalog.TypeProfessional, Status: catalog.StatusCompleted},
		{ID: "llm-embeddings", Title: "Embeddings", Tags: []string{"LLM", "AI", "Python", "Embeddings"}, Type: catalog.TypePersonal, Status: catalog.StatusCompleted},
		{ID: "etl-automation", Title: "ETL", Tags: []string{"Python", "ETL", "AWS", "MySQL"}, Type: catalog.TypeProfessional, Status: catalog.StatusCompleted},
		{ID: "predictive-analytics", Title: "Prediction", Tags: []string{"Python", "ML", "Analytics", "Side Project"}, Type: catalog.TypePersonal, Status: catalog.StatusInProgress},
	})
	require.NoError(t, err)
	return c
}

func TestNewState(t *testing.T) {
	s := gallery.New()
	require.Equal(t, catalog.FilterAll, s.ActiveFilter())
	_, ok := s.SelectedID()
	require.False(t, ok)
}

func TestSelectOverwrites(t *testing.T) {
	s := gallery.New()
	s.Select("healthcare-ai")
	s.Select("etl-automation")

	id, ok := s.SelectedID()
	require.True(t, ok)
	require.Equal(t, "etl-automation", id)
}

func TestSelectThenClear(t *testing.T) {
	s := gallery.New()
	s.Select("healthcare-ai")
	s.Clear()

	id, ok := s.SelectedID()
	require.False(t, ok)
	require.Empty(t, id)
	require.Nil(t, s.View(testCatalog(t)).Selected)
}

func TestSetFilterBlankResets(t *testing.T) {
	s := gallery.New()
	s.SetFilter("AI")
	require.Equal(t, "AI", s.ActiveFilter())
	s.SetFilter("  ")
	require.Equal(t, catalog.FilterAll, s.ActiveFilter())
}

func TestViewProjectsFilterAndSelection(t *testing.T) {
	c := testCatalog(t)
	s := gallery.New()
	s.SetFilter("AI")
	s.Select("llm-embeddings")

	v := s.View(c)
	require.Equal(t, "AI", v.ActiveFilter)
	require.Len(t, v.Projects, 2)
	require.Equal(t, "healthcare-ai", v.Projects[0].ID)
	require.Equal(t, "llm-embeddings", v.Projects[1].ID)
	require.NotNil(t, v.Selected)
	require.Equal(t, "llm-embeddings", v.Selected.ID)

	var active []string
	for _, f := range v.Filters {
		if f.Active {
			active = append(active, f.Label)
		}
		if f.Label == "AI" {
			require.Equal(t, 2, f.Count)
		}
	}
	require.Equal(t, []string{"AI"}, active)
}

func TestViewUnknownSelectionIsIgnored(t *testing.T) {
	s := gallery.New()
	s.Select("does-not-exist")
	require.Nil(t, s.View(testCatalog(t)).Selected)
}

func TestViewEmptyResultAndExtraLabels(t *testing.T) {
	s := gallery.New()
	s.SetFilter("Go")

	v := s.View(testCatalog(t), "Go")
	require.True(t, v.Empty())
	last := v.Filters[len(v.Filters)-1]
	require.Equal(t, "Go", last.Label)
	require.Zero(t, last.Count)
	require.True(t, last.Active)
}

func TestEveryDerivedFilterShowsItsCount(t *testing.T) {
	c, err := catalog.New([]catalog.Project{
		{ID: "a", Title: "A", Tags: []string{"Side Project ", " Go"}, Type: catalog.TypeMVP, Status: catalog.StatusCompleted},
		{ID: "b", Title: "B", Tags: []string{"Go"}, Type: catalog.TypePersonal, Status: catalog.StatusInProgress},
	})
	require.NoError(t, err)

	for _, label := range c.Filters() {
		s := gallery.New()
		s.SetFilter(label)
		v := s.View(c)
		require.Equal(t, label, v.ActiveFilter)
		require.Positive(t, c.Count(label), label)
		require.Len(t, v.Projects, c.Count(label), label)
	}
}
