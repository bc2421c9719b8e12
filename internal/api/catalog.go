package api

import (
	"net/http"

	"github.com/macrolog/macrolog/internal/infra/catalog"
)

// ─── Catalog API ────────────────────────────────────────────────────────────
// Read-only lookups that drive the cascading selectors. Unknown keys give
// an empty list, never an error.

type groupView struct {
	Name      string   `json:"name"`
	Exercises []string `json:"exercises"`
}

type typeView struct {
	Name   string      `json:"name"`
	Groups []groupView `json:"groups"`
}

type categoryView struct {
	Name  string     `json:"name"`
	Types []typeView `json:"types"`
}

func catalogTree() []categoryView {
	out := make([]categoryView, 0, len(catalog.Catalog))
	for _, c := range catalog.Catalog {
		cv := categoryView{Name: c.Category.String(), Types: make([]typeView, 0, len(c.Types))}
		for _, t := range c.Types {
			tv := typeView{Name: t.Name, Groups: make([]groupView, 0, len(t.Groups))}
			for _, g := range t.Groups {
				tv.Groups = append(tv.Groups, groupView{
					Name:      g.Name,
					Exercises: catalog.ExercisesFor(cv.Name, t.Name, g.Name),
				})
			}
			cv.Types = append(cv.Types, tv)
		}
		out = append(out, cv)
	}
	return out
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories":  catalog.Categories(),
		"cardio":      catalog.Cardio.String(),
		"cardioGroup": catalog.CardioGroup,
		"all":         catalog.SelectAll,
		"tree":        catalogTree(),
	})
}

func (s *Server) handleCatalogTypes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, catalog.TypesFor(q.Get("category")))
}

func (s *Server) handleCatalogGroups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, catalog.GroupsFor(q.Get("category"), q.Get("type")))
}

func (s *Server) handleCatalogExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, catalog.ExercisesFor(q.Get("category"), q.Get("type"), q.Get("group")))
}
