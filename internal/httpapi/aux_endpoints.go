package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/finledger/internal/dictionary"
	"github.com/tinoosan/finledger/internal/ledger"
	"github.com/tinoosan/finledger/internal/slug"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

// dictionaryCategories lists the curated default categories, optionally
// filtered by ?type=.
func (s *Server) dictionaryCategories(w http.ResponseWriter, r *http.Request) {
	var tp *ledger.Type
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, err := ledger.ParseType(raw)
		if err != nil {
			badRequest(w, "invalid type")
			return
		}
		tp = &t
	}
	toJSON(w, http.StatusOK, map[string]any{"categories": dictionary.CategoriesFor(tp)})
}

func (s *Server) dictionaryCategory(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !slug.IsSlug(code) {
		badRequest(w, "invalid category code")
		return
	}
	def, ok := dictionary.Lookup(code)
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown category code", "not_found")
		return
	}
	toJSON(w, http.StatusOK, def)
}
