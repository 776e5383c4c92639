package httpapi

import (
	"net/http"

	"github.com/tinoosan/finledger/internal/ledger"
)

func (s *Server) postCategory(w http.ResponseWriter, r *http.Request) {
	var req postCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := ledger.ParseType(req.Type)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	c, err := s.deps.Categories.Create(r.Context(), req.Name, t)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toCategoryResponse(c))
}

// listCategories supports ?type=INCOME|EXPENSE.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	var (
		cats []ledger.Category
		err  error
	)
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, perr := ledger.ParseType(raw)
		if perr != nil {
			badRequest(w, "invalid type")
			return
		}
		cats, err = s.deps.Categories.ListByType(r.Context(), t)
	} else {
		cats, err = s.deps.Categories.List(r.Context())
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	toJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := s.deps.Categories.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.deps.Categories.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
