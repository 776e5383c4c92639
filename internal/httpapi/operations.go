package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/finledger/internal/ledger"
)

func (s *Server) postOperation(w http.ResponseWriter, r *http.Request) {
	var req postOperationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		badRequest(w, "invalid amount")
		return
	}
	var t ledger.Type
	if req.Type == "" {
		c, err := s.deps.Categories.Get(r.Context(), req.CategoryID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		t = c.Type
	} else {
		var err error
		if t, err = ledger.ParseType(req.Type); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
	}
	op, err := s.deps.Operations.Create(r.Context(), t, req.AccountID, amount, req.Description, req.CategoryID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toOperationResponse(op))
}

// listOperations filters by ?account_id=, ?category_id= and the exclusive
// period ?from=&to= (RFC 3339). Filters combine.
func (s *Server) listOperations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var accountID, categoryID uuid.UUID
	if raw := q.Get("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, "invalid account_id")
			return
		}
		accountID = id
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, "invalid category_id")
			return
		}
		categoryID = id
	}
	from, to, hasPeriod, ok := parsePeriod(w, r, false)
	if !ok {
		return
	}

	var (
		ops []ledger.Operation
		err error
	)
	ctx := r.Context()
	switch {
	case hasPeriod:
		ops, err = s.deps.Operations.ListByPeriod(ctx, from, to)
	case accountID != uuid.Nil:
		ops, err = s.deps.Operations.ListByAccount(ctx, accountID)
	case categoryID != uuid.Nil:
		ops, err = s.deps.Operations.ListByCategory(ctx, categoryID)
	default:
		ops, err = s.deps.Operations.List(ctx)
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	filtered := ops[:0:0]
	for _, op := range ops {
		if accountID != uuid.Nil && op.AccountID != accountID {
			continue
		}
		if categoryID != uuid.Nil && op.CategoryID != categoryID {
			continue
		}
		filtered = append(filtered, op)
	}
	toJSON(w, http.StatusOK, map[string]any{"operations": toOperationResponses(filtered)})
}

func (s *Server) getOperation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	op, err := s.deps.Operations.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toOperationResponse(op))
}

// deleteOperation cancels the operation with a reversal. Unknown ids are a
// no-op and still answer 204.
func (s *Server) deleteOperation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.deps.Operations.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parsePeriod reads ?from= and ?to=. Both or neither must be given unless
// required is set, in which case both are mandatory.
func parsePeriod(w http.ResponseWriter, r *http.Request, required bool) (from, to time.Time, present, ok bool) {
	q := r.URL.Query()
	rawFrom, rawTo := q.Get("from"), q.Get("to")
	if rawFrom == "" && rawTo == "" && !required {
		return time.Time{}, time.Time{}, false, true
	}
	if rawFrom == "" || rawTo == "" {
		badRequest(w, "from and to are required together")
		return time.Time{}, time.Time{}, false, false
	}
	var err error
	if from, err = time.Parse(time.RFC3339, rawFrom); err != nil {
		badRequest(w, "invalid from")
		return time.Time{}, time.Time{}, false, false
	}
	if to, err = time.Parse(time.RFC3339, rawTo); err != nil {
		badRequest(w, "invalid to")
		return time.Time{}, time.Time{}, false, false
	}
	return from, to, true, true
}
