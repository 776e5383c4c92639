package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/govalues/money"

	"github.com/tinoosan/finledger/internal/ledger"
	"github.com/tinoosan/finledger/internal/service/analytics"
)

type postAccountRequest struct {
	Name           string `json:"name"`
	InitialBalance string `json:"initial_balance"`
}

type accountResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Balance string    `json:"balance"`
	Display string    `json:"display,omitempty"`
}

type postCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type categoryResponse struct {
	ID   uuid.UUID   `json:"id"`
	Name string      `json:"name"`
	Type ledger.Type `json:"type"`
}

// postOperationRequest.Type may be omitted; the category's type is used then.
type postOperationRequest struct {
	Type        string    `json:"type,omitempty"`
	AccountID   uuid.UUID `json:"account_id"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	CategoryID  uuid.UUID `json:"category_id"`
}

type operationResponse struct {
	ID          uuid.UUID   `json:"id"`
	Type        ledger.Type `json:"type"`
	AccountID   uuid.UUID   `json:"account_id"`
	Amount      string      `json:"amount"`
	Description string      `json:"description"`
	CategoryID  uuid.UUID   `json:"category_id"`
	Date        time.Time   `json:"date"`
}

type analyticsResponse struct {
	From       time.Time         `json:"from"`
	To         time.Time         `json:"to"`
	Count      int               `json:"count"`
	NetChange  string            `json:"net_change"`
	ByCategory map[string]string `json:"by_category"`
	ByType     map[string]string `json:"by_type"`
}

func (s *Server) toAccountResponse(a ledger.Account) accountResponse {
	out := accountResponse{ID: a.ID, Name: a.Name, Balance: a.Balance.String()}
	if s.deps.Currency != "" {
		if amt, err := money.ParseAmount(s.deps.Currency, a.Balance.String()); err == nil {
			out.Display = amt.String()
		}
	}
	return out
}

func toCategoryResponse(c ledger.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Type: c.Type}
}

func toOperationResponse(o ledger.Operation) operationResponse {
	return operationResponse{
		ID:          o.ID,
		Type:        o.Type,
		AccountID:   o.AccountID,
		Amount:      o.Amount.String(),
		Description: o.Description,
		CategoryID:  o.CategoryID,
		Date:        o.Date.UTC(),
	}
}

func toOperationResponses(ops []ledger.Operation) []operationResponse {
	out := make([]operationResponse, 0, len(ops))
	for _, o := range ops {
		out = append(out, toOperationResponse(o))
	}
	return out
}

func toAnalyticsResponse(r analytics.Report) analyticsResponse {
	out := analyticsResponse{
		From:       r.Start,
		To:         r.End,
		Count:      r.Count,
		NetChange:  r.NetChange.String(),
		ByCategory: make(map[string]string, len(r.ByCategory)),
		ByType:     make(map[string]string, len(r.ByType)),
	}
	for id, sum := range r.ByCategory {
		out.ByCategory[id.String()] = sum.String()
	}
	for t, sum := range r.ByType {
		out.ByType[string(t)] = sum.String()
	}
	return out
}

func parseAmount(s string) (decimal.Decimal, bool) {
	d, err := decimal.Parse(s)
	return d, err == nil
}
