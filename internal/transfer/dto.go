// Package transfer moves a whole ledger in and out of files. A file holds one
// object with three arrays, accounts, categories and operations, encoded as
// JSON or YAML.
package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/errs"
	"github.com/tinoosan/finledger/internal/ledger"
)

// Snapshot is the in-memory form of an export file.
type Snapshot struct {
	Accounts   []ledger.Account
	Categories []ledger.Category
	Operations []ledger.Operation
}

type fileDTO struct {
	Accounts   []accountDTO   `json:"accounts" yaml:"accounts"`
	Categories []categoryDTO  `json:"categories" yaml:"categories"`
	Operations []operationDTO `json:"operations" yaml:"operations"`
}

type accountDTO struct {
	ID      string      `json:"id" yaml:"id"`
	Name    string      `json:"name" yaml:"name"`
	Balance decimalText `json:"balance" yaml:"balance"`
}

type categoryDTO struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type operationDTO struct {
	ID          string      `json:"id" yaml:"id"`
	Type        string      `json:"type" yaml:"type"`
	AccountID   string      `json:"bankAccountId" yaml:"bankAccountId"`
	Amount      decimalText `json:"amount" yaml:"amount"`
	Description string      `json:"description" yaml:"description"`
	CategoryID  string      `json:"categoryId" yaml:"categoryId"`
	Date        string      `json:"date" yaml:"date"`
}

// decimalText is written as a JSON string; bare JSON numbers are accepted
// on input.
type decimalText string

func (d *decimalText) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = decimalText(s)
		return nil
	}
	*d = decimalText(b)
	return nil
}

func toDTO(s Snapshot) fileDTO {
	out := fileDTO{
		Accounts:   make([]accountDTO, 0, len(s.Accounts)),
		Categories: make([]categoryDTO, 0, len(s.Categories)),
		Operations: make([]operationDTO, 0, len(s.Operations)),
	}
	for _, a := range s.Accounts {
		out.Accounts = append(out.Accounts, accountDTO{ID: a.ID.String(), Name: a.Name, Balance: decimalText(a.Balance.String())})
	}
	for _, c := range s.Categories {
		out.Categories = append(out.Categories, categoryDTO{ID: c.ID.String(), Name: c.Name, Type: string(c.Type)})
	}
	for _, o := range s.Operations {
		out.Operations = append(out.Operations, operationDTO{
			ID:          o.ID.String(),
			Type:        string(o.Type),
			AccountID:   o.AccountID.String(),
			Amount:      decimalText(o.Amount.String()),
			Description: o.Description,
			CategoryID:  o.CategoryID.String(),
			Date:        o.Date.Format(time.RFC3339Nano),
		})
	}
	return out
}

// fromDTO parses every field up front so a malformed file is rejected before
// anything is created.
func fromDTO(f fileDTO) (Snapshot, error) {
	var s Snapshot
	for i, a := range f.Accounts {
		id, err := optionalID(a.ID)
		if err != nil {
			return Snapshot{}, fieldErr("accounts", i, "id", err)
		}
		bal, err := decimal.Parse(string(a.Balance))
		if err != nil {
			return Snapshot{}, fieldErr("accounts", i, "balance", fmt.Errorf("%v: %w", err, errs.ErrInvalid))
		}
		s.Accounts = append(s.Accounts, ledger.Account{ID: id, Name: a.Name, Balance: bal})
	}
	for i, c := range f.Categories {
		id, err := optionalID(c.ID)
		if err != nil {
			return Snapshot{}, fieldErr("categories", i, "id", err)
		}
		t, err := ledger.ParseType(c.Type)
		if err != nil {
			return Snapshot{}, fieldErr("categories", i, "type", err)
		}
		s.Categories = append(s.Categories, ledger.Category{ID: id, Name: c.Name, Type: t})
	}
	for i, o := range f.Operations {
		op, err := parseOperation(o)
		if err != nil {
			return Snapshot{}, fmt.Errorf("operations[%d]: %w", i, err)
		}
		s.Operations = append(s.Operations, op)
	}
	return s, nil
}

func parseOperation(o operationDTO) (ledger.Operation, error) {
	var (
		op  ledger.Operation
		err error
	)
	if op.ID, err = optionalID(o.ID); err != nil {
		return op, fmt.Errorf("id: %w", err)
	}
	if op.Type, err = ledger.ParseType(o.Type); err != nil {
		return op, fmt.Errorf("type: %w", err)
	}
	if op.AccountID, err = uuid.Parse(o.AccountID); err != nil {
		return op, fmt.Errorf("bankAccountId: %v: %w", err, errs.ErrInvalid)
	}
	if op.Amount, err = decimal.Parse(string(o.Amount)); err != nil {
		return op, fmt.Errorf("amount: %v: %w", err, errs.ErrInvalid)
	}
	if op.CategoryID, err = uuid.Parse(o.CategoryID); err != nil {
		return op, fmt.Errorf("categoryId: %v: %w", err, errs.ErrInvalid)
	}
	if o.Date != "" {
		if op.Date, err = time.Parse(time.RFC3339Nano, o.Date); err != nil {
			return op, fmt.Errorf("date: %v: %w", err, errs.ErrInvalid)
		}
	}
	op.Description = o.Description
	return op, nil
}

// optionalID accepts an empty id; hand-written files may omit them.
func optionalID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%v: %w", err, errs.ErrInvalid)
	}
	return id, nil
}

func fieldErr(section string, i int, field string, err error) error {
	return fmt.Errorf("%s[%d].%s: %w", section, i, field, err)
}
