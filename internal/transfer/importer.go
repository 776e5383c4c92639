package transfer

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/ledger"
)

// Creators are the write sides of the three stores. Every imported entity
// goes through them, so each one receives a fresh id.
type (
	AccountCreator interface {
		Create(ctx context.Context, name string, initialBalance decimal.Decimal) (ledger.Account, error)
	}
	CategoryCreator interface {
		Create(ctx context.Context, name string, t ledger.Type) (ledger.Category, error)
	}
	OperationCreator interface {
		Create(ctx context.Context, t ledger.Type, accountID uuid.UUID, amount decimal.Decimal, description string, categoryID uuid.UUID) (ledger.Operation, error)
	}
)

// Result counts the entities created by an import.
type Result struct {
	Accounts   int `json:"accounts"`
	Categories int `json:"categories"`
	Operations int `json:"operations"`
}

type Importer struct {
	accounts      AccountCreator
	categories    CategoryCreator
	operations    OperationCreator
	defaultFormat string
}

func NewImporter(accounts AccountCreator, categories CategoryCreator, operations OperationCreator, defaultFormat string) *Importer {
	return &Importer{accounts: accounts, categories: categories, operations: operations, defaultFormat: defaultFormat}
}

// Import reads path and applies it.
func (im *Importer) Import(ctx context.Context, path string) (Result, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return Result{}, err
	}
	codec, err := CodecForPath(path, im.defaultFormat)
	if err != nil {
		return Result{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	s, err := codec.Decode(data)
	if err != nil {
		return Result{}, err
	}
	return im.Apply(ctx, s)
}

// Apply creates accounts, then categories, then operations. Ids in the
// snapshot are not carried over and references are not remapped: an
// operation is posted to the bankAccountId and categoryId exactly as
// written, so it only succeeds if that account already exists under that id.
// Accounts are created with their balance as written.
//
// Operations are posted in file order, which for an export is date order.
// Apply stops at the first failure. Entities created before it stay.
func (im *Importer) Apply(ctx context.Context, s Snapshot) (Result, error) {
	var res Result
	for i, a := range s.Accounts {
		if _, err := im.accounts.Create(ctx, a.Name, a.Balance); err != nil {
			return res, fmt.Errorf("accounts[%d] %q: %w", i, a.Name, err)
		}
		res.Accounts++
	}
	for i, c := range s.Categories {
		if _, err := im.categories.Create(ctx, c.Name, c.Type); err != nil {
			return res, fmt.Errorf("categories[%d] %q: %w", i, c.Name, err)
		}
		res.Categories++
	}
	for i, op := range s.Operations {
		if _, err := im.operations.Create(ctx, op.Type, op.AccountID, op.Amount, op.Description, op.CategoryID); err != nil {
			return res, fmt.Errorf("operations[%d] %s: %w", i, op.ID, err)
		}
		res.Operations++
	}
	return res, nil
}
