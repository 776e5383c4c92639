package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/errs"
)

// Factory builds validated entities with fresh identifiers.
// Now and NewID may be replaced in tests; nil means time.Now and uuid.New.
type Factory struct {
	Now   func() time.Time
	NewID func() uuid.UUID
}

// NewFactory returns a Factory using the wall clock and random UUIDs.
func NewFactory() *Factory { return &Factory{Now: time.Now, NewID: uuid.New} }

func (f *Factory) id() uuid.UUID {
	if f == nil || f.NewID == nil {
		return uuid.New()
	}
	return f.NewID()
}

func (f *Factory) now() time.Time {
	if f == nil || f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// NewAccount rejects a negative opening balance.
func (f *Factory) NewAccount(name string, initialBalance decimal.Decimal) (Account, error) {
	if initialBalance.IsNeg() {
		return Account{}, fmt.Errorf("initial balance %s must not be negative: %w", initialBalance, errs.ErrInvalid)
	}
	return Account{ID: f.id(), Name: name, Balance: initialBalance}, nil
}

func (f *Factory) NewCategory(name string, t Type) (Category, error) {
	if !t.Valid() {
		return Category{}, fmt.Errorf("category type %q: %w", t, errs.ErrInvalid)
	}
	return Category{ID: f.id(), Name: name, Type: t}, nil
}

// NewOperation stamps the operation with the current time. Dates of
// operations created in quick succession may be equal.
func (f *Factory) NewOperation(t Type, accountID uuid.UUID, amount decimal.Decimal, description string, categoryID uuid.UUID) (Operation, error) {
	if !t.Valid() {
		return Operation{}, fmt.Errorf("operation type %q: %w", t, errs.ErrInvalid)
	}
	if !amount.IsPos() {
		return Operation{}, fmt.Errorf("amount %s must be > 0: %w", amount, errs.ErrInvalid)
	}
	return Operation{
		ID:          f.id(),
		Type:        t,
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
		CategoryID:  categoryID,
		Date:        f.now().Round(0),
	}, nil
}
