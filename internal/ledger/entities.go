package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/errs"
)

// Type classifies both categories and operations.
type Type string

const (
	// TypeIncome adds the operation amount to the account balance.
	TypeIncome Type = "INCOME"
	// TypeExpense subtracts the operation amount from the account balance.
	TypeExpense Type = "EXPENSE"
)

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool { return t == TypeIncome || t == TypeExpense }

// Opposite returns the type that undoes t.
func (t Type) Opposite() Type {
	if t == TypeIncome {
		return TypeExpense
	}
	return TypeIncome
}

// ParseType accepts the wire names case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TypeIncome):
		return TypeIncome, nil
	case string(TypeExpense):
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("unknown type %q: %w", s, errs.ErrInvalid)
	}
}

// Account holds the current funds of a single wallet or bank account.
// Balance never drops below zero once a mutation is committed.
type Account struct {
	ID      uuid.UUID
	Name    string
	Balance decimal.Decimal
}

// Category labels operations as a kind of income or expense.
type Category struct {
	ID   uuid.UUID
	Name string
	Type Type
}

// Operation is an immutable record of money moving in or out of an account.
// Its Type is not required to match the type of its category.
type Operation struct {
	ID          uuid.UUID
	Type        Type
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string
	CategoryID  uuid.UUID
	Date        time.Time
}

// Effect returns the balance change this operation applies to its account.
func (o Operation) Effect() Effect { return Effect{Type: o.Type, Amount: o.Amount} }

// Signed returns +Amount for income and -Amount for expense.
func (o Operation) Signed() decimal.Decimal {
	if o.Type == TypeExpense {
		return o.Amount.Neg()
	}
	return o.Amount
}

// Effect is a tagged balance delta. It is applied to an account independently
// of whether the operation that produced it is still indexed.
type Effect struct {
	Type   Type
	Amount decimal.Decimal
}

// Reverse returns the effect that cancels e.
func (e Effect) Reverse() Effect { return Effect{Type: e.Type.Opposite(), Amount: e.Amount} }

// Apply computes the account after e. The receiver is never modified; on
// error the caller must not commit anything.
func (a Account) Apply(e Effect) (Account, error) {
	var (
		next decimal.Decimal
		err  error
	)
	switch e.Type {
	case TypeIncome:
		next, err = a.Balance.Add(e.Amount)
	case TypeExpense:
		next, err = a.Balance.Sub(e.Amount)
	default:
		return a, fmt.Errorf("effect type %q: %w", e.Type, errs.ErrInvalid)
	}
	if err != nil {
		return a, fmt.Errorf("apply %s %s: %v: %w", e.Type, e.Amount, err, errs.ErrInvalid)
	}
	if next.IsNeg() {
		return a, fmt.Errorf("account %s: balance %s, %s %s: %w", a.ID, a.Balance, e.Type, e.Amount, errs.ErrInsufficientFunds)
	}
	a.Balance = next
	return a, nil
}
