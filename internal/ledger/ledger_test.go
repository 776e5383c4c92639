package ledger

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/errs"
)

func fixedFactory(at time.Time) *Factory {
	return &Factory{Now: func() time.Time { return at }, NewID: uuid.New}
}

func TestFactory_NewAccount(t *testing.T) {
	f := NewFactory()
	a, err := f.NewAccount("Cash", decimal.MustParse("1000.00"))
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	if a.ID == uuid.Nil || a.Name != "Cash" || a.Balance.Cmp(decimal.MustParse("1000")) != 0 {
		t.Fatalf("unexpected account: %+v", a)
	}
	b, err := f.NewAccount("Zero", decimal.Decimal{})
	if err != nil {
		t.Fatalf("zero balance should be accepted: %v", err)
	}
	if b.ID == a.ID {
		t.Fatalf("ids must be unique")
	}
	if _, err := f.NewAccount("Debt", decimal.MustParse("-0.01")); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestFactory_NewCategory(t *testing.T) {
	f := NewFactory()
	c, err := f.NewCategory("Salary", TypeIncome)
	if err != nil || c.Type != TypeIncome || c.Name != "Salary" || c.ID == uuid.Nil {
		t.Fatalf("unexpected category %+v err=%v", c, err)
	}
	if _, err := f.NewCategory("Bad", Type("TRANSFER")); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown type, got %v", err)
	}
}

func TestFactory_NewOperation(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f := fixedFactory(at)
	acc, cat := uuid.New(), uuid.New()
	op, err := f.NewOperation(TypeExpense, acc, decimal.MustParse("12.50"), "Lunch", cat)
	if err != nil {
		t.Fatalf("new operation: %v", err)
	}
	if !op.Date.Equal(at) || op.AccountID != acc || op.CategoryID != cat || op.Description != "Lunch" {
		t.Fatalf("unexpected operation %+v", op)
	}
	for _, amt := range []string{"0", "-5"} {
		if _, err := f.NewOperation(TypeIncome, acc, decimal.MustParse(amt), "", cat); !errors.Is(err, errs.ErrInvalid) {
			t.Fatalf("amount %s: expected ErrInvalid, got %v", amt, err)
		}
	}
}

func TestAccount_Apply(t *testing.T) {
	a := Account{ID: uuid.New(), Name: "A", Balance: decimal.MustParse("100.00")}

	up, err := a.Apply(Effect{Type: TypeIncome, Amount: decimal.MustParse("25.50")})
	if err != nil || up.Balance.Cmp(decimal.MustParse("125.50")) != 0 {
		t.Fatalf("income: balance=%s err=%v", up.Balance, err)
	}
	down, err := a.Apply(Effect{Type: TypeExpense, Amount: decimal.MustParse("100.00")})
	if err != nil || !down.Balance.IsZero() {
		t.Fatalf("expense to zero: balance=%s err=%v", down.Balance, err)
	}
	same, err := a.Apply(Effect{Type: TypeExpense, Amount: decimal.MustParse("100.01")})
	if !errors.Is(err, errs.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if same.Balance.Cmp(a.Balance) != 0 || a.Balance.Cmp(decimal.MustParse("100.00")) != 0 {
		t.Fatalf("failed apply must not change balance")
	}
}

func TestAccount_ApplyOverflowIsInvalid(t *testing.T) {
	a := Account{ID: uuid.New(), Name: "Full", Balance: decimal.MustParse("9999999999999999999")}
	got, err := a.Apply(Effect{Type: TypeIncome, Amount: decimal.MustParse("1")})
	if !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid on overflow, got %v", err)
	}
	if got.Balance.Cmp(a.Balance) != 0 {
		t.Fatalf("failed apply must not change balance")
	}
}

func TestFactory_NewOperationDropsMonotonicReading(t *testing.T) {
	f := NewFactory()
	op, err := f.NewOperation(TypeIncome, uuid.New(), decimal.MustParse("1"), "", uuid.New())
	if err != nil {
		t.Fatalf("new operation: %v", err)
	}
	if strings.Contains(op.Date.String(), "m=") {
		t.Fatalf("date keeps a monotonic reading: %s", op.Date)
	}
	if op.Date != op.Date.Round(0) {
		t.Fatalf("date should compare by wall clock only")
	}
}

func TestEffectReverseAndSigned(t *testing.T) {
	op := Operation{Type: TypeIncome, Amount: decimal.MustParse("5")}
	if op.Effect().Reverse().Type != TypeExpense {
		t.Fatalf("reverse of income must be expense")
	}
	if op.Signed().Cmp(decimal.MustParse("5")) != 0 {
		t.Fatalf("income signed amount must be positive")
	}
	op.Type = TypeExpense
	if op.Signed().Cmp(decimal.MustParse("-5")) != 0 {
		t.Fatalf("expense signed amount must be negative")
	}
}

func TestParseType(t *testing.T) {
	if tt, err := ParseType("income"); err != nil || tt != TypeIncome {
		t.Fatalf("parse income: %v %v", tt, err)
	}
	if _, err := ParseType("x"); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid")
	}
}
