package account_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/errs"
	"github.com/tinoosan/finledger/internal/ledger"
	"github.com/tinoosan/finledger/internal/service/account"
	"github.com/tinoosan/finledger/internal/storage/memory"
)

func setup(t *testing.T) account.Service {
	t.Helper()
	store := memory.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return account.New(store, store, ledger.NewFactory(), log)
}

func TestCreate_UniqueIDsAndExactBalance(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	seen := map[uuid.UUID]bool{}
	for _, b := range []string{"0", "0.01", "1000.00", "999999.99"} {
		a, err := svc.Create(ctx, "acc "+b, decimal.MustParse(b))
		if err != nil {
			t.Fatalf("create %s: %v", b, err)
		}
		if a.Balance.String() != b {
			t.Fatalf("expected balance %s, got %s", b, a.Balance)
		}
		if seen[a.ID] {
			t.Fatalf("duplicate id %s", a.ID)
		}
		seen[a.ID] = true
	}
	all, _ := svc.List(ctx)
	if len(all) != 4 {
		t.Fatalf("expected 4 accounts, got %d", len(all))
	}
}

func TestCreate_NegativeStoresNothing(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, "bad", decimal.MustParse("-0.01")); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
	all, _ := svc.List(ctx)
	if len(all) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(all))
	}
}

func TestApplyOperation(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	a, _ := svc.Create(ctx, "Wallet", decimal.MustParse("20"))

	income := ledger.Operation{Type: ledger.TypeIncome, Amount: decimal.MustParse("5")}
	got, err := svc.ApplyOperation(ctx, a.ID, income)
	if err != nil || got.Balance.Cmp(decimal.MustParse("25")) != 0 {
		t.Fatalf("income: balance %s err=%v", got.Balance, err)
	}

	expense := ledger.Operation{Type: ledger.TypeExpense, Amount: decimal.MustParse("25.01")}
	if _, err := svc.ApplyOperation(ctx, a.ID, expense); !errors.Is(err, errs.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	stored, _ := svc.Get(ctx, a.ID)
	if stored.Balance.Cmp(decimal.MustParse("25")) != 0 {
		t.Fatalf("balance mutated on failure: %s", stored.Balance)
	}

	if _, err := svc.ApplyOperation(ctx, uuid.New(), income); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	a, _ := svc.Create(ctx, "Wallet", decimal.MustParse("1"))
	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, err := svc.Get(ctx, a.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
