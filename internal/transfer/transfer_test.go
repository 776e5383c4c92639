package transfer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/errs"
	"github.com/tinoosan/finledger/internal/ledger"
	"github.com/tinoosan/finledger/internal/service/account"
	"github.com/tinoosan/finledger/internal/service/category"
	"github.com/tinoosan/finledger/internal/service/operation"
	"github.com/tinoosan/finledger/internal/storage/memory"
	"github.com/tinoosan/finledger/internal/transfer"
)

type book struct {
	accounts   account.Service
	categories category.Service
	ops        operation.Service
	exporter   *transfer.Exporter
	importer   *transfer.Importer
}

func newBook(t *testing.T, f *ledger.Factory) book {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	b := book{
		accounts:   account.New(store, store, f, log),
		categories: category.New(store, store, f),
		ops:        operation.New(store, store, f, log),
	}
	b.exporter = transfer.NewExporter(b.accounts, b.categories, b.ops, "json")
	b.importer = transfer.NewImporter(b.accounts, b.categories, b.ops, "json")
	return b
}

func fill(t *testing.T, b book) (ledger.Account, ledger.Category) {
	t.Helper()
	ctx := context.Background()
	acc, err := b.accounts.Create(ctx, "A", decimal.MustParse("1000.00"))
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if _, err := b.accounts.Create(ctx, "Savings", decimal.MustParse("0")); err != nil {
		t.Fatalf("account: %v", err)
	}
	salary, err := b.categories.Create(ctx, "Salary", ledger.TypeIncome)
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	food, err := b.categories.Create(ctx, "Food", ledger.TypeExpense)
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	if _, err := b.ops.Create(ctx, ledger.TypeIncome, acc.ID, decimal.MustParse("500.00"), "salary", salary.ID); err != nil {
		t.Fatalf("operation: %v", err)
	}
	if _, err := b.ops.Create(ctx, ledger.TypeExpense, acc.ID, decimal.MustParse("42.10"), "lunch", food.ID); err != nil {
		t.Fatalf("operation: %v", err)
	}
	return acc, salary
}

// tuples lists accounts as (name, balance) and categories as (name, type).
func tuples(t *testing.T, b book) []string {
	t.Helper()
	ctx := context.Background()
	var out []string
	accs, _ := b.accounts.List(ctx)
	for _, a := range accs {
		out = append(out, "acc|"+a.Name+"|"+a.Balance.String())
	}
	cats, _ := b.categories.List(ctx)
	for _, c := range cats {
		out = append(out, "cat|"+c.Name+"|"+string(c.Type))
	}
	sort.Strings(out)
	return out
}

func opTuples(ops []ledger.Operation) []string {
	out := make([]string, 0, len(ops))
	for _, o := range ops {
		out = append(out, "op|"+string(o.Type)+"|"+o.Amount.String()+"|"+o.Description+"|"+o.CategoryID.String())
	}
	sort.Strings(out)
	return out
}

func TestRoundTrip_JSONAndYAML(t *testing.T) {
	for _, name := range []string{"ledger.json", "ledger.yaml"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			src := newBook(t, ledger.NewFactory())
			fill(t, src)

			path := filepath.Join(t.TempDir(), "nested", name)
			written, err := src.exporter.Export(ctx, path)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if written != path {
				t.Fatalf("expected %s, got %s", path, written)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			codec, err := transfer.CodecForPath(path, "json")
			if err != nil {
				t.Fatalf("codec: %v", err)
			}
			decoded, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			srcOps, _ := src.ops.List(ctx)
			if want, got := opTuples(srcOps), opTuples(decoded.Operations); strings.Join(want, "\n") != strings.Join(got, "\n") {
				t.Fatalf("operations changed in file\nwant:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
			}

			dst := newBook(t, ledger.NewFactory())
			if _, err := dst.importer.Import(ctx, path); !errors.Is(err, errs.ErrNotFound) {
				t.Fatalf("operations reference accounts the new ledger never issued, got %v", err)
			}
			want, got := tuples(t, src), tuples(t, dst)
			if strings.Join(want, "\n") != strings.Join(got, "\n") {
				t.Fatalf("round trip mismatch\nwant:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
			}
		})
	}
}

// Ids are not remapped on import. In a ledger whose fresh ids differ from the
// exported ones, operations point at accounts that do not exist.
func TestImport_StaleReferencesAreNotRemapped(t *testing.T) {
	ctx := context.Background()
	src := newBook(t, ledger.NewFactory())
	acc, _ := fill(t, src)
	s, err := src.exporter.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	dst := newBook(t, ledger.NewFactory())
	res, err := dst.importer.Apply(ctx, s)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found for stale account reference, got %v", err)
	}
	if !strings.Contains(err.Error(), "operations[0]") {
		t.Fatalf("error should name the failing entry: %v", err)
	}
	if res != (transfer.Result{Accounts: 2, Categories: 2}) {
		t.Fatalf("accounts and categories should stay committed: %+v", res)
	}
	accs, _ := dst.accounts.List(ctx)
	balances := make(map[string]string, len(accs))
	for _, a := range accs {
		if a.ID == acc.ID {
			t.Fatalf("imported account reused exported id %s", a.ID)
		}
		balances[a.Name] = a.Balance.String()
	}
	for _, a := range s.Accounts {
		if balances[a.Name] != a.Balance.String() {
			t.Fatalf("account %s: imported balance %s, exported %s", a.Name, balances[a.Name], a.Balance)
		}
	}
	if balances["A"] != "1457.90" {
		t.Fatalf("expected A at 1457.90, got %s", balances["A"])
	}
}

// Re-importing into the same ledger posts the operations to the accounts they
// were exported from; the imported copies keep the exported balance.
func TestImport_IntoSameLedgerPostsToOriginalAccounts(t *testing.T) {
	ctx := context.Background()
	b := newBook(t, ledger.NewFactory())
	acc, _ := fill(t, b)
	s, err := b.exporter.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	res, err := b.importer.Apply(ctx, s)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res != (transfer.Result{Accounts: 2, Categories: 2, Operations: 2}) {
		t.Fatalf("unexpected result: %+v", res)
	}
	orig, _ := b.accounts.Get(ctx, acc.ID)
	if orig.Balance.String() != "1915.80" {
		t.Fatalf("original account should receive the replayed operations, got %s", orig.Balance)
	}
	accs, _ := b.accounts.List(ctx)
	for _, a := range accs {
		if a.Name == "A" && a.ID != acc.ID && a.Balance.String() != "1457.90" {
			t.Fatalf("imported copy should keep the exported balance, got %s", a.Balance)
		}
	}
}

func TestImport_HandWrittenFileKeepsBalances(t *testing.T) {
	ctx := context.Background()
	b := newBook(t, ledger.NewFactory())
	wallet, err := b.accounts.Create(ctx, "Wallet", decimal.MustParse("0"))
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	s := transfer.Snapshot{
		Accounts: []ledger.Account{{Name: "Fresh", Balance: decimal.MustParse("0")}},
		Operations: []ledger.Operation{{
			Type: ledger.TypeIncome, AccountID: wallet.ID, Amount: decimal.MustParse("500"),
			Description: "gift", CategoryID: uuid.New(),
		}},
	}
	res, err := b.importer.Apply(ctx, s)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res != (transfer.Result{Accounts: 1, Operations: 1}) {
		t.Fatalf("unexpected result: %+v", res)
	}
	accs, _ := b.accounts.List(ctx)
	for _, a := range accs {
		want := "0"
		if a.ID == wallet.ID {
			want = "500"
		}
		if a.Balance.String() != want {
			t.Fatalf("account %s: want %s, got %s", a.Name, want, a.Balance)
		}
	}
}

func TestExport_ExcludesDeletedOperations(t *testing.T) {
	ctx := context.Background()
	b := newBook(t, ledger.NewFactory())
	fill(t, b)
	ops, _ := b.ops.List(ctx)
	if err := b.ops.Delete(ctx, ops[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	s, _ := b.exporter.Snapshot(ctx)
	if len(s.Operations) != 1 || s.Operations[0].ID != ops[0].ID {
		t.Fatalf("unexpected operations: %+v", s.Operations)
	}
}

func TestImport_RejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	body := `{"accounts":[{"name":"A","balance":"ten"}],"categories":[],"operations":[]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := newBook(t, ledger.NewFactory())
	_, err := b.importer.Import(context.Background(), path)
	if !errors.Is(err, errs.ErrInvalid) || !strings.Contains(err.Error(), "accounts[0].balance") {
		t.Fatalf("expected invalid balance error, got %v", err)
	}
	accs, _ := b.accounts.List(context.Background())
	if len(accs) != 0 {
		t.Fatalf("nothing should be created from a malformed file")
	}
}

func TestJSONCodec_AcceptsNumericAmounts(t *testing.T) {
	accID, catID := uuid.New(), uuid.New()
	body := `{
  "accounts": [{"id": "` + accID.String() + `", "name": "Card", "balance": 1500.50}],
  "categories": [{"id": "` + catID.String() + `", "name": "Salary", "type": "INCOME"}],
  "operations": [{"type": "INCOME", "bankAccountId": "` + accID.String() + `", "amount": 500, "description": "pay", "categoryId": "` + catID.String() + `"}]
}`
	s, err := transfer.JSONCodec{}.Decode([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Accounts[0].Balance.Cmp(decimal.MustParse("1500.50")) != 0 {
		t.Fatalf("balance: %s", s.Accounts[0].Balance)
	}
	if s.Operations[0].Amount.Cmp(decimal.MustParse("500")) != 0 || s.Operations[0].AccountID != accID {
		t.Fatalf("operation: %+v", s.Operations[0])
	}
	if !s.Operations[0].Date.IsZero() {
		t.Fatalf("missing date should stay zero")
	}
}

func TestYAMLCodec_WireKeys(t *testing.T) {
	s := transfer.Snapshot{Operations: []ledger.Operation{{
		ID: uuid.New(), Type: ledger.TypeExpense, AccountID: uuid.New(), Amount: decimal.MustParse("3.50"),
		Description: "coffee", CategoryID: uuid.New(), Date: time.Date(2024, 4, 2, 8, 30, 0, 0, time.UTC),
	}}}
	data, err := transfer.YAMLCodec{}.Encode(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, key := range []string{"accounts:", "categories:", "operations:", "bankAccountId:", "categoryId:", "2024-04-02T08:30:00Z"} {
		if !strings.Contains(string(data), key) {
			t.Fatalf("missing %q in:\n%s", key, data)
		}
	}
	back, err := transfer.YAMLCodec{}.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, want := back.Operations[0], s.Operations[0]
	if got.ID != want.ID || got.Type != want.Type || got.Amount.String() != "3.50" || !got.Date.Equal(want.Date) || got.Description != want.Description {
		t.Fatalf("mismatch: %+v vs %+v", got, want)
	}
}

func TestCodecForPath(t *testing.T) {
	cases := map[string]string{
		"out.json":   "json",
		"out.YML":    "yaml",
		"out.yaml":   "yaml",
		"out.backup": "yaml",
		"out":        "yaml",
	}
	for path, want := range cases {
		c, err := transfer.CodecForPath(path, "yaml")
		if err != nil || c.Name() != want {
			t.Fatalf("%s: got %v err=%v, want %s", path, c, err, want)
		}
	}
	if _, err := transfer.CodecForPath("out.txt", "xml"); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected invalid format, got %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := transfer.ExpandPath("~/exports/ledger.json")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "exports", "ledger.json") {
		t.Fatalf("unexpected path %s", got)
	}
	if got, _ := transfer.ExpandPath("/tmp/x.json"); got != "/tmp/x.json" {
		t.Fatalf("absolute path changed: %s", got)
	}
}
