package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tinoosan/finledger/internal/ledger"
)

// Listers are the read sides of the three stores.
type (
	AccountLister interface {
		List(ctx context.Context) ([]ledger.Account, error)
	}
	CategoryLister interface {
		List(ctx context.Context) ([]ledger.Category, error)
	}
	OperationLister interface {
		List(ctx context.Context) ([]ledger.Operation, error)
	}
)

type Exporter struct {
	accounts      AccountLister
	categories    CategoryLister
	operations    OperationLister
	defaultFormat string
}

// NewExporter returns an Exporter. defaultFormat is used for paths without a
// recognised extension.
func NewExporter(accounts AccountLister, categories CategoryLister, operations OperationLister, defaultFormat string) *Exporter {
	return &Exporter{accounts: accounts, categories: categories, operations: operations, defaultFormat: defaultFormat}
}

// Snapshot reads all three stores. Reversals are never part of it since they
// are not indexed.
func (e *Exporter) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.Accounts, err = e.accounts.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list accounts: %w", err)
	}
	if s.Categories, err = e.categories.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list categories: %w", err)
	}
	if s.Operations, err = e.operations.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("list operations: %w", err)
	}
	return s, nil
}

// Export writes the ledger to path, creating parent directories. It returns
// the expanded path that was written.
func (e *Exporter) Export(ctx context.Context, path string) (string, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	codec, err := CodecForPath(path, e.defaultFormat)
	if err != nil {
		return "", err
	}
	s, err := e.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	data, err := codec.Encode(s)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", codec.Name(), err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
