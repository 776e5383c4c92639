// Package memory provides the in-memory ledger store. A single RWMutex guards
// accounts and operations together, so a posted operation and its balance
// effect are always observed as one change.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tinoosan/finledger/internal/errs"
	"github.com/tinoosan/finledger/internal/ledger"
)

// opKey orders the operation index asc by (Date, ID).
type opKey struct {
	Date time.Time
	ID   uuid.UUID
}

func (k opKey) less(o opKey) bool {
	if !k.Date.Equal(o.Date) {
		return k.Date.Before(o.Date)
	}
	return k.ID.String() < o.ID.String()
}

// Store is an in-memory implementation of the account, category and
// operation repositories and writers.
type Store struct {
	mu         sync.RWMutex
	accounts   map[uuid.UUID]ledger.Account
	categories map[uuid.UUID]ledger.Category
	operations map[uuid.UUID]ledger.Operation
	// Sorted index of operations for ordered scans and period queries
	opKeys []opKey
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts:   make(map[uuid.UUID]ledger.Account),
		categories: make(map[uuid.UUID]ledger.Category),
		operations: make(map[uuid.UUID]ledger.Operation),
	}
}

// --- Accounts ---

// CreateAccount stores a new account. Reusing an id is a conflict.
func (s *Store) CreateAccount(_ context.Context, a ledger.Account) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; ok {
		return ledger.Account{}, fmt.Errorf("account %s: %w", a.ID, errs.ErrConflict)
	}
	s.accounts[a.ID] = a
	return a, nil
}

// GetAccount returns an account by ID.
func (s *Store) GetAccount(_ context.Context, id uuid.UUID) (ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return ledger.Account{}, fmt.Errorf("account %s: %w", id, errs.ErrNotFound)
	}
	return a, nil
}

// ListAccounts returns all accounts ordered by name.
func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// DeleteAccount removes the account if present. Operations that reference it are kept.
func (s *Store) DeleteAccount(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, id)
	return nil
}

// ApplyEffect commits e to the account balance, or nothing at all.
func (s *Store) ApplyEffect(_ context.Context, accountID uuid.UUID, e ledger.Effect) (ledger.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyEffectLocked(accountID, e)
}

// applyEffectLocked is the single place balances change.
// Caller must hold s.mu (write lock).
func (s *Store) applyEffectLocked(accountID uuid.UUID, e ledger.Effect) (ledger.Account, error) {
	acc, ok := s.accounts[accountID]
	if !ok {
		return ledger.Account{}, fmt.Errorf("account %s: %w", accountID, errs.ErrNotFound)
	}
	next, err := acc.Apply(e)
	if err != nil {
		return ledger.Account{}, err
	}
	s.accounts[accountID] = next
	return next, nil
}

// --- Categories ---

// CreateCategory stores a new category.
func (s *Store) CreateCategory(_ context.Context, c ledger.Category) (ledger.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; ok {
		return ledger.Category{}, fmt.Errorf("category %s: %w", c.ID, errs.ErrConflict)
	}
	s.categories[c.ID] = c
	return c, nil
}

// GetCategory returns a category by ID.
func (s *Store) GetCategory(_ context.Context, id uuid.UUID) (ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return ledger.Category{}, fmt.Errorf("category %s: %w", id, errs.ErrNotFound)
	}
	return c, nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(_ context.Context) ([]ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ledger.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// DeleteCategory removes the category if present. Operations keep the stale id.
func (s *Store) DeleteCategory(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, id)
	return nil
}

// --- Operations ---

// PostOperation applies the operation's effect to its account and indexes it
// under one write lock. If the balance update fails nothing is indexed.
func (s *Store) PostOperation(_ context.Context, op ledger.Operation) (ledger.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.operations[op.ID]; ok {
		return ledger.Operation{}, fmt.Errorf("operation %s: %w", op.ID, errs.ErrConflict)
	}
	if _, err := s.applyEffectLocked(op.AccountID, op.Effect()); err != nil {
		return ledger.Operation{}, err
	}
	s.operations[op.ID] = op
	s.insertOpIndexLocked(opKey{Date: op.Date, ID: op.ID})
	return op, nil
}

// CancelOperation applies the reversal's effect and then drops the original
// operation from the index. The reversal itself is never indexed. found is
// false when no operation with id exists; if the reversal fails the original
// stays indexed.
func (s *Store) CancelOperation(_ context.Context, id uuid.UUID, reversal ledger.Operation) (ledger.Operation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.operations[id]
	if !ok {
		return ledger.Operation{}, false, nil
	}
	if _, err := s.applyEffectLocked(reversal.AccountID, reversal.Effect()); err != nil {
		return op, true, err
	}
	delete(s.operations, id)
	s.removeOpIndexLocked(opKey{Date: op.Date, ID: op.ID})
	return op, true, nil
}

// GetOperation returns a single operation.
func (s *Store) GetOperation(_ context.Context, id uuid.UUID) (ledger.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.operations[id]
	if !ok {
		return ledger.Operation{}, fmt.Errorf("operation %s: %w", id, errs.ErrNotFound)
	}
	return op, nil
}

// ListOperations returns every indexed operation ordered by (date, id).
func (s *Store) ListOperations(_ context.Context) ([]ledger.Operation, error) {
	return s.collect(s.allKeysLocked, func(ledger.Operation) bool { return true }), nil
}

// OperationsByAccount returns operations posted to accountID.
func (s *Store) OperationsByAccount(_ context.Context, accountID uuid.UUID) ([]ledger.Operation, error) {
	return s.collect(s.allKeysLocked, func(op ledger.Operation) bool { return op.AccountID == accountID }), nil
}

// OperationsByCategory returns operations labelled with categoryID.
func (s *Store) OperationsByCategory(_ context.Context, categoryID uuid.UUID) ([]ledger.Operation, error) {
	return s.collect(s.allKeysLocked, func(op ledger.Operation) bool { return op.CategoryID == categoryID }), nil
}

// OperationsBetween returns operations with start < date < end. Both bounds
// are exclusive.
func (s *Store) OperationsBetween(_ context.Context, start, end time.Time) ([]ledger.Operation, error) {
	keys := func() []opKey { return s.rangeByTimeLocked(start, end) }
	return s.collect(keys, func(ledger.Operation) bool { return true }), nil
}

// collect resolves keys and filters them under a single read lock.
func (s *Store) collect(keysLocked func() []opKey, keep func(ledger.Operation) bool) []ledger.Operation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := keysLocked()
	out := make([]ledger.Operation, 0, len(keys))
	for _, k := range keys {
		if op, ok := s.operations[k.ID]; ok && keep(op) {
			out = append(out, op)
		}
	}
	return out
}

func (s *Store) allKeysLocked() []opKey { return s.opKeys }

// insertOpIndexLocked inserts k keeping the index sorted.
// Caller must hold s.mu (write lock).
func (s *Store) insertOpIndexLocked(k opKey) {
	keys := s.opKeys
	i := sort.Search(len(keys), func(i int) bool { return k.less(keys[i]) })
	if i == len(keys) {
		s.opKeys = append(keys, k)
		return
	}
	keys = append(keys, opKey{})
	copy(keys[i+1:], keys[i:])
	keys[i] = k
	s.opKeys = keys
}

// removeOpIndexLocked deletes k from the index if present.
// Caller must hold s.mu (write lock).
func (s *Store) removeOpIndexLocked(k opKey) {
	keys := s.opKeys
	i := sort.Search(len(keys), func(i int) bool { return !keys[i].less(k) })
	if i < len(keys) && keys[i].ID == k.ID {
		s.opKeys = append(keys[:i], keys[i+1:]...)
	}
}

// rangeByTimeLocked returns the keys with start < Date < end.
// Caller must hold s.mu.
func (s *Store) rangeByTimeLocked(start, end time.Time) []opKey {
	keys := s.opKeys
	// first key strictly after start
	lo := sort.Search(len(keys), func(i int) bool { return keys[i].Date.After(start) })
	// first key at or after end
	hi := sort.Search(len(keys), func(i int) bool { return !keys[i].Date.Before(end) })
	if lo >= hi {
		return nil
	}
	return keys[lo:hi]
}
