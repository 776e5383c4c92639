// Package account implements the account store rules: validated creation via
// the factory, lookups, deletion and atomic application of an operation's
// balance effect.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/ledger"
)

type Repo interface {
	GetAccount(ctx context.Context, id uuid.UUID) (ledger.Account, error)
	ListAccounts(ctx context.Context) ([]ledger.Account, error)
}

type Writer interface {
	CreateAccount(ctx context.Context, a ledger.Account) (ledger.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	ApplyEffect(ctx context.Context, accountID uuid.UUID, e ledger.Effect) (ledger.Account, error)
}

type Service interface {
	Create(ctx context.Context, name string, initialBalance decimal.Decimal) (ledger.Account, error)
	Get(ctx context.Context, id uuid.UUID) (ledger.Account, error)
	List(ctx context.Context) ([]ledger.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ApplyOperation(ctx context.Context, accountID uuid.UUID, op ledger.Operation) (ledger.Account, error)
}

type service struct {
	repo    Repo
	writer  Writer
	factory *ledger.Factory
	log     *slog.Logger
}

func New(repo Repo, writer Writer, factory *ledger.Factory, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{repo: repo, writer: writer, factory: factory, log: log}
}

func (s *service) Create(ctx context.Context, name string, initialBalance decimal.Decimal) (ledger.Account, error) {
	a, err := s.factory.NewAccount(name, initialBalance)
	if err != nil {
		return ledger.Account{}, err
	}
	created, err := s.writer.CreateAccount(ctx, a)
	if err != nil {
		return ledger.Account{}, err
	}
	s.log.Debug("account created", "account_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ledger.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *service) List(ctx context.Context) ([]ledger.Account, error) {
	return s.repo.ListAccounts(ctx)
}

// Delete is a no-op for unknown ids.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteAccount(ctx, id)
}

// ApplyOperation adjusts the balance of accountID by op's effect. A result
// below zero fails with errs.ErrInsufficientFunds and leaves the balance as is.
func (s *service) ApplyOperation(ctx context.Context, accountID uuid.UUID, op ledger.Operation) (ledger.Account, error) {
	return s.writer.ApplyEffect(ctx, accountID, op.Effect())
}
