// Package operation owns the operation index. Creating an operation posts its
// balance effect to the account; deleting one posts a compensating reversal
// first and only then drops the original from the index.
package operation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/errs"
	"github.com/tinoosan/finledger/internal/ledger"
)

// ReversalPrefix marks the description of a compensating operation.
const ReversalPrefix = "Cancellation: "

// Repo defines read operations needed by the service.
type Repo interface {
	GetOperation(ctx context.Context, id uuid.UUID) (ledger.Operation, error)
	ListOperations(ctx context.Context) ([]ledger.Operation, error)
	OperationsByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Operation, error)
	OperationsByCategory(ctx context.Context, categoryID uuid.UUID) ([]ledger.Operation, error)
	OperationsBetween(ctx context.Context, start, end time.Time) ([]ledger.Operation, error)
}

// Writer posts and cancels operations. Both calls must update the account
// balance and the index as one step.
type Writer interface {
	PostOperation(ctx context.Context, op ledger.Operation) (ledger.Operation, error)
	CancelOperation(ctx context.Context, id uuid.UUID, reversal ledger.Operation) (ledger.Operation, bool, error)
}

type Service interface {
	Create(ctx context.Context, t ledger.Type, accountID uuid.UUID, amount decimal.Decimal, description string, categoryID uuid.UUID) (ledger.Operation, error)
	Get(ctx context.Context, id uuid.UUID) (ledger.Operation, error)
	List(ctx context.Context) ([]ledger.Operation, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Operation, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]ledger.Operation, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]ledger.Operation, error)
	Delete(ctx context.Context, id uuid.UUID) error
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

// Create builds the operation, applies it to the account and indexes it.
// If the balance update fails nothing is indexed. The category is not checked.
func (s *service) Create(ctx context.Context, t ledger.Type, accountID uuid.UUID, amount decimal.Decimal, description string, categoryID uuid.UUID) (ledger.Operation, error) {
	op, err := s.factory.NewOperation(t, accountID, amount, description, categoryID)
	if err != nil {
		return ledger.Operation{}, err
	}
	posted, err := s.writer.PostOperation(ctx, op)
	operationsPosted.WithLabelValues(string(t), result(err)).Inc()
	if err != nil {
		s.log.Warn("operation rejected", "account_id", accountID, "type", t, "amount", amount.String(), "err", err)
		return ledger.Operation{}, err
	}
	s.log.Debug("operation posted", "operation_id", posted.ID, "account_id", accountID, "type", t, "amount", amount.String())
	return posted, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ledger.Operation, error) {
	return s.repo.GetOperation(ctx, id)
}

func (s *service) List(ctx context.Context) ([]ledger.Operation, error) {
	return s.repo.ListOperations(ctx)
}

func (s *service) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]ledger.Operation, error) {
	return s.repo.OperationsByAccount(ctx, accountID)
}

func (s *service) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]ledger.Operation, error) {
	return s.repo.OperationsByCategory(ctx, categoryID)
}

// ListByPeriod returns operations with start < date < end. An operation
// dated exactly at either bound is excluded.
func (s *service) ListByPeriod(ctx context.Context, start, end time.Time) ([]ledger.Operation, error) {
	return s.repo.OperationsBetween(ctx, start, end)
}

// Delete cancels the operation by posting a reversal of the opposite type.
// Unknown ids are a no-op. When the reversal fails (for example an income
// already spent) the operation stays indexed and the error is returned.
// The reversal is a balance adjustment only and never appears in listings.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	op, err := s.repo.GetOperation(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return err
	}
	reversal, err := s.factory.NewOperation(op.Type.Opposite(), op.AccountID, op.Amount, ReversalPrefix+op.Description, op.CategoryID)
	if err != nil {
		return fmt.Errorf("build reversal of %s: %w", id, err)
	}
	_, found, err := s.writer.CancelOperation(ctx, id, reversal)
	if !found {
		// removed concurrently
		return nil
	}
	operationsCancelled.WithLabelValues(result(err)).Inc()
	if err != nil {
		s.log.Warn("operation reversal rejected", "operation_id", id, "account_id", op.AccountID, "err", err)
		return err
	}
	s.log.Debug("operation cancelled", "operation_id", id, "account_id", op.AccountID, "reversal_id", reversal.ID)
	return nil
}
