// Package analytics answers read-only aggregate queries over the operations
// dated inside a period. Periods exclude both bounds: an operation dated
// exactly at start or end is not counted.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/tinoosan/finledger/internal/errs"
	"github.com/tinoosan/finledger/internal/ledger"
)

// PeriodLister is satisfied by the operation service.
type PeriodLister interface {
	ListByPeriod(ctx context.Context, start, end time.Time) ([]ledger.Operation, error)
}

type Service interface {
	NetChange(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, start, end time.Time) (map[uuid.UUID]decimal.Decimal, error)
	SumByType(ctx context.Context, start, end time.Time) (map[ledger.Type]decimal.Decimal, error)
	Report(ctx context.Context, start, end time.Time) (Report, error)
}

// Report bundles the three aggregates computed over a single read.
type Report struct {
	Start      time.Time
	End        time.Time
	NetChange  decimal.Decimal
	ByCategory map[uuid.UUID]decimal.Decimal
	ByType     map[ledger.Type]decimal.Decimal
	Count      int
}

type service struct {
	ops PeriodLister
}

func New(ops PeriodLister) Service { return &service{ops: ops} }

// NetChange sums +amount for income and -amount for expense.
func (s *service) NetChange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	ops, err := s.ops.ListByPeriod(ctx, start, end)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return netChange(ops)
}

// SumByCategory groups the signed contribution by category. Categories with
// nothing in the period are absent.
func (s *service) SumByCategory(ctx context.Context, start, end time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	ops, err := s.ops.ListByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return byCategory(ops)
}

// SumByType groups unsigned amounts by operation type.
func (s *service) SumByType(ctx context.Context, start, end time.Time) (map[ledger.Type]decimal.Decimal, error) {
	ops, err := s.ops.ListByPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return byType(ops)
}

func (s *service) Report(ctx context.Context, start, end time.Time) (Report, error) {
	ops, err := s.ops.ListByPeriod(ctx, start, end)
	if err != nil {
		return Report{}, err
	}
	r := Report{Start: start, End: end, Count: len(ops)}
	if r.NetChange, err = netChange(ops); err != nil {
		return Report{}, err
	}
	if r.ByCategory, err = byCategory(ops); err != nil {
		return Report{}, err
	}
	if r.ByType, err = byType(ops); err != nil {
		return Report{}, err
	}
	return r, nil
}

func netChange(ops []ledger.Operation) (decimal.Decimal, error) {
	var total decimal.Decimal
	for _, op := range ops {
		next, err := total.Add(op.Signed())
		if err != nil {
			return decimal.Decimal{}, overflow(op, err)
		}
		total = next
	}
	return total, nil
}

func byCategory(ops []ledger.Operation) (map[uuid.UUID]decimal.Decimal, error) {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, op := range ops {
		next, err := out[op.CategoryID].Add(op.Signed())
		if err != nil {
			return nil, overflow(op, err)
		}
		out[op.CategoryID] = next
	}
	return out, nil
}

func byType(ops []ledger.Operation) (map[ledger.Type]decimal.Decimal, error) {
	out := make(map[ledger.Type]decimal.Decimal)
	for _, op := range ops {
		next, err := out[op.Type].Add(op.Amount)
		if err != nil {
			return nil, overflow(op, err)
		}
		out[op.Type] = next
	}
	return out, nil
}

func overflow(op ledger.Operation, err error) error {
	return fmt.Errorf("sum at operation %s: %v: %w", op.ID, err, errs.ErrInvalid)
}
