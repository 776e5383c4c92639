// Package category manages the labels operations are filed under.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tinoosan/finledger/internal/errs"
	"github.com/tinoosan/finledger/internal/ledger"
)

type Repo interface {
	GetCategory(ctx context.Context, id uuid.UUID) (ledger.Category, error)
	ListCategories(ctx context.Context) ([]ledger.Category, error)
}

type Writer interface {
	CreateCategory(ctx context.Context, c ledger.Category) (ledger.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type Service interface {
	Create(ctx context.Context, name string, t ledger.Type) (ledger.Category, error)
	Get(ctx context.Context, id uuid.UUID) (ledger.Category, error)
	List(ctx context.Context) ([]ledger.Category, error)
	ListByType(ctx context.Context, t ledger.Type) ([]ledger.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    Repo
	writer  Writer
	factory *ledger.Factory
}

func New(repo Repo, writer Writer, factory *ledger.Factory) Service {
	return &service{repo: repo, writer: writer, factory: factory}
}

func (s *service) Create(ctx context.Context, name string, t ledger.Type) (ledger.Category, error) {
	c, err := s.factory.NewCategory(name, t)
	if err != nil {
		return ledger.Category{}, err
	}
	return s.writer.CreateCategory(ctx, c)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ledger.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *service) List(ctx context.Context) ([]ledger.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) ListByType(ctx context.Context, t ledger.Type) ([]ledger.Category, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("category type %q: %w", t, errs.ErrInvalid)
	}
	all, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.Category, 0, len(all))
	for _, c := range all {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.writer.DeleteCategory(ctx, id)
}
