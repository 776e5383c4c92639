package main

import (
	"log/slog"

	"go.uber.org/dig"

	"github.com/tinoosan/finledger/internal/config"
	"github.com/tinoosan/finledger/internal/ledger"
	"github.com/tinoosan/finledger/internal/service/account"
	"github.com/tinoosan/finledger/internal/service/analytics"
	"github.com/tinoosan/finledger/internal/service/category"
	"github.com/tinoosan/finledger/internal/service/operation"
	"github.com/tinoosan/finledger/internal/storage/memory"
	"github.com/tinoosan/finledger/internal/transfer"
)

// services is the ledger wired over one in-memory store.
type services struct {
	accounts   account.Service
	categories category.Service
	operations operation.Service
	analytics  analytics.Service
	exporter   *transfer.Exporter
	importer   *transfer.Importer
}

// serviceSet is filled in by the container in one Invoke.
type serviceSet struct {
	dig.In

	Accounts   account.Service
	Categories category.Service
	Operations operation.Service
	Analytics  analytics.Service
	Exporter   *transfer.Exporter
	Importer   *transfer.Importer
}

// wire builds the object graph. The store is provided once, so every
// service shares the same maps and lock.
func wire(cfg *config.Config, logger *slog.Logger) (services, error) {
	c := dig.New()
	providers := []any{
		func() *config.Config { return cfg },
		func() *slog.Logger { return logger },
		memory.New,
		ledger.NewFactory,
		func(s *memory.Store, f *ledger.Factory, l *slog.Logger) account.Service {
			return account.New(s, s, f, l.With("component", "account"))
		},
		func(s *memory.Store, f *ledger.Factory) category.Service {
			return category.New(s, s, f)
		},
		func(s *memory.Store, f *ledger.Factory, l *slog.Logger) operation.Service {
			return operation.New(s, s, f, l.With("component", "operation"))
		},
		func(ops operation.Service) analytics.Service { return analytics.New(ops) },
		func(a account.Service, cs category.Service, ops operation.Service, cfg *config.Config) *transfer.Exporter {
			return transfer.NewExporter(a, cs, ops, cfg.ExportFormat)
		},
		func(a account.Service, cs category.Service, ops operation.Service, cfg *config.Config) *transfer.Importer {
			return transfer.NewImporter(a, cs, ops, cfg.ExportFormat)
		},
	}
	for _, p := range providers {
		if err := c.Provide(p); err != nil {
			return services{}, err
		}
	}

	var svc services
	err := c.Invoke(func(set serviceSet) {
		svc = services{
			accounts:   set.Accounts,
			categories: set.Categories,
			operations: set.Operations,
			analytics:  set.Analytics,
			exporter:   set.Exporter,
			importer:   set.Importer,
		}
	})
	if err != nil {
		return services{}, err
	}
	logger.Info("storage backend: memory")
	return svc, nil
}
