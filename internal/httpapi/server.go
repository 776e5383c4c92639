// Package httpapi wires the JSON HTTP surface of the ledger.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/finledger/internal/service/account"
	"github.com/tinoosan/finledger/internal/service/analytics"
	"github.com/tinoosan/finledger/internal/service/category"
	"github.com/tinoosan/finledger/internal/service/operation"
	"github.com/tinoosan/finledger/internal/transfer"
)

// Deps are the ledger services behind the routes.
type Deps struct {
	Accounts   account.Service
	Categories category.Service
	Operations operation.Service
	Analytics  analytics.Service
	Exporter   *transfer.Exporter
	Importer   *transfer.Importer
	// Currency is the ISO 4217 code used for display amounts.
	Currency string
	// ExportFormat is used when ?format= is absent.
	ExportFormat string
}

// Server wires handlers and middleware using Chi.
type Server struct {
	deps Deps
	log  *slog.Logger
	rt   *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging and panic recovery.
func New(deps Deps, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.ExportFormat == "" {
		deps.ExportFormat = "json"
	}
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{deps: deps, log: logger, rt: r}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints.
func (s *Server) routes() {
	s.rt.Route("/v1", func(r chi.Router) {
		r.Post("/accounts", s.postAccount)
		r.Get("/accounts", s.listAccounts)
		r.Get("/accounts/{id}", s.getAccount)
		r.Delete("/accounts/{id}", s.deleteAccount)
		r.Get("/accounts/{id}/operations", s.listAccountOperations)

		r.Post("/categories", s.postCategory)
		r.Get("/categories", s.listCategories)
		r.Get("/categories/{id}", s.getCategory)
		r.Delete("/categories/{id}", s.deleteCategory)

		r.Post("/operations", s.postOperation)
		r.Get("/operations", s.listOperations)
		r.Get("/operations/{id}", s.getOperation)
		r.Delete("/operations/{id}", s.deleteOperation)

		r.Get("/analytics", s.getAnalytics)

		r.Get("/export", s.export)
		r.Post("/import", s.importSnapshot)

		r.Get("/dictionary/categories", s.dictionaryCategories)
		r.Get("/dictionary/categories/{code}", s.dictionaryCategory)
	})
	// Health and metrics (unversioned)
	s.rt.Get("/healthz", s.healthz)
	s.rt.Handle("/metrics", metricsHandler())
}
