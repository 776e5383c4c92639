package memory

import (
	"github.com/tinoosan/finledger/internal/service/account"
	"github.com/tinoosan/finledger/internal/service/category"
	"github.com/tinoosan/finledger/internal/service/operation"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ account.Repo     = (*Store)(nil)
	_ account.Writer   = (*Store)(nil)
	_ category.Repo    = (*Store)(nil)
	_ category.Writer  = (*Store)(nil)
	_ operation.Repo   = (*Store)(nil)
	_ operation.Writer = (*Store)(nil)
)
