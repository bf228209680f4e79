package uow

import (
	"context"

	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/terms"
)

// Repos are bound to the same transaction.
type Repos struct {
	Applications application.Repository
	Terms        terms.Repository
	AcceptTerms  terms.AcceptRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID uint64, fn func(r Repos, a *application.Application) error) error
}
