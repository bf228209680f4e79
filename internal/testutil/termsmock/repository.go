package termsmock

import (
	"context"

	domain "loan-origination/internal/domain/terms"
)

var (
	_ domain.Repository       = (*Repo)(nil)
	_ domain.AcceptRepository = (*AcceptRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn     func(ctx context.Context, t *domain.Terms) error
	ListActiveFn func(ctx context.Context) ([]domain.Terms, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Terms) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) ListActive(ctx context.Context) ([]domain.Terms, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, context.Canceled
}

// AcceptRepo records every created row in Created unless CreateFn is set.
type AcceptRepo struct {
	CreateFn              func(ctx context.Context, a *domain.AcceptTerms) error
	ListByApplicationIDFn func(ctx context.Context, applicationID uint64) ([]domain.AcceptTerms, error)

	Created []domain.AcceptTerms
}

func (m *AcceptRepo) Create(ctx context.Context, a *domain.AcceptTerms) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	m.Created = append(m.Created, *a)
	return nil
}

func (m *AcceptRepo) ListByApplicationID(ctx context.Context, applicationID uint64) ([]domain.AcceptTerms, error) {
	if m.ListByApplicationIDFn != nil {
		return m.ListByApplicationIDFn(ctx, applicationID)
	}
	return nil, nil
}
