package terms

import "context"

type Repository interface {
	Create(ctx context.Context, t *Terms) error
	// ListActive returns non-deleted terms ordered by ascending id.
	ListActive(ctx context.Context) ([]Terms, error)
}

type AcceptRepository interface {
	Create(ctx context.Context, a *AcceptTerms) error
	ListByApplicationID(ctx context.Context, applicationID uint64) ([]AcceptTerms, error)
}
