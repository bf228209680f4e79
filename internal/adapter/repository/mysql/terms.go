package mysql

import (
	"context"

	termsDomain "loan-origination/internal/domain/terms"

	"gorm.io/gorm"
)

type TermsRepository struct{ db *gorm.DB }

func NewTermsRepository(db *gorm.DB) *TermsRepository { return &TermsRepository{db: db} }

func (r *TermsRepository) Create(ctx context.Context, t *termsDomain.Terms) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TermsRepository) ListActive(ctx context.Context) ([]termsDomain.Terms, error) {
	var out []termsDomain.Terms
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

type AcceptTermsRepository struct{ db *gorm.DB }

func NewAcceptTermsRepository(db *gorm.DB) *AcceptTermsRepository {
	return &AcceptTermsRepository{db: db}
}

func (r *AcceptTermsRepository) Create(ctx context.Context, a *termsDomain.AcceptTerms) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AcceptTermsRepository) ListByApplicationID(ctx context.Context, applicationID uint64) ([]termsDomain.AcceptTerms, error) {
	var out []termsDomain.AcceptTerms
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("terms_id ASC").
		Find(&out)
	return out, res.Error
}
