package mysql

import (
	"context"

	counselDomain "loan-origination/internal/domain/counsel"

	"gorm.io/gorm"
)

type CounselRepository struct{ db *gorm.DB }

func NewCounselRepository(db *gorm.DB) *CounselRepository { return &CounselRepository{db: db} }

func (r *CounselRepository) Create(ctx context.Context, c *counselDomain.Counsel) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CounselRepository) Save(ctx context.Context, c *counselDomain.Counsel) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CounselRepository) GetByID(ctx context.Context, id uint64) (*counselDomain.Counsel, error) {
	var out counselDomain.Counsel
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *CounselRepository) List(ctx context.Context) ([]counselDomain.Counsel, error) {
	var out []counselDomain.Counsel
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}
