package mysql

import (
	"context"

	applicationDomain "loan-origination/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *applicationDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *applicationDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*applicationDomain.Application, error) {
	var out applicationDomain.Application
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*applicationDomain.Application, error) {
	var out applicationDomain.Application
	res := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) List(ctx context.Context) ([]applicationDomain.Application, error) {
	var out []applicationDomain.Application
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

// sqlite has no row locks; its writer lock already serialises the tx.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
