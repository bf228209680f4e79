package db

import (
	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/counsel"
	"loan-origination/internal/domain/terms"

	"gorm.io/gorm"
)

// Models lists every persisted entity, in dependency order.
func Models() []any {
	return []any{
		&application.Application{},
		&counsel.Counsel{},
		&terms.Terms{},
		&terms.AcceptTerms{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
