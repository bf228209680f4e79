package application

import (
	"time"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/audit"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = apperr.NotFound("APPLICATION_NOT_FOUND", "application not found")
	ErrTermsNotAccepted = apperr.BusinessRule("TERMS_NOT_ACCEPTED", "all active terms must be accepted")
	ErrNoActiveTerms    = apperr.BusinessRule("NO_ACTIVE_TERMS", "there are no active terms to accept")
)

type Status string

const (
	StatusApplied       Status = "applied"
	StatusTermsAccepted Status = "terms_accepted"
)

// Table: applications
type Application struct {
	ID         uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string          `gorm:"column:name;size:12;not null"`
	CellPhone  string          `gorm:"column:cell_phone;size:23;not null"`
	Email      string          `gorm:"column:email;size:50"`
	HopeAmount decimal.Decimal `gorm:"column:hope_amount;type:decimal(15,2);not null"`
	Status     Status          `gorm:"column:status;size:20;not null;default:'applied'"`
	AppliedAt  time.Time       `gorm:"column:applied_at;not null"`
	audit.Audit
}

func (Application) TableName() string { return "applications" }
