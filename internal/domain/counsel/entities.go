package counsel

import (
	"time"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/audit"
)

var ErrNotFound = apperr.NotFound("COUNSEL_NOT_FOUND", "counsel not found")

// Table: counsels
type Counsel struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	AppliedAt     time.Time `gorm:"column:applied_at;not null"`
	Name          string    `gorm:"column:name;size:12;not null"`
	CellPhone     string    `gorm:"column:cell_phone;size:23;not null"`
	Email         string    `gorm:"column:email;size:50"`
	Memo          string    `gorm:"column:memo;type:text"`
	Address       string    `gorm:"column:address;size:50"`
	AddressDetail string    `gorm:"column:address_detail;size:50"`
	ZipCode       string    `gorm:"column:zip_code;size:5"`
	audit.Audit
}

func (Counsel) TableName() string { return "counsels" }
