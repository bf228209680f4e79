package audit

import (
	"time"

	"gorm.io/gorm"
)

// Audit is embedded by every entity. gorm applies `deleted_at IS NULL` to all
// queries on a model carrying DeletedAt, so soft-deleted rows never surface
// through the standard lookups.
type Audit struct {
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (a Audit) IsDeleted() bool { return a.DeletedAt.Valid }

func (a *Audit) MarkDeleted(at time.Time) {
	a.DeletedAt = gorm.DeletedAt{Time: at.UTC(), Valid: true}
}
