package application

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateApplicationInput struct {
	Name       string
	CellPhone  string
	Email      string
	HopeAmount decimal.Decimal
}

// UpdateApplicationInput is a sparse patch: nil fields keep their stored value.
type UpdateApplicationInput struct {
	Name       *string
	CellPhone  *string
	Email      *string
	HopeAmount *decimal.Decimal
}

type AcceptTermsInput struct {
	TermsIDs []uint64
}

type ApplicationDTO struct {
	ApplicationID uint64          `json:"application_id"`
	Name          string          `json:"name"`
	CellPhone     string          `json:"cell_phone"`
	Email         string          `json:"email,omitempty"`
	HopeAmount    decimal.Decimal `json:"hope_amount"`
	Status        string          `json:"status"`
	AppliedAt     time.Time       `json:"applied_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
