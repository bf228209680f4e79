package counsel

import "time"

type CreateCounselInput struct {
	Name          string
	CellPhone     string
	Email         string
	Memo          string
	Address       string
	AddressDetail string
	ZipCode       string
}

// UpdateCounselInput: nil fields are left untouched.
type UpdateCounselInput struct {
	Name          *string
	CellPhone     *string
	Email         *string
	Memo          *string
	Address       *string
	AddressDetail *string
	ZipCode       *string
}

type CounselDTO struct {
	CounselID     uint64    `json:"counsel_id"`
	Name          string    `json:"name"`
	CellPhone     string    `json:"cell_phone"`
	Email         string    `json:"email,omitempty"`
	Memo          string    `json:"memo,omitempty"`
	Address       string    `json:"address,omitempty"`
	AddressDetail string    `json:"address_detail,omitempty"`
	ZipCode       string    `json:"zip_code,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
