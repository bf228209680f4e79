package terms

import (
	"loan-origination/internal/domain/audit"
)

// Table: terms. Every non-deleted row belongs to the set an applicant must accept.
type Terms struct {
	ID             uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string `gorm:"column:name;size:255;not null"`
	TermsDetailURL string `gorm:"column:terms_detail_url;size:255;not null"`
	audit.Audit
}

func (Terms) TableName() string { return "terms" }

// Table: accept_terms. One row per (application, terms) pair.
type AcceptTerms struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ApplicationID uint64 `gorm:"column:application_id;not null;uniqueIndex:ux_accept_terms_application_terms"`
	TermsID       uint64 `gorm:"column:terms_id;not null;uniqueIndex:ux_accept_terms_application_terms"`
	audit.Audit
}

func (AcceptTerms) TableName() string { return "accept_terms" }
