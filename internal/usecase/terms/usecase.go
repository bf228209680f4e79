package terms

import (
	"context"
	"time"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/terms"

	"go.uber.org/zap"
)

type CreateTermsInput struct {
	Name           string
	TermsDetailURL string
}

type TermsDTO struct {
	TermsID        uint64    `json:"terms_id"`
	Name           string    `json:"name"`
	TermsDetailURL string    `json:"terms_detail_url"`
	CreatedAt      time.Time `json:"created_at"`
}

type Usecase struct {
	repo terms.Repository
	log  *zap.Logger
}

func NewUsecase(repo terms.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: repo, log: log.Named("terms")}
}

// Create registers a terms document. It joins the required set immediately.
func (u *Usecase) Create(ctx context.Context, in CreateTermsInput) (*TermsDTO, error) {
	t := &terms.Terms{Name: in.Name, TermsDetailURL: in.TermsDetailURL}
	if err := u.repo.Create(ctx, t); err != nil {
		u.log.Error("create terms", zap.Error(err))
		return nil, apperr.System(err)
	}
	u.log.Info("terms registered", zap.Uint64("terms_id", t.ID), zap.String("name", t.Name))
	return toDTO(t), nil
}

func (u *Usecase) List(ctx context.Context) ([]TermsDTO, error) {
	active, err := u.repo.ListActive(ctx)
	if err != nil {
		u.log.Error("list terms", zap.Error(err))
		return nil, apperr.System(err)
	}
	out := make([]TermsDTO, 0, len(active))
	for i := range active {
		out = append(out, *toDTO(&active[i]))
	}
	return out, nil
}

func toDTO(t *terms.Terms) *TermsDTO {
	return &TermsDTO{TermsID: t.ID, Name: t.Name, TermsDetailURL: t.TermsDetailURL, CreatedAt: t.CreatedAt}
}
