package application

import (
	"context"
	"errors"
	"time"

	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/terms"
	"loan-origination/internal/domain/uow"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errNoUnitOfWork = apperr.System(errors.New("unit of work not configured"))

type Usecase struct {
	repo application.Repository
	uow  uow.UnitOfWork
	log  *zap.Logger
	now  func() time.Time
}

// NewUsecase: the UoW backs every write except Create; a nil logger discards output.
func NewUsecase(repo application.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: repo, uow: tx, log: log.Named("application"), now: time.Now}
}

func (u *Usecase) Create(ctx context.Context, in CreateApplicationInput) (*ApplicationDTO, error) {
	a := &application.Application{
		Name:       in.Name,
		CellPhone:  in.CellPhone,
		Email:      in.Email,
		HopeAmount: in.HopeAmount,
		Status:     application.StatusApplied,
		AppliedAt:  u.now().UTC(),
	}
	if err := u.repo.Create(ctx, a); err != nil {
		u.log.Error("create application", zap.Error(err))
		return nil, apperr.System(err)
	}
	u.log.Info("application created", zap.Uint64("application_id", a.ID))
	return toDTO(a), nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ApplicationDTO, error) {
	a, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateApplicationInput) (*ApplicationDTO, error) {
	a, err := u.modify(ctx, id, func(a *application.Application) {
		if in.Name != nil {
			a.Name = *in.Name
		}
		if in.CellPhone != nil {
			a.CellPhone = *in.CellPhone
		}
		if in.Email != nil {
			a.Email = *in.Email
		}
		if in.HopeAmount != nil {
			a.HopeAmount = *in.HopeAmount
		}
	})
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	if _, err := u.modify(ctx, id, func(a *application.Application) { a.MarkDeleted(u.now()) }); err != nil {
		return err
	}
	u.log.Info("application deleted", zap.Uint64("application_id", id))
	return nil
}

// modify reads the application, applies fn and saves it in one transaction.
func (u *Usecase) modify(ctx context.Context, id uint64, fn func(a *application.Application)) (*application.Application, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	var out *application.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fn(a)
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, u.classify(err, id)
	}
	return out, nil
}

// AcceptTerms records acceptance of every active terms document. The submitted
// ids must equal the active set; the whole write happens in one transaction.
func (u *Usecase) AcceptTerms(ctx context.Context, id uint64, in AcceptTermsInput) (bool, error) {
	if u.uow == nil {
		return false, errNoUnitOfWork
	}

	err := u.uow.WithinApplicationTx(ctx, id, func(r uow.Repos, a *application.Application) error {
		active, err := r.Terms.ListActive(ctx)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			return application.ErrNoActiveTerms
		}
		if !terms.CoversExactly(in.TermsIDs, active) {
			u.log.Info("terms acceptance rejected",
				zap.Uint64("application_id", id),
				zap.Uint64s("submitted", in.TermsIDs),
				zap.Uint64s("active", terms.IDs(active)))
			return application.ErrTermsNotAccepted
		}

		accepted, err := r.AcceptTerms.ListByApplicationID(ctx, a.ID)
		if err != nil {
			return err
		}
		for _, t := range terms.Missing(active, accepted) {
			if err := r.AcceptTerms.Create(ctx, &terms.AcceptTerms{ApplicationID: a.ID, TermsID: t.ID}); err != nil {
				return err
			}
		}

		a.Status = application.StatusTermsAccepted
		return r.Applications.Save(ctx, a)
	})
	if err != nil {
		return false, u.classify(err, id)
	}
	u.log.Info("terms accepted", zap.Uint64("application_id", id))
	return true, nil
}

func (u *Usecase) load(ctx context.Context, id uint64) (*application.Application, error) {
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, u.classify(err, id)
	}
	return a, nil
}

func (u *Usecase) classify(err error, id uint64) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return application.ErrNotFound
	case apperr.KindOf(err) != apperr.KindSystem:
		return err
	}
	u.log.Error("application store failure", zap.Uint64("application_id", id), zap.Error(err))
	return apperr.System(err)
}

func toDTO(a *application.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID: a.ID,
		Name:          a.Name,
		CellPhone:     a.CellPhone,
		Email:         a.Email,
		HopeAmount:    a.HopeAmount,
		Status:        string(a.Status),
		AppliedAt:     a.AppliedAt,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
