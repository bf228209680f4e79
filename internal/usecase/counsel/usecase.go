package counsel

import (
	"context"
	"errors"
	"time"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/counsel"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	repo counsel.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewUsecase(repo counsel.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: repo, log: log.Named("counsel"), now: time.Now}
}

func (u *Usecase) Create(ctx context.Context, in CreateCounselInput) (*CounselDTO, error) {
	c := &counsel.Counsel{
		AppliedAt:     u.now().UTC(),
		Name:          in.Name,
		CellPhone:     in.CellPhone,
		Email:         in.Email,
		Memo:          in.Memo,
		Address:       in.Address,
		AddressDetail: in.AddressDetail,
		ZipCode:       in.ZipCode,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		u.log.Error("create counsel", zap.Error(err))
		return nil, apperr.System(err)
	}
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*CounselDTO, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateCounselInput) (*CounselDTO, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}

	assign(&c.Name, in.Name)
	assign(&c.CellPhone, in.CellPhone)
	assign(&c.Email, in.Email)
	assign(&c.Memo, in.Memo)
	assign(&c.Address, in.Address)
	assign(&c.AddressDetail, in.AddressDetail)
	assign(&c.ZipCode, in.ZipCode)

	if err := u.repo.Save(ctx, c); err != nil {
		u.log.Error("update counsel", zap.Uint64("counsel_id", id), zap.Error(err))
		return nil, apperr.System(err)
	}
	return toDTO(c), nil
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	c, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	c.MarkDeleted(u.now())
	if err := u.repo.Save(ctx, c); err != nil {
		u.log.Error("delete counsel", zap.Uint64("counsel_id", id), zap.Error(err))
		return apperr.System(err)
	}
	return nil
}

func (u *Usecase) load(ctx context.Context, id uint64) (*counsel.Counsel, error) {
	c, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, counsel.ErrNotFound
	}
	if err != nil {
		u.log.Error("load counsel", zap.Uint64("counsel_id", id), zap.Error(err))
		return nil, apperr.System(err)
	}
	return c, nil
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toDTO(c *counsel.Counsel) *CounselDTO {
	return &CounselDTO{
		CounselID:     c.ID,
		Name:          c.Name,
		CellPhone:     c.CellPhone,
		Email:         c.Email,
		Memo:          c.Memo,
		Address:       c.Address,
		AddressDetail: c.AddressDetail,
		ZipCode:       c.ZipCode,
		AppliedAt:     c.AppliedAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
