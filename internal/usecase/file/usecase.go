package file

import (
	"context"
	"errors"
	"io"
	"strconv"

	"loan-origination/internal/domain/application"
	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/infrastructure/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidFilename = apperr.BusinessRule("INVALID_FILENAME", "file name is empty or invalid")
	ErrFileNotFound    = apperr.NotFound("FILE_NOT_FOUND", "file not found")
)

// Store is the subset of storage.Storage the use case needs.
type Store interface {
	Save(bucket, name string, r io.Reader) (storage.FileInfo, error)
	Open(bucket, name string) (io.ReadCloser, error)
	List(bucket string) ([]storage.FileInfo, error)
	DeleteAll(bucket string) error
}

type FileDTO struct {
	ApplicationID uint64 `json:"application_id,omitempty"`
	Name          string `json:"name"`
	Size          int64  `json:"size"`
}

type Usecase struct {
	apps  application.Repository
	store Store
	log   *zap.Logger
}

func NewUsecase(apps application.Repository, store Store, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{apps: apps, store: store, log: log.Named("file")}
}

// Upload stores r under the application's bucket. applicationID 0 selects the
// shared bucket and skips the existence check.
func (u *Usecase) Upload(ctx context.Context, applicationID uint64, name string, r io.Reader) (*FileDTO, error) {
	bucket, err := u.bucket(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	info, err := u.store.Save(bucket, name, r)
	if err != nil {
		return nil, u.classify(err, applicationID)
	}
	u.log.Info("file stored",
		zap.Uint64("application_id", applicationID),
		zap.String("name", info.Name),
		zap.Int64("size", info.Size))
	return &FileDTO{ApplicationID: applicationID, Name: info.Name, Size: info.Size}, nil
}

func (u *Usecase) List(ctx context.Context, applicationID uint64) ([]FileDTO, error) {
	bucket, err := u.bucket(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	files, err := u.store.List(bucket)
	if err != nil {
		return nil, u.classify(err, applicationID)
	}
	out := make([]FileDTO, 0, len(files))
	for _, f := range files {
		out = append(out, FileDTO{ApplicationID: applicationID, Name: f.Name, Size: f.Size})
	}
	return out, nil
}

// Download opens a stored file; the caller closes the reader.
func (u *Usecase) Download(ctx context.Context, applicationID uint64, name string) (io.ReadCloser, error) {
	bucket, err := u.bucket(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	rc, err := u.store.Open(bucket, name)
	if err != nil {
		return nil, u.classify(err, applicationID)
	}
	return rc, nil
}

func (u *Usecase) DeleteAll(ctx context.Context, applicationID uint64) error {
	bucket, err := u.bucket(ctx, applicationID)
	if err != nil {
		return err
	}
	if err := u.store.DeleteAll(bucket); err != nil {
		return u.classify(err, applicationID)
	}
	u.log.Info("files deleted", zap.Uint64("application_id", applicationID))
	return nil
}

func (u *Usecase) bucket(ctx context.Context, applicationID uint64) (string, error) {
	if applicationID == 0 {
		return storage.SharedBucket, nil
	}
	_, err := u.apps.GetByID(ctx, applicationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", application.ErrNotFound
	}
	if err != nil {
		u.log.Error("resolve application", zap.Uint64("application_id", applicationID), zap.Error(err))
		return "", apperr.System(err)
	}
	return strconv.FormatUint(applicationID, 10), nil
}

func (u *Usecase) classify(err error, applicationID uint64) error {
	switch {
	case errors.Is(err, storage.ErrInvalidName):
		return ErrInvalidFilename
	case errors.Is(err, storage.ErrNotExist):
		return ErrFileNotFound
	}
	u.log.Error("file store failure", zap.Uint64("application_id", applicationID), zap.Error(err))
	return apperr.System(err)
}
