package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	// GetByID excludes soft-deleted rows; missing rows yield gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id uint64) (*Application, error)
	// GetByIDForUpdate is GetByID with a row lock, for use inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	Save(ctx context.Context, a *Application) error
}
