package counsel

import "context"

type Repository interface {
	Create(ctx context.Context, c *Counsel) error
	GetByID(ctx context.Context, id uint64) (*Counsel, error)
	List(ctx context.Context) ([]Counsel, error)
	Save(ctx context.Context, c *Counsel) error
}
