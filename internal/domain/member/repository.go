package member

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	List(ctx context.Context, filter ListFilter) ([]Member, int64, error)
	GetByID(ctx context.Context, id uint) (*Member, error)
	Create(ctx context.Context, member *Member) error
	Save(ctx context.Context, member *Member) error
	IsMinistryActive(ctx context.Context, id uint) (bool, error)
	IsCareGroupActive(ctx context.Context, id uint) (bool, error)
}
