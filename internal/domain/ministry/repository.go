package ministry

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	List(ctx context.Context, filter ListFilter) ([]Ministry, error)
	GetByID(ctx context.Context, id uint) (*Ministry, error)
	Create(ctx context.Context, ministry *Ministry) error
	Save(ctx context.Context, ministry *Ministry) error
	IsNameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
}
