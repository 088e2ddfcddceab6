package caregroup

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	List(ctx context.Context, filter ListFilter) ([]CareGroup, error)
	GetByID(ctx context.Context, id uint) (*CareGroup, error)
	Create(ctx context.Context, group *CareGroup) error
	Save(ctx context.Context, group *CareGroup) error
	IsNameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
	// IsLeaderEligible reports whether userID is an active non-admin user.
	IsLeaderEligible(ctx context.Context, userID uint) (bool, error)
}
