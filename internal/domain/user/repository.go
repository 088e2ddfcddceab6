package user

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	ListLeaderCandidates(ctx context.Context) ([]User, error)
	Create(ctx context.Context, user *User) error
	Save(ctx context.Context, user *User) error
	UpdateTheme(ctx context.Context, id uint, theme Theme) error
	IsUsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error)
	IsCareGroupActive(ctx context.Context, careGroupID uint) (bool, error)
}
