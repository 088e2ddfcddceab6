package bootstrap

import (
	"context"

	"church-app-go/internal/domain/caregroup"
	"church-app-go/internal/domain/ministry"
	"church-app-go/internal/domain/setting"
	"church-app-go/internal/domain/user"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, u *user.User) error
	CreateCareGroup(ctx context.Context, group *caregroup.CareGroup) error
	CreateMinistry(ctx context.Context, m *ministry.Ministry) error
	CreateSetting(ctx context.Context, s *setting.Setting) error
}
