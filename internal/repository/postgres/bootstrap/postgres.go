package bootstrap

import (
	"context"

	bootstrapdomain "church-app-go/internal/domain/bootstrap"
	"church-app-go/internal/domain/caregroup"
	"church-app-go/internal/domain/ministry"
	"church-app-go/internal/domain/setting"
	"church-app-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(bootstrapdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&user.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *PostgresRepository) CreateCareGroup(ctx context.Context, group *caregroup.CareGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *PostgresRepository) CreateMinistry(ctx context.Context, m *ministry.Ministry) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresRepository) CreateSetting(ctx context.Context, s *setting.Setting) error {
	return r.db.WithContext(ctx).Create(s).Error
}
