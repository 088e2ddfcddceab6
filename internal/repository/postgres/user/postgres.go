package user

import (
	"context"
	"errors"
	"time"

	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/status"
	userdomain "church-app-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(userdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	var user userdomain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter userdomain.ListFilter) ([]userdomain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&userdomain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Order("created_at desc").Order("id desc").Offset(filter.Offset)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var users []userdomain.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *PostgresRepository) ListLeaderCandidates(ctx context.Context) ([]userdomain.User, error) {
	var users []userdomain.User
	if err := r.db.WithContext(ctx).
		Where("role <> ? AND status = ?", policy.RoleAdmin, status.Active).
		Order("username asc").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *userdomain.User) error {
	return duplicateName(r.db.WithContext(ctx).Create(user).Error)
}

func (r *PostgresRepository) Save(ctx context.Context, user *userdomain.User) error {
	return duplicateName(r.db.WithContext(ctx).Save(user).Error)
}

func (r *PostgresRepository) UpdateTheme(ctx context.Context, id uint, theme userdomain.Theme) error {
	result := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"theme":      theme,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) IsUsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&userdomain.User{}).Where("username = ?", username)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) IsCareGroupActive(ctx context.Context, careGroupID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("caregroups").
		Where("id = ? AND status = ?", careGroupID, status.Active).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// duplicateName maps a unique index violation that slipped past the
// service's name check to the domain error.
func duplicateName(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userdomain.ErrUsernameTaken
	}
	return err
}
