package caregroup

import (
	"context"
	"errors"

	caregroupdomain "church-app-go/internal/domain/caregroup"
	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/status"
	"gorm.io/gorm"
)

const careGroupColumns = "caregroups.*, users.username AS leader_name, " +
	"(SELECT COUNT(*) FROM members WHERE members.caregroup_id = caregroups.id AND members.status = 'active') AS member_count"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(caregroupdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) withCounts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("caregroups").
		Select(careGroupColumns).
		Joins("LEFT JOIN users ON users.id = caregroups.leader_id")
}

func (r *PostgresRepository) List(ctx context.Context, filter caregroupdomain.ListFilter) ([]caregroupdomain.CareGroup, error) {
	query := r.withCounts(ctx)
	if filter.Status != "" {
		query = query.Where("caregroups.status = ?", filter.Status)
	}

	var groups []caregroupdomain.CareGroup
	if err := query.Order("caregroups.name asc").Scan(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*caregroupdomain.CareGroup, error) {
	var groups []caregroupdomain.CareGroup
	if err := r.withCounts(ctx).Where("caregroups.id = ?", id).Limit(1).Scan(&groups).Error; err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, caregroupdomain.ErrCareGroupNotFound
	}
	return &groups[0], nil
}

func (r *PostgresRepository) Create(ctx context.Context, group *caregroupdomain.CareGroup) error {
	return duplicateName(r.db.WithContext(ctx).Create(group).Error)
}

func (r *PostgresRepository) Save(ctx context.Context, group *caregroupdomain.CareGroup) error {
	return duplicateName(r.db.WithContext(ctx).Save(group).Error)
}

func (r *PostgresRepository) IsNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&caregroupdomain.CareGroup{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) IsLeaderEligible(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ? AND role <> ? AND status = ?", userID, policy.RoleAdmin, status.Active).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// duplicateName maps a unique index violation that slipped past the
// service's name check to the domain error.
func duplicateName(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return caregroupdomain.ErrNameTaken
	}
	return err
}
