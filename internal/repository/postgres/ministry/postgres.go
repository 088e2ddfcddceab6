package ministry

import (
	"context"
	"errors"

	ministrydomain "church-app-go/internal/domain/ministry"
	"gorm.io/gorm"
)

const ministryColumns = "ministries.*, " +
	"(SELECT COUNT(*) FROM members WHERE members.ministry_id = ministries.id AND members.status = 'active') AS member_count"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(ministrydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) withCounts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("ministries").Select(ministryColumns)
}

func (r *PostgresRepository) List(ctx context.Context, filter ministrydomain.ListFilter) ([]ministrydomain.Ministry, error) {
	query := r.withCounts(ctx)
	if filter.Status != "" {
		query = query.Where("ministries.status = ?", filter.Status)
	}

	var ministries []ministrydomain.Ministry
	if err := query.Order("ministries.name asc").Scan(&ministries).Error; err != nil {
		return nil, err
	}
	return ministries, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*ministrydomain.Ministry, error) {
	var ministries []ministrydomain.Ministry
	if err := r.withCounts(ctx).Where("ministries.id = ?", id).Limit(1).Scan(&ministries).Error; err != nil {
		return nil, err
	}
	if len(ministries) == 0 {
		return nil, ministrydomain.ErrMinistryNotFound
	}
	return &ministries[0], nil
}

func (r *PostgresRepository) Create(ctx context.Context, ministry *ministrydomain.Ministry) error {
	return duplicateName(r.db.WithContext(ctx).Create(ministry).Error)
}

func (r *PostgresRepository) Save(ctx context.Context, ministry *ministrydomain.Ministry) error {
	return duplicateName(r.db.WithContext(ctx).Save(ministry).Error)
}

func (r *PostgresRepository) IsNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ministrydomain.Ministry{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// duplicateName maps a unique index violation that slipped past the
// service's name check to the domain error.
func duplicateName(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ministrydomain.ErrNameTaken
	}
	return err
}
