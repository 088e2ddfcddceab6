package member

import (
	"context"
	"strings"

	memberdomain "church-app-go/internal/domain/member"
	"church-app-go/internal/domain/status"
	"gorm.io/gorm"
)

const memberColumns = "members.*, ministries.name AS ministry_name, caregroups.name AS caregroup_name, caregroups.color AS caregroup_color"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(memberdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("members").
		Select(memberColumns).
		Joins("LEFT JOIN ministries ON ministries.id = members.ministry_id").
		Joins("LEFT JOIN caregroups ON caregroups.id = members.caregroup_id")
}

func (r *PostgresRepository) List(ctx context.Context, filter memberdomain.ListFilter) ([]memberdomain.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&memberdomain.Member{})
	query = applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := applyFilter(r.withRefs(ctx), filter).
		Order("members.fullname asc").
		Order("members.id asc").
		Offset(filter.Offset)
	if filter.Limit > 0 {
		rows = rows.Limit(filter.Limit)
	}

	var members []memberdomain.Member
	if err := rows.Scan(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func applyFilter(query *gorm.DB, filter memberdomain.ListFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("members.fullname ILIKE ?", "%"+escapeLike(filter.Search)+"%")
	}
	if filter.MinistryID != nil {
		query = query.Where("members.ministry_id = ?", *filter.MinistryID)
	}
	if filter.CareGroupID != nil {
		query = query.Where("members.caregroup_id = ?", *filter.CareGroupID)
	}
	if filter.Status != "" {
		query = query.Where("members.status = ?", filter.Status)
	}
	return query
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*memberdomain.Member, error) {
	var members []memberdomain.Member
	if err := r.withRefs(ctx).Where("members.id = ?", id).Limit(1).Scan(&members).Error; err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, memberdomain.ErrMemberNotFound
	}
	return &members[0], nil
}

func (r *PostgresRepository) Create(ctx context.Context, member *memberdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) Save(ctx context.Context, member *memberdomain.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *PostgresRepository) IsMinistryActive(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, "ministries", id)
}

func (r *PostgresRepository) IsCareGroupActive(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, "caregroups", id)
}

func (r *PostgresRepository) exists(ctx context.Context, table string, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table(table).
		Where("id = ? AND status = ?", id, status.Active).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
