package dashboard

import (
	"context"

	"church-app-go/internal/domain/caregroup"
	dashboarddomain "church-app-go/internal/domain/dashboard"
	"church-app-go/internal/domain/member"
	"church-app-go/internal/domain/status"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CountActiveMembers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&member.Member{}).Where("status = ?", status.Active).Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountActiveCareGroups(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&caregroup.CareGroup{}).Where("status = ?", status.Active).Count(&count).Error
	return count, err
}

func (r *PostgresRepository) MinistryCounts(ctx context.Context) ([]dashboarddomain.MinistryCount, error) {
	query := "SELECT m.id AS ministry_id, m.name AS name, COUNT(mb.id) AS count " +
		"FROM ministries m LEFT JOIN members mb ON mb.ministry_id = m.id AND mb.status = ? " +
		"WHERE m.status = ? GROUP BY m.id, m.name ORDER BY m.name"

	var rows []dashboarddomain.MinistryCount
	if err := r.db.WithContext(ctx).Raw(query, status.Active, status.Active).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) RecentMembers(ctx context.Context, filter dashboarddomain.RecentFilter) ([]member.Member, error) {
	query := r.db.WithContext(ctx).
		Table("members").
		Select("members.*, ministries.name AS ministry_name, caregroups.name AS caregroup_name, caregroups.color AS caregroup_color").
		Joins("LEFT JOIN ministries ON ministries.id = members.ministry_id").
		Joins("LEFT JOIN caregroups ON caregroups.id = members.caregroup_id").
		Where("members.status = ?", status.Active)
	if filter.Scoped {
		if filter.CareGroupID == nil {
			return []member.Member{}, nil
		}
		query = query.Where("members.caregroup_id = ?", *filter.CareGroupID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 5
	}

	var members []member.Member
	if err := query.Order("members.created_at desc").Order("members.id desc").Limit(limit).Scan(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) CareGroups(ctx context.Context) ([]caregroup.CareGroup, error) {
	query := "SELECT cg.*, u.username AS leader_name, COUNT(mb.id) AS member_count " +
		"FROM caregroups cg " +
		"LEFT JOIN users u ON u.id = cg.leader_id " +
		"LEFT JOIN members mb ON mb.caregroup_id = cg.id AND mb.status = ? " +
		"WHERE cg.status = ? GROUP BY cg.id, u.username ORDER BY cg.name"

	var groups []caregroup.CareGroup
	if err := r.db.WithContext(ctx).Raw(query, status.Active, status.Active).Scan(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
