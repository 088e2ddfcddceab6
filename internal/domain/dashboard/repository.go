package dashboard

import (
	"context"

	"church-app-go/internal/domain/caregroup"
	"church-app-go/internal/domain/member"
)

type Repository interface {
	CountActiveMembers(ctx context.Context) (int64, error)
	CountActiveCareGroups(ctx context.Context) (int64, error)
	// MinistryCounts lists every active ministry with its active member count.
	MinistryCounts(ctx context.Context) ([]MinistryCount, error)
	RecentMembers(ctx context.Context, filter RecentFilter) ([]member.Member, error)
	// CareGroups lists active care groups with their active member counts.
	CareGroups(ctx context.Context) ([]caregroup.CareGroup, error)
}
