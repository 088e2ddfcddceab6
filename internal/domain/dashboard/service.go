package dashboard

import (
	"context"

	"church-app-go/internal/domain/member"
	"church-app-go/internal/domain/policy"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats gathers the dashboard figures. Totals are organisation wide; the
// recent members list follows the same care group scope as member listings.
func (s *Service) Stats(ctx context.Context, actor policy.Identity) (Stats, error) {
	if err := policy.Authorize(actor, policy.ViewDashboard, policy.Target{}); err != nil {
		return Stats{}, err
	}

	var (
		stats Stats
		err   error
	)

	if stats.TotalMembers, err = s.repo.CountActiveMembers(ctx); err != nil {
		return Stats{}, err
	}
	if stats.TotalCareGroups, err = s.repo.CountActiveCareGroups(ctx); err != nil {
		return Stats{}, err
	}
	if stats.Ministries, err = s.repo.MinistryCounts(ctx); err != nil {
		return Stats{}, err
	}

	filter := RecentFilter{Limit: recentMembersLimit}
	filter.CareGroupID, filter.Scoped = policy.MemberScope(actor)
	if filter.Scoped && filter.CareGroupID == nil {
		stats.RecentMembers = []member.Member{}
	} else if stats.RecentMembers, err = s.repo.RecentMembers(ctx, filter); err != nil {
		return Stats{}, err
	}

	if stats.CareGroups, err = s.repo.CareGroups(ctx); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
