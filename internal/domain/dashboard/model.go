package dashboard

import (
	"church-app-go/internal/domain/caregroup"
	"church-app-go/internal/domain/member"
)

const recentMembersLimit = 5

type MinistryCount struct {
	MinistryID uint   `gorm:"column:ministry_id"`
	Name       string `gorm:"column:name"`
	Count      int64  `gorm:"column:count"`
}

type Stats struct {
	TotalMembers    int64
	TotalCareGroups int64
	Ministries      []MinistryCount
	RecentMembers   []member.Member
	CareGroups      []caregroup.CareGroup
}

// RecentFilter restricts recent members to one care group when Scoped is set.
// A scoped filter with a nil CareGroupID matches nothing.
type RecentFilter struct {
	Scoped      bool
	CareGroupID *uint
	Limit       int
}
