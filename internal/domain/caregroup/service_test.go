package caregroup

import (
	"context"
	"errors"
	"sort"
	"testing"

	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/status"
	"church-app-go/pkg/validate"
)

type fakeCareGroupRepo struct {
	groups  map[uint]*CareGroup
	leaders map[uint]bool
	counts  map[uint]int64
	nextID  uint
}

func newFakeCareGroupRepo() *fakeCareGroupRepo {
	return &fakeCareGroupRepo{
		groups:  make(map[uint]*CareGroup),
		leaders: map[uint]bool{7: true},
		counts:  make(map[uint]int64),
		nextID:  1,
	}
}

func (r *fakeCareGroupRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeCareGroupRepo) List(ctx context.Context, filter ListFilter) ([]CareGroup, error) {
	var items []CareGroup
	for _, group := range r.groups {
		if filter.Status != "" && string(group.Status) != filter.Status {
			continue
		}
		copied := *group
		copied.MemberCount = r.counts[group.ID]
		items = append(items, copied)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *fakeCareGroupRepo) GetByID(ctx context.Context, id uint) (*CareGroup, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, ErrCareGroupNotFound
	}
	copied := *group
	copied.MemberCount = r.counts[id]
	return &copied, nil
}

func (r *fakeCareGroupRepo) Create(ctx context.Context, group *CareGroup) error {
	group.ID = r.nextID
	r.nextID++
	copied := *group
	r.groups[group.ID] = &copied
	return nil
}

func (r *fakeCareGroupRepo) Save(ctx context.Context, group *CareGroup) error {
	copied := *group
	r.groups[group.ID] = &copied
	return nil
}

func (r *fakeCareGroupRepo) IsNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	for _, group := range r.groups {
		if group.Name == name && group.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCareGroupRepo) IsLeaderEligible(ctx context.Context, userID uint) (bool, error) {
	return r.leaders[userID], nil
}

func ptr(v uint) *uint {
	return &v
}

var (
	admin  = policy.Identity{UserID: 1, Role: policy.RoleAdmin}
	viewer = policy.Identity{UserID: 2, Role: policy.RoleViewer}
	leader = policy.Identity{UserID: 7, Role: policy.RoleLeader, CareGroupID: ptr(2)}
)

func TestCreateDefaultsColorAndStatus(t *testing.T) {
	repo := newFakeCareGroupRepo()
	svc := NewService(repo)

	group, err := svc.Create(context.Background(), admin, Input{Name: " Purple "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if group.Name != "Purple" || group.Color != DefaultColor || group.Status != status.Active {
		t.Fatalf("unexpected group %+v", group)
	}
}

func TestCreateRejectsDuplicatesAndBadInput(t *testing.T) {
	repo := newFakeCareGroupRepo()
	svc := NewService(repo)

	if _, err := svc.Create(context.Background(), admin, Input{Name: "Blue", Color: "#1E90FF"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, Input{Name: "Blue"}); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, Input{Name: "Teal", Color: "teal"}); !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected validation error for color, got %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, Input{Name: "Teal", LeaderID: ptr(99)}); !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected validation error for leader, got %v", err)
	}
	if len(repo.groups) != 1 {
		t.Fatalf("expected one group, got %d", len(repo.groups))
	}
}

func TestManageRequiresAdmin(t *testing.T) {
	repo := newFakeCareGroupRepo()
	svc := NewService(repo)

	for _, actor := range []policy.Identity{viewer, leader} {
		if _, err := svc.Create(context.Background(), actor, Input{Name: "Nope"}); !errors.Is(err, policy.ErrPermissionDenied) {
			t.Fatalf("role %s: expected ErrPermissionDenied, got %v", actor.Role, err)
		}
	}
	if len(repo.groups) != 0 {
		t.Fatalf("denied create must not store anything")
	}
}

func TestUpdate(t *testing.T) {
	repo := newFakeCareGroupRepo()
	svc := NewService(repo)
	blue, _ := svc.Create(context.Background(), admin, Input{Name: "Blue", Color: "#1E90FF"})
	if _, err := svc.Create(context.Background(), admin, Input{Name: "Red", Color: "#DC143C"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(context.Background(), admin, blue.ID, Input{Name: "Red"}); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}

	updated, err := svc.Update(context.Background(), admin, blue.ID, Input{Name: "Blue", Color: "#0000FF", LeaderID: ptr(7), Status: "inactive"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Color != "#0000FF" || *updated.LeaderID != 7 || updated.Status != status.Inactive {
		t.Fatalf("unexpected group %+v", updated)
	}

	if _, err := svc.Update(context.Background(), admin, 404, Input{Name: "X"}); !errors.Is(err, ErrCareGroupNotFound) {
		t.Fatalf("expected ErrCareGroupNotFound, got %v", err)
	}
}

func TestListShowsActiveWithCounts(t *testing.T) {
	repo := newFakeCareGroupRepo()
	svc := NewService(repo)
	blue, _ := svc.Create(context.Background(), admin, Input{Name: "Blue"})
	old, _ := svc.Create(context.Background(), admin, Input{Name: "Old"})
	if _, err := svc.Update(context.Background(), admin, old.ID, Input{Name: "Old", Status: "inactive"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	repo.counts[blue.ID] = 3

	groups, err := svc.List(context.Background(), viewer)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Blue" || groups[0].MemberCount != 3 {
		t.Fatalf("unexpected groups %+v", groups)
	}
}

func TestGetRespectsLeaderScope(t *testing.T) {
	repo := newFakeCareGroupRepo()
	svc := NewService(repo)
	yellow, _ := svc.Create(context.Background(), admin, Input{Name: "Yellow"})
	blue, _ := svc.Create(context.Background(), admin, Input{Name: "Blue"})

	if _, err := svc.Get(context.Background(), leader, blue.ID); err != nil {
		t.Fatalf("leader own group: %v", err)
	}
	if _, err := svc.Get(context.Background(), leader, yellow.ID); !errors.Is(err, policy.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.Get(context.Background(), viewer, yellow.ID); err != nil {
		t.Fatalf("viewer: %v", err)
	}
}
