package ministry

import (
	"context"
	"errors"
	"sort"
	"testing"

	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/status"
	"church-app-go/pkg/validate"
)

type fakeMinistryRepo struct {
	ministries map[uint]*Ministry
	nextID     uint
}

func newFakeMinistryRepo() *fakeMinistryRepo {
	return &fakeMinistryRepo{ministries: make(map[uint]*Ministry), nextID: 1}
}

func (r *fakeMinistryRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeMinistryRepo) List(ctx context.Context, filter ListFilter) ([]Ministry, error) {
	var items []Ministry
	for _, ministry := range r.ministries {
		if filter.Status != "" && string(ministry.Status) != filter.Status {
			continue
		}
		items = append(items, *ministry)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *fakeMinistryRepo) GetByID(ctx context.Context, id uint) (*Ministry, error) {
	ministry, ok := r.ministries[id]
	if !ok {
		return nil, ErrMinistryNotFound
	}
	copied := *ministry
	return &copied, nil
}

func (r *fakeMinistryRepo) Create(ctx context.Context, ministry *Ministry) error {
	ministry.ID = r.nextID
	r.nextID++
	copied := *ministry
	r.ministries[ministry.ID] = &copied
	return nil
}

func (r *fakeMinistryRepo) Save(ctx context.Context, ministry *Ministry) error {
	copied := *ministry
	r.ministries[ministry.ID] = &copied
	return nil
}

func (r *fakeMinistryRepo) IsNameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	for _, ministry := range r.ministries {
		if ministry.Name == name && ministry.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

var admin = policy.Identity{UserID: 1, Role: policy.RoleAdmin}

func TestCreateAndUpdate(t *testing.T) {
	repo := newFakeMinistryRepo()
	svc := NewService(repo)

	choir, err := svc.Create(context.Background(), admin, Input{Name: " Choir ", Description: "Sunday singers"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if choir.Name != "Choir" || choir.Status != status.Active {
		t.Fatalf("unexpected ministry %+v", choir)
	}
	if _, err := svc.Create(context.Background(), admin, Input{Name: "Choir"}); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, Input{Name: ""}); !errors.Is(err, validate.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}

	updated, err := svc.Update(context.Background(), admin, choir.ID, Input{Name: "Worship", Description: "Music", Status: "inactive"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Worship" || updated.Status != status.Inactive {
		t.Fatalf("unexpected ministry %+v", updated)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	repo := newFakeMinistryRepo()
	svc := NewService(repo)
	youth, _ := svc.Create(context.Background(), admin, Input{Name: "Youth"})
	if _, err := svc.Create(context.Background(), admin, Input{Name: "Adult"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Delete(context.Background(), admin, youth.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.ministries[youth.ID].Status != status.Inactive {
		t.Fatalf("ministry must be kept as inactive")
	}

	options, err := svc.Options(context.Background())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(options) != 1 || options[0].Name != "Adult" {
		t.Fatalf("inactive ministries must not be offered: %+v", options)
	}

	all, err := svc.List(context.Background(), admin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin list must include inactive ministries, got %d", len(all))
	}
}

func TestNonAdminDenied(t *testing.T) {
	svc := NewService(newFakeMinistryRepo())
	viewer := policy.Identity{UserID: 2, Role: policy.RoleViewer}

	if _, err := svc.List(context.Background(), viewer); !errors.Is(err, policy.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.Create(context.Background(), viewer, Input{Name: "X"}); !errors.Is(err, policy.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}
