package setting

import (
	"context"
	"errors"
	"testing"

	"church-app-go/internal/domain/policy"
	"church-app-go/pkg/validate"
)

type fakeSettingRepo struct {
	values  map[string]string
	inserts int
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{values: make(map[string]string)}
}

func (r *fakeSettingRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeSettingRepo) GetMany(ctx context.Context, names ...string) (map[string]string, error) {
	result := make(map[string]string, len(names))
	for _, name := range names {
		if value, ok := r.values[name]; ok {
			result[name] = value
		}
	}
	return result, nil
}

func (r *fakeSettingRepo) Upsert(ctx context.Context, name, value string) error {
	if _, ok := r.values[name]; !ok {
		r.inserts++
	}
	r.values[name] = value
	return nil
}

var (
	admin  = policy.Identity{UserID: 1, Role: policy.RoleAdmin}
	viewer = policy.Identity{UserID: 2, Role: policy.RoleViewer}
)

func TestUpdateChurchUpsertsSingleRows(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewService(repo)

	if _, err := svc.UpdateChurch(context.Background(), admin, ChurchInput{Name: "First", Address: "Main St"}); err != nil {
		t.Fatalf("update church: %v", err)
	}
	if _, err := svc.UpdateChurch(context.Background(), admin, ChurchInput{Name: "Second", Contact: "555"}); err != nil {
		t.Fatalf("update church: %v", err)
	}
	if repo.inserts != 3 {
		t.Fatalf("expected 3 rows created once each, got %d inserts", repo.inserts)
	}

	church, err := svc.Church(context.Background())
	if err != nil {
		t.Fatalf("church: %v", err)
	}
	if church.Name != "Second" || church.Address != "" || church.Contact != "555" {
		t.Fatalf("unexpected church %+v", church)
	}
}

func TestUpdateChurchRequiresAdmin(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewService(repo)

	if _, err := svc.UpdateChurch(context.Background(), viewer, ChurchInput{Name: "X"}); !errors.Is(err, policy.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(repo.values) != 0 {
		t.Fatalf("denied update must not write")
	}
}

func TestUpdateSystemValidates(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewService(repo)

	cases := []SystemInput{
		{DefaultTheme: "purple", ItemsPerPage: "10"},
		{DefaultTheme: "dark", ItemsPerPage: "0"},
		{DefaultTheme: "dark", ItemsPerPage: "101"},
		{DefaultTheme: "dark", ItemsPerPage: "ten"},
	}
	for _, input := range cases {
		if _, err := svc.UpdateSystem(context.Background(), admin, input); !errors.Is(err, validate.ErrInvalid) {
			t.Fatalf("input %+v: expected validation error, got %v", input, err)
		}
	}

	system, err := svc.UpdateSystem(context.Background(), admin, SystemInput{DefaultTheme: "Dark", ItemsPerPage: " 25 "})
	if err != nil {
		t.Fatalf("update system: %v", err)
	}
	if system.DefaultTheme != "dark" || system.ItemsPerPage != 25 {
		t.Fatalf("unexpected system %+v", system)
	}
	if svc.ItemsPerPage(context.Background(), 10) != 25 {
		t.Fatalf("items per page not persisted")
	}
}

func TestItemsPerPageFallback(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewService(repo)

	if got := svc.ItemsPerPage(context.Background(), 10); got != 10 {
		t.Fatalf("missing setting: expected fallback 10, got %d", got)
	}
	repo.values[KeyItemsPerPage] = "garbage"
	if got := svc.ItemsPerPage(context.Background(), 12); got != 12 {
		t.Fatalf("bad setting: expected fallback 12, got %d", got)
	}
}

func TestBaptismFieldEnabled(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := NewService(repo)

	if !svc.BaptismFieldEnabled(context.Background()) {
		t.Fatalf("missing setting must default to enabled")
	}
	repo.values[KeyEnableBaptismField] = "false"
	if svc.BaptismFieldEnabled(context.Background()) {
		t.Fatalf("expected disabled")
	}
}
