package bootstrap

import (
	"context"
	"errors"
	"testing"

	"church-app-go/internal/domain/caregroup"
	"church-app-go/internal/domain/ministry"
	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/setting"
	"church-app-go/internal/domain/status"
	"church-app-go/internal/domain/user"
	"church-app-go/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type fakeBootstrapRepo struct {
	users      []user.User
	careGroups []caregroup.CareGroup
	ministries []ministry.Ministry
	settings   []setting.Setting
	failOn     string
}

// Transaction stages writes on a copy and commits them only when fn succeeds.
func (r *fakeBootstrapRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	staged := &fakeBootstrapRepo{
		users:      append([]user.User(nil), r.users...),
		careGroups: append([]caregroup.CareGroup(nil), r.careGroups...),
		ministries: append([]ministry.Ministry(nil), r.ministries...),
		settings:   append([]setting.Setting(nil), r.settings...),
		failOn:     r.failOn,
	}
	if err := fn(staged); err != nil {
		return err
	}
	r.users = staged.users
	r.careGroups = staged.careGroups
	r.ministries = staged.ministries
	r.settings = staged.settings
	return nil
}

func (r *fakeBootstrapRepo) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeBootstrapRepo) CreateUser(ctx context.Context, u *user.User) error {
	u.ID = uint(len(r.users) + 1)
	r.users = append(r.users, *u)
	return nil
}

func (r *fakeBootstrapRepo) CreateCareGroup(ctx context.Context, group *caregroup.CareGroup) error {
	group.ID = uint(len(r.careGroups) + 1)
	r.careGroups = append(r.careGroups, *group)
	return nil
}

func (r *fakeBootstrapRepo) CreateMinistry(ctx context.Context, m *ministry.Ministry) error {
	if m.Name == r.failOn {
		return errors.New("disk full")
	}
	m.ID = uint(len(r.ministries) + 1)
	r.ministries = append(r.ministries, *m)
	return nil
}

func (r *fakeBootstrapRepo) CreateSetting(ctx context.Context, s *setting.Setting) error {
	s.ID = uint(len(r.settings) + 1)
	r.settings = append(r.settings, *s)
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, logger.Nop(), WithHashCost(bcrypt.MinCost))
}

func TestRunSeedsEmptyDatabase(t *testing.T) {
	repo := &fakeBootstrapRepo{}
	svc := newTestService(repo)

	seeded, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !seeded {
		t.Fatalf("expected seed on empty database")
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(repo.users))
	}
	admin := repo.users[0]
	if admin.Username != "admin" || admin.Role != policy.RoleAdmin || admin.Status != status.Active || admin.Theme != user.ThemeLight {
		t.Fatalf("unexpected admin %+v", admin)
	}
	ok, err := user.CheckPassword(admin.PasswordHash, "admin123")
	if err != nil || !ok {
		t.Fatalf("admin password must be admin123: %v", err)
	}

	wantColors := map[string]string{"Yellow": "#FFD700", "Blue": "#1E90FF", "Red": "#DC143C", "Green": "#32CD32"}
	if len(repo.careGroups) != len(wantColors) {
		t.Fatalf("expected %d care groups, got %d", len(wantColors), len(repo.careGroups))
	}
	for _, group := range repo.careGroups {
		if wantColors[group.Name] != group.Color || group.LeaderID != nil || group.Status != status.Active {
			t.Fatalf("unexpected care group %+v", group)
		}
	}

	if len(repo.ministries) != 6 {
		t.Fatalf("expected 6 ministries, got %d", len(repo.ministries))
	}

	settings := make(map[string]string, len(repo.settings))
	for _, st := range repo.settings {
		settings[st.Name] = st.Value
	}
	if len(settings) != 6 || settings["church_name"] != "Mountain Brook Church" || settings["items_per_page"] != "10" || settings["default_theme"] != "light" {
		t.Fatalf("unexpected settings %v", settings)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	repo := &fakeBootstrapRepo{}
	svc := newTestService(repo)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	seeded, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if seeded {
		t.Fatalf("second run must not seed")
	}
	if len(repo.users) != 1 || len(repo.careGroups) != 4 || len(repo.ministries) != 6 || len(repo.settings) != 6 {
		t.Fatalf("second run changed row counts")
	}
}

func TestRunSkipsWhenAnyUserExists(t *testing.T) {
	repo := &fakeBootstrapRepo{users: []user.User{{ID: 1, Username: "someone", Role: policy.RoleViewer}}}
	svc := newTestService(repo)

	seeded, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if seeded || len(repo.careGroups) != 0 || len(repo.ministries) != 0 || len(repo.settings) != 0 {
		t.Fatalf("bootstrap must not touch a database that already has users")
	}
}

func TestRunRollsBackOnFailure(t *testing.T) {
	repo := &fakeBootstrapRepo{failOn: "Choir"}
	svc := newTestService(repo)

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.users) != 0 || len(repo.careGroups) != 0 || len(repo.ministries) != 0 || len(repo.settings) != 0 {
		t.Fatalf("failed bootstrap must leave no rows")
	}
}
