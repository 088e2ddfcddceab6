package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	revoked map[string]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{revoked: make(map[string]time.Time)}
}

func (s *fakeStore) Revoke(ctx context.Context, id string, until time.Time) error {
	s.revoked[id] = until
	return nil
}

func (s *fakeStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	_, ok := s.revoked[id]
	return ok, nil
}

func newTestService(store Store, now time.Time) *Service {
	svc := NewService(Config{Secret: "test-secret", Lifetime: time.Hour, RememberDuration: 48 * time.Hour}, store)
	svc.now = func() time.Time { return now }
	return svc
}

func TestIssueAndResolve(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeStore(), now)

	token, issued, err := svc.Issue(42, false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if issued.Persistent || !issued.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected session %+v", issued)
	}

	resolved, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.UserID != 42 || resolved.ID != issued.ID {
		t.Fatalf("unexpected session %+v", resolved)
	}
}

func TestRememberExtendsLifetime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeStore(), now)

	token, issued, err := svc.Issue(7, true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !issued.Persistent || !issued.ExpiresAt.Equal(now.Add(48*time.Hour)) {
		t.Fatalf("unexpected session %+v", issued)
	}

	svc.now = func() time.Time { return now.Add(24 * time.Hour) }
	resolved, err := svc.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("remembered session must outlive the default lifetime: %v", err)
	}
	if !resolved.Persistent {
		t.Fatalf("persistent flag lost")
	}
}

func TestExpiredSessionRejected(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeStore(), now)

	token, _, err := svc.Issue(7, false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeStore(), now)
	other := NewService(Config{Secret: "another-secret"}, newFakeStore())
	other.now = svc.now

	token, _, err := other.Issue(1, false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	for _, candidate := range []string{token, "", "not-a-token"} {
		if _, err := svc.Resolve(context.Background(), candidate); !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("token %q: expected ErrInvalidSession, got %v", candidate, err)
		}
	}
}

func TestRevokedSessionRejected(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := newFakeStore()
	svc := newTestService(store, now)

	token, issued, err := svc.Issue(9, false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := svc.Revoke(context.Background(), token); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if until := store.revoked[issued.ID]; !until.Equal(issued.ExpiresAt) {
		t.Fatalf("revocation must last until expiry, got %v", until)
	}
	if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}

	if err := svc.Revoke(context.Background(), "garbage"); err != nil {
		t.Fatalf("revoking an invalid token must be a no-op, got %v", err)
	}
}
