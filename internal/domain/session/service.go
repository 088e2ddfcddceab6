package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	Remember bool `json:"remember,omitempty"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret           string
	Lifetime         time.Duration
	RememberDuration time.Duration
}

type Service struct {
	secret   []byte
	lifetime time.Duration
	remember time.Duration
	store    Store
	now      func() time.Time
}

func NewService(cfg Config, store Store) *Service {
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	remember := cfg.RememberDuration
	if remember <= 0 {
		remember = 7 * 24 * time.Hour
	}
	return &Service{
		secret:   []byte(cfg.Secret),
		lifetime: lifetime,
		remember: remember,
		store:    store,
		now:      time.Now,
	}
}

// Issue signs a new session token for userID. A remembered session outlives
// the browser and lasts RememberDuration.
func (s *Service) Issue(userID uint, remember bool) (string, Session, error) {
	now := s.now().UTC().Truncate(time.Second)
	ttl := s.lifetime
	if remember {
		ttl = s.remember
	}

	sess := Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		IssuedAt:   now,
		ExpiresAt:  now.Add(ttl),
		Persistent: remember,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Remember: remember,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, sess, nil
}

// Resolve verifies token and checks it has not been revoked.
func (s *Service) Resolve(ctx context.Context, token string) (Session, error) {
	sess, err := s.parse(token)
	if err != nil {
		return Session{}, err
	}

	revoked, err := s.store.IsRevoked(ctx, sess.ID)
	if err != nil {
		return Session{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return Session{}, ErrSessionRevoked
	}
	return sess, nil
}

// Revoke invalidates token until its natural expiry. Tokens that no longer
// verify need no revocation and are ignored.
func (s *Service) Revoke(ctx context.Context, token string) error {
	sess, err := s.parse(token)
	if err != nil {
		return nil
	}
	return s.store.Revoke(ctx, sess.ID, sess.ExpiresAt)
}

func (s *Service) parse(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidSession
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.ID == "" {
		return Session{}, ErrInvalidSession
	}

	userID, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || userID == 0 {
		return Session{}, ErrInvalidSession
	}

	sess := Session{
		ID:         c.ID,
		UserID:     uint(userID),
		Persistent: c.Remember,
	}
	if c.IssuedAt != nil {
		sess.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		sess.ExpiresAt = c.ExpiresAt.Time
	}
	return sess, nil
}
