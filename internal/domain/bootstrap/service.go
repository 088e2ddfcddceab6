// Package bootstrap seeds a fresh database with an administrator and the
// default care groups, ministries and settings.
package bootstrap

import (
	"context"
	"fmt"

	"church-app-go/internal/domain/caregroup"
	"church-app-go/internal/domain/ministry"
	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/setting"
	"church-app-go/internal/domain/status"
	"church-app-go/internal/domain/user"
	"church-app-go/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo     Repository
	log      logger.Logger
	hashCost int
}

type Option func(*Service)

func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.hashCost = cost
	}
}

func NewService(repo Repository, log logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{repo: repo, log: log, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run seeds the defaults when no user exists yet. The whole seed is one
// transaction. It reports whether anything was written.
func (s *Service) Run(ctx context.Context) (bool, error) {
	hash, err := user.HashPassword(DefaultAdminPassword, s.hashCost)
	if err != nil {
		return false, fmt.Errorf("hash default password: %w", err)
	}

	seeded := false
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		count, err := tx.CountUsers(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if count > 0 {
			return nil
		}

		admin := user.User{
			Username:     DefaultAdminUsername,
			PasswordHash: hash,
			Role:         policy.RoleAdmin,
			Theme:        user.ThemeLight,
			Status:       status.Active,
		}
		if err := tx.CreateUser(ctx, &admin); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		for _, seed := range defaultCareGroups {
			group := caregroup.CareGroup{Name: seed.Name, Color: seed.Color, Status: status.Active}
			if err := tx.CreateCareGroup(ctx, &group); err != nil {
				return fmt.Errorf("create care group %s: %w", seed.Name, err)
			}
		}

		for _, name := range defaultMinistries {
			m := ministry.Ministry{Name: name, Status: status.Active}
			if err := tx.CreateMinistry(ctx, &m); err != nil {
				return fmt.Errorf("create ministry %s: %w", name, err)
			}
		}

		for _, seed := range defaultSettings {
			st := setting.Setting{Name: seed.Name, Value: seed.Value}
			if err := tx.CreateSetting(ctx, &st); err != nil {
				return fmt.Errorf("create setting %s: %w", seed.Name, err)
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		s.log.Info("bootstrap: seeded defaults",
			"care_groups", len(defaultCareGroups),
			"ministries", len(defaultMinistries),
			"settings", len(defaultSettings),
		)
	} else {
		s.log.Info("bootstrap: skipped, users already exist")
	}
	return seeded, nil
}
