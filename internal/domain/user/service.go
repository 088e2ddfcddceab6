package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"church-app-go/internal/domain/paging"
	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/status"
	"church-app-go/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo     Repository
	hashCost int
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.hashCost = cost
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate checks credentials. The account status is only revealed once
// the password has matched.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, actor policy.Identity, req paging.Request) (paging.Page[User], error) {
	if err := policy.Authorize(actor, policy.ManageUsers, policy.Target{}); err != nil {
		return paging.Page[User]{}, err
	}

	users, total, err := s.repo.List(ctx, ListFilter{Limit: req.PerPage, Offset: req.Offset()})
	if err != nil {
		return paging.Page[User]{}, err
	}
	return paging.New(users, req, total), nil
}

// LeaderCandidates lists active non-admin users that may lead a care group.
func (s *Service) LeaderCandidates(ctx context.Context) ([]User, error) {
	return s.repo.ListLeaderCandidates(ctx)
}

func (s *Service) Create(ctx context.Context, actor policy.Identity, input CreateInput) (*User, error) {
	if err := policy.Authorize(actor, policy.ManageUsers, policy.Target{}); err != nil {
		return nil, err
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Role = strings.TrimSpace(input.Role)
	if input.Role == "" {
		input.Role = string(policy.RoleViewer)
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password, s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         policy.Role(input.Role),
		CareGroupID:  input.CareGroupID,
		Theme:        ThemeLight,
		Status:       status.Active,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.IsUsernameTaken(ctx, user.Username, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		if err := checkCareGroup(ctx, tx, user.CareGroupID); err != nil {
			return err
		}
		return tx.Create(ctx, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) Update(ctx context.Context, actor policy.Identity, id uint, input UpdateInput) (*User, error) {
	if err := policy.Authorize(actor, policy.ManageUsers, policy.Target{}); err != nil {
		return nil, err
	}

	input.Role = strings.TrimSpace(input.Role)
	input.Status = strings.TrimSpace(input.Status)
	if input.Role == "" {
		input.Role = string(policy.RoleViewer)
	}
	if input.Status == "" {
		input.Status = string(status.Active)
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var result User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		user, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkCareGroup(ctx, tx, input.CareGroupID); err != nil {
			return err
		}

		user.Role = policy.Role(input.Role)
		user.Status = status.Status(input.Status)
		user.CareGroupID = input.CareGroupID
		if err := tx.Save(ctx, user); err != nil {
			return err
		}
		result = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateAccount changes the caller's own username and password.
func (s *Service) UpdateAccount(ctx context.Context, actor policy.Identity, input AccountInput) (*User, error) {
	if err := policy.Authorize(actor, policy.UpdateOwnAccount, policy.Target{UserID: actor.UserID}); err != nil {
		return nil, err
	}

	input.Username = strings.TrimSpace(input.Username)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var result User
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		user, err := tx.GetByID(ctx, actor.UserID)
		if err != nil {
			return err
		}

		if input.Username != "" && input.Username != user.Username {
			taken, err := tx.IsUsernameTaken(ctx, input.Username, user.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrUsernameTaken
			}
			user.Username = input.Username
		}

		if input.Password != "" {
			hash, err := HashPassword(input.Password, s.hashCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.PasswordHash = hash
		}

		if err := tx.Save(ctx, user); err != nil {
			return err
		}
		result = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) SetTheme(ctx context.Context, actor policy.Identity, theme string) error {
	if err := policy.Authorize(actor, policy.ViewOwnSettings, policy.Target{}); err != nil {
		return err
	}

	t := Theme(strings.ToLower(strings.TrimSpace(theme)))
	if !t.Valid() {
		return ErrInvalidTheme
	}
	return s.repo.UpdateTheme(ctx, actor.UserID, t)
}

func checkCareGroup(ctx context.Context, repo Repository, id *uint) error {
	if id == nil {
		return nil
	}
	active, err := repo.IsCareGroupActive(ctx, *id)
	if err != nil {
		return err
	}
	if !active {
		return validate.Failed("care group does not exist or is inactive")
	}
	return nil
}
