package caregroup

import (
	"context"
	"strings"

	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/status"
	"church-app-go/pkg/validate"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns active care groups with their active member counts.
func (s *Service) List(ctx context.Context, actor policy.Identity) ([]CareGroup, error) {
	if err := policy.Authorize(actor, policy.ListCareGroups, policy.Target{}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{Status: string(status.Active)})
}

// Options lists the active care groups offered in form dropdowns.
func (s *Service) Options(ctx context.Context) ([]CareGroup, error) {
	return s.repo.List(ctx, ListFilter{Status: string(status.Active)})
}

func (s *Service) Get(ctx context.Context, actor policy.Identity, id uint) (*CareGroup, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ViewCareGroup, policy.Target{CareGroupID: &group.ID}); err != nil {
		return nil, err
	}
	return group, nil
}

// GetForEdit loads a care group for the admin edit form.
func (s *Service) GetForEdit(ctx context.Context, actor policy.Identity, id uint) (*CareGroup, error) {
	if err := policy.Authorize(actor, policy.ManageCareGroups, policy.Target{}); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor policy.Identity, input Input) (*CareGroup, error) {
	if err := policy.Authorize(actor, policy.ManageCareGroups, policy.Target{}); err != nil {
		return nil, err
	}

	input = normalize(input)
	if input.Status == "" {
		input.Status = string(status.Active)
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	group := CareGroup{
		Name:     input.Name,
		Color:    input.Color,
		LeaderID: input.LeaderID,
		Status:   status.Status(input.Status),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := checkUnique(ctx, tx, group.Name, 0); err != nil {
			return err
		}
		if err := checkLeader(ctx, tx, group.LeaderID); err != nil {
			return err
		}
		return tx.Create(ctx, &group)
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Service) Update(ctx context.Context, actor policy.Identity, id uint, input Input) (*CareGroup, error) {
	if err := policy.Authorize(actor, policy.ManageCareGroups, policy.Target{}); err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var result CareGroup
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		group, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if input.Name != group.Name {
			if err := checkUnique(ctx, tx, input.Name, group.ID); err != nil {
				return err
			}
		}
		if err := checkLeader(ctx, tx, input.LeaderID); err != nil {
			return err
		}

		group.Name = input.Name
		group.Color = input.Color
		group.LeaderID = input.LeaderID
		if input.Status != "" {
			group.Status = status.Status(input.Status)
		}
		if err := tx.Save(ctx, group); err != nil {
			return err
		}
		result = *group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func normalize(input Input) Input {
	input.Name = strings.TrimSpace(input.Name)
	input.Color = strings.TrimSpace(input.Color)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	if input.Color == "" {
		input.Color = DefaultColor
	}
	return input
}

func checkUnique(ctx context.Context, repo Repository, name string, excludeID uint) error {
	taken, err := repo.IsNameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrNameTaken
	}
	return nil
}

func checkLeader(ctx context.Context, repo Repository, leaderID *uint) error {
	if leaderID == nil {
		return nil
	}
	ok, err := repo.IsLeaderEligible(ctx, *leaderID)
	if err != nil {
		return err
	}
	if !ok {
		return validate.Failed("leader must be an active user who is not an admin")
	}
	return nil
}
