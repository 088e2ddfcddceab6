package ministry

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

// List returns every ministry, inactive ones included, with active member counts.
func (s *Service) List(ctx context.Context, actor policy.Identity) ([]Ministry, error) {
	if err := policy.Authorize(actor, policy.ManageMinistries, policy.Target{}); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ListFilter{})
}

// Options lists the active ministries offered in member forms and filters.
func (s *Service) Options(ctx context.Context) ([]Ministry, error) {
	return s.repo.List(ctx, ListFilter{Status: string(status.Active)})
}

func (s *Service) Get(ctx context.Context, actor policy.Identity, id uint) (*Ministry, error) {
	if err := policy.Authorize(actor, policy.ManageMinistries, policy.Target{}); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor policy.Identity, input Input) (*Ministry, error) {
	if err := policy.Authorize(actor, policy.ManageMinistries, policy.Target{}); err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	ministry := Ministry{
		Name:        input.Name,
		Description: input.Description,
		Status:      status.Active,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		taken, err := tx.IsNameTaken(ctx, ministry.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		return tx.Create(ctx, &ministry)
	})
	if err != nil {
		return nil, err
	}
	return &ministry, nil
}

func (s *Service) Update(ctx context.Context, actor policy.Identity, id uint, input Input) (*Ministry, error) {
	if err := policy.Authorize(actor, policy.ManageMinistries, policy.Target{}); err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var result Ministry
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		ministry, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if input.Name != ministry.Name {
			taken, err := tx.IsNameTaken(ctx, input.Name, ministry.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrNameTaken
			}
		}

		ministry.Name = input.Name
		ministry.Description = input.Description
		if input.Status != "" {
			ministry.Status = status.Status(input.Status)
		}
		if err := tx.Save(ctx, ministry); err != nil {
			return err
		}
		result = *ministry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete is a soft delete: the ministry becomes inactive and members keep
// their reference to it.
func (s *Service) Delete(ctx context.Context, actor policy.Identity, id uint) (*Ministry, error) {
	if err := policy.Authorize(actor, policy.ManageMinistries, policy.Target{}); err != nil {
		return nil, err
	}

	var result Ministry
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		ministry, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		ministry.Status = status.Inactive
		if err := tx.Save(ctx, ministry); err != nil {
			return err
		}
		result = *ministry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func normalize(input Input) Input {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	return input
}
