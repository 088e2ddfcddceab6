package setting

import (
	"context"
	"strconv"
	"strings"

	"church-app-go/internal/domain/policy"
	"church-app-go/pkg/validate"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored value or fallback when the setting is missing.
func (s *Service) Get(ctx context.Context, name, fallback string) (string, error) {
	values, err := s.repo.GetMany(ctx, name)
	if err != nil {
		return "", err
	}
	value, ok := values[name]
	if !ok {
		return fallback, nil
	}
	return value, nil
}

// ItemsPerPage returns the configured page size, or fallback when the stored
// value is missing or out of range.
func (s *Service) ItemsPerPage(ctx context.Context, fallback int) int {
	value, err := s.Get(ctx, KeyItemsPerPage, "")
	if err != nil {
		return fallback
	}
	perPage, ok := parseItemsPerPage(value)
	if !ok {
		return fallback
	}
	return perPage
}

// BaptismFieldEnabled reports whether member forms show the baptism date.
func (s *Service) BaptismFieldEnabled(ctx context.Context) bool {
	value, err := s.Get(ctx, KeyEnableBaptismField, "true")
	if err != nil {
		return true
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return true
	}
	return enabled
}

func (s *Service) Church(ctx context.Context) (Church, error) {
	values, err := s.repo.GetMany(ctx, KeyChurchName, KeyChurchAddress, KeyChurchContact)
	if err != nil {
		return Church{}, err
	}
	return Church{
		Name:    values[KeyChurchName],
		Address: values[KeyChurchAddress],
		Contact: values[KeyChurchContact],
	}, nil
}

func (s *Service) UpdateChurch(ctx context.Context, actor policy.Identity, input ChurchInput) (Church, error) {
	if err := policy.Authorize(actor, policy.ManageSettings, policy.Target{}); err != nil {
		return Church{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	input.Contact = strings.TrimSpace(input.Contact)
	if err := validate.Struct(input); err != nil {
		return Church{}, err
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		return upsertAll(ctx, tx, map[string]string{
			KeyChurchName:    input.Name,
			KeyChurchAddress: input.Address,
			KeyChurchContact: input.Contact,
		})
	})
	if err != nil {
		return Church{}, err
	}
	return Church{Name: input.Name, Address: input.Address, Contact: input.Contact}, nil
}

func (s *Service) System(ctx context.Context, actor policy.Identity, fallbackPerPage int) (System, error) {
	if err := policy.Authorize(actor, policy.ManageSettings, policy.Target{}); err != nil {
		return System{}, err
	}

	values, err := s.repo.GetMany(ctx, KeyDefaultTheme, KeyItemsPerPage)
	if err != nil {
		return System{}, err
	}

	system := System{DefaultTheme: values[KeyDefaultTheme], ItemsPerPage: fallbackPerPage}
	if system.DefaultTheme == "" {
		system.DefaultTheme = "light"
	}
	if perPage, ok := parseItemsPerPage(values[KeyItemsPerPage]); ok {
		system.ItemsPerPage = perPage
	}
	return system, nil
}

func (s *Service) UpdateSystem(ctx context.Context, actor policy.Identity, input SystemInput) (System, error) {
	if err := policy.Authorize(actor, policy.ManageSettings, policy.Target{}); err != nil {
		return System{}, err
	}

	input.DefaultTheme = strings.ToLower(strings.TrimSpace(input.DefaultTheme))
	input.ItemsPerPage = strings.TrimSpace(input.ItemsPerPage)
	if err := validate.Struct(input); err != nil {
		return System{}, err
	}
	perPage, ok := parseItemsPerPage(input.ItemsPerPage)
	if !ok {
		return System{}, validate.Failed("items per page must be between 1 and 100")
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		return upsertAll(ctx, tx, map[string]string{
			KeyDefaultTheme: input.DefaultTheme,
			KeyItemsPerPage: strconv.Itoa(perPage),
		})
	})
	if err != nil {
		return System{}, err
	}
	return System{DefaultTheme: input.DefaultTheme, ItemsPerPage: perPage}, nil
}

func upsertAll(ctx context.Context, repo Repository, values map[string]string) error {
	for name, value := range values {
		if err := repo.Upsert(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

func parseItemsPerPage(value string) (int, bool) {
	perPage, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || perPage < minItemsPerPage || perPage > maxItemsPerPage {
		return 0, false
	}
	return perPage, true
}
