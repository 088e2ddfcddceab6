package member

import (
	"context"
	"strconv"
	"strings"
	"time"

	"church-app-go/internal/domain/paging"
	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/status"
	"church-app-go/pkg/validate"
)

const maxAge = 150

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns one page of members matching query. Leaders only ever see
// their own care group, whatever the query asks for.
func (s *Service) List(ctx context.Context, actor policy.Identity, query Query, req paging.Request) (paging.Page[Member], error) {
	if err := policy.Authorize(actor, policy.ListMembers, policy.Target{}); err != nil {
		return paging.Page[Member]{}, err
	}

	filter := ListFilter{
		Search:      strings.TrimSpace(query.Search),
		MinistryID:  query.MinistryID,
		CareGroupID: query.CareGroupID,
		Status:      strings.TrimSpace(query.Status),
		Limit:       req.PerPage,
		Offset:      req.Offset(),
	}

	if scope, scoped := policy.MemberScope(actor); scoped {
		if scope == nil {
			return paging.New[Member](nil, req, 0), nil
		}
		if filter.CareGroupID != nil && *filter.CareGroupID != *scope {
			return paging.New[Member](nil, req, 0), nil
		}
		filter.CareGroupID = scope
	}

	members, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return paging.Page[Member]{}, err
	}
	return paging.New(members, req, total), nil
}

// ListByCareGroup returns every active member of a care group, unpaginated.
func (s *Service) ListByCareGroup(ctx context.Context, actor policy.Identity, careGroupID uint) ([]Member, error) {
	if err := policy.Authorize(actor, policy.ViewCareGroup, policy.Target{CareGroupID: &careGroupID}); err != nil {
		return nil, err
	}
	members, _, err := s.repo.List(ctx, ListFilter{CareGroupID: &careGroupID, Status: string(status.Active)})
	return members, err
}

func (s *Service) Get(ctx context.Context, actor policy.Identity, id uint) (*Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ViewMember, policy.Target{CareGroupID: member.CareGroupID}); err != nil {
		return nil, err
	}
	return member, nil
}

// GetForEdit loads a member the actor is allowed to edit.
func (s *Service) GetForEdit(ctx context.Context, actor policy.Identity, id uint) (*Member, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.EditMember, policy.Target{CareGroupID: member.CareGroupID}); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) Create(ctx context.Context, actor policy.Identity, input Input) (*Member, error) {
	if err := policy.Authorize(actor, policy.AddMember, policy.Target{CareGroupID: input.CareGroupID}); err != nil {
		return nil, err
	}

	input = normalize(input)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	member := Member{Status: status.Active}
	if err := apply(&member, input, false); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := checkReferences(ctx, tx, input, nil); err != nil {
			return err
		}
		return tx.Create(ctx, &member)
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update overwrites the member with input. Blank dates and age keep their
// stored values. A leader can neither edit outside nor move a member out of
// their care group.
func (s *Service) Update(ctx context.Context, actor policy.Identity, id uint, input Input) (*Member, error) {
	input = normalize(input)

	var result Member
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.Authorize(actor, policy.EditMember, policy.Target{CareGroupID: member.CareGroupID}); err != nil {
			return err
		}
		if actor.Role == policy.RoleLeader {
			if err := policy.Authorize(actor, policy.EditMember, policy.Target{CareGroupID: input.CareGroupID}); err != nil {
				return err
			}
		}

		if err := validate.Struct(input); err != nil {
			return err
		}
		if err := checkReferences(ctx, tx, input, member); err != nil {
			return err
		}
		if err := apply(member, input, true); err != nil {
			return err
		}
		if err := tx.Save(ctx, member); err != nil {
			return err
		}
		result = *member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Deactivate marks the member inactive. The row is kept.
func (s *Service) Deactivate(ctx context.Context, actor policy.Identity, id uint) (*Member, error) {
	var result Member
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.Authorize(actor, policy.DeactivateMember, policy.Target{CareGroupID: member.CareGroupID}); err != nil {
			return err
		}
		member.Status = status.Inactive
		if err := tx.Save(ctx, member); err != nil {
			return err
		}
		result = *member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func normalize(input Input) Input {
	input.Fullname = strings.TrimSpace(input.Fullname)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	input.Age = strings.TrimSpace(input.Age)
	input.Gender = strings.TrimSpace(input.Gender)
	input.Address = strings.TrimSpace(input.Address)
	input.Contact = strings.TrimSpace(input.Contact)
	input.BaptismDate = strings.TrimSpace(input.BaptismDate)
	return input
}

func apply(member *Member, input Input, keepBlank bool) error {
	member.Fullname = input.Fullname
	member.Gender = input.Gender
	member.Address = input.Address
	member.Contact = input.Contact
	member.MinistryID = input.MinistryID
	member.CareGroupID = input.CareGroupID

	if input.DateOfBirth != "" || !keepBlank {
		born, err := parseDate(input.DateOfBirth)
		if err != nil {
			return validate.Failed("date of birth must be a date in YYYY-MM-DD format")
		}
		member.DateOfBirth = born
	}

	if input.BaptismDate != "" || !keepBlank {
		baptized, err := parseDate(input.BaptismDate)
		if err != nil {
			return validate.Failed("baptism date must be a date in YYYY-MM-DD format")
		}
		member.BaptismDate = baptized
	}

	if input.Age != "" {
		age, err := strconv.Atoi(input.Age)
		if err != nil || age < 0 || age > maxAge {
			return validate.Failed("age must be a whole number between 0 and 150")
		}
		member.Age = &age
	} else if !keepBlank {
		member.Age = nil
	}

	return nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// checkReferences rejects inactive or unknown ministry and care group ids.
// On update, a reference the member already holds is kept even when the
// referenced row has since been deactivated.
func checkReferences(ctx context.Context, repo Repository, input Input, stored *Member) error {
	var messages []string

	if input.MinistryID != nil && !(stored != nil && sameRef(stored.MinistryID, input.MinistryID)) {
		ok, err := repo.IsMinistryActive(ctx, *input.MinistryID)
		if err != nil {
			return err
		}
		if !ok {
			messages = append(messages, "ministry does not exist or is inactive")
		}
	}

	if input.CareGroupID != nil && !(stored != nil && sameRef(stored.CareGroupID, input.CareGroupID)) {
		ok, err := repo.IsCareGroupActive(ctx, *input.CareGroupID)
		if err != nil {
			return err
		}
		if !ok {
			messages = append(messages, "care group does not exist or is inactive")
		}
	}

	if len(messages) > 0 {
		return validate.Failed(messages...)
	}
	return nil
}

func sameRef(a, b *uint) bool {
	return a != nil && b != nil && *a == *b
}
