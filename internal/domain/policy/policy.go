// Package policy decides whether an identity may perform an action. It has no
// I/O: callers load whatever ownership facts the decision needs into Target.
package policy

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleLeader Role = "leader"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLeader, RoleViewer:
		return true
	default:
		return false
	}
}

func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	return role, role.Valid()
}

type Action string

const (
	ViewDashboard    Action = "dashboard.view"
	ViewOwnSettings  Action = "settings.view_own"
	UpdateOwnAccount Action = "account.update_own"
	ListMembers      Action = "members.list"
	ViewMember       Action = "members.view"
	AddMember        Action = "members.add"
	EditMember       Action = "members.edit"
	DeactivateMember Action = "members.deactivate"
	ListCareGroups   Action = "caregroups.list"
	ViewCareGroup    Action = "caregroups.view"
	ManageCareGroups Action = "caregroups.manage"
	ManageUsers      Action = "users.manage"
	ManageMinistries Action = "ministries.manage"
	ManageSettings   Action = "settings.manage"
)

type Identity struct {
	UserID      uint
	Role        Role
	CareGroupID *uint
}

func (i Identity) Authenticated() bool {
	return i.UserID != 0 && i.Role.Valid()
}

// Target carries the ownership facts of the resource being acted on.
type Target struct {
	CareGroupID *uint
	UserID      uint
}

var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")
)

// DeniedError explains a refusal in words suitable for the user.
type DeniedError struct {
	Action Action
	Reason string
}

func (e *DeniedError) Error() string {
	return e.Reason
}

func (e *DeniedError) Unwrap() error {
	return ErrPermissionDenied
}

const reasonNoPermission = "You do not have permission to access this page."

// Authorize returns nil when identity may perform action on target.
func Authorize(identity Identity, action Action, target Target) error {
	if !identity.Authenticated() {
		return ErrUnauthenticated
	}

	switch action {
	case ViewDashboard, ViewOwnSettings, ListMembers, ListCareGroups:
		return nil

	case UpdateOwnAccount:
		if target.UserID == identity.UserID {
			return nil
		}
		return deny(action, "You can only change your own account.")

	case ViewMember:
		return allowScoped(identity, action, target, "You can only view members in your care group.")

	case AddMember:
		if identity.Role == RoleLeader {
			return allowScoped(identity, action, target, "You can only add members to your care group.")
		}
		return allowScoped(identity, action, target, "You do not have permission to add members.")

	case EditMember:
		return allowScoped(identity, action, target, "You can only edit members in your care group.")

	case DeactivateMember:
		if identity.Role == RoleAdmin {
			return nil
		}
		return deny(action, "Only admins can deactivate members.")

	case ViewCareGroup:
		return allowScoped(identity, action, target, "You can only view your assigned care group.")

	case ManageCareGroups, ManageUsers, ManageMinistries, ManageSettings:
		if identity.Role == RoleAdmin {
			return nil
		}
		return deny(action, reasonNoPermission)
	}

	return deny(action, reasonNoPermission)
}

// Allowed is Authorize as a boolean, for templates and menus.
func Allowed(identity Identity, action Action, target Target) bool {
	return Authorize(identity, action, target) == nil
}

// MemberScope reports the care group a member listing must be restricted to.
// A leader without a care group is scoped to nothing.
func MemberScope(identity Identity) (careGroupID *uint, scoped bool) {
	if identity.Role != RoleLeader {
		return nil, false
	}
	return identity.CareGroupID, true
}

// allowScoped grants admins and viewers unconditionally and leaders only
// within their own care group.
func allowScoped(identity Identity, action Action, target Target, reason string) error {
	switch identity.Role {
	case RoleAdmin, RoleViewer:
		return nil
	case RoleLeader:
		if sameCareGroup(identity.CareGroupID, target.CareGroupID) {
			return nil
		}
	}
	return deny(action, reason)
}

func sameCareGroup(own, target *uint) bool {
	return own != nil && target != nil && *own == *target
}

func deny(action Action, reason string) error {
	return &DeniedError{Action: action, Reason: reason}
}
