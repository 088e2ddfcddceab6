package user

import (
	"time"

	"church-app-go/internal/domain/policy"
	"church-app-go/internal/domain/status"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

type User struct {
	ID           uint          `gorm:"primaryKey"`
	Username     string        `gorm:"size:80;not null;uniqueIndex"`
	PasswordHash string        `gorm:"column:password;size:255;not null"`
	Role         policy.Role   `gorm:"type:varchar(20);not null"`
	CareGroupID  *uint         `gorm:"column:caregroup_id"`
	Theme        Theme         `gorm:"type:varchar(10);not null"`
	Status       status.Status `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time     `gorm:"autoCreateTime"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u User) IsAdmin() bool {
	return u.Role == policy.RoleAdmin
}

func (u User) IsLeader() bool {
	return u.Role == policy.RoleLeader
}

// Identity is the subject the authorization policy evaluates.
func (u User) Identity() policy.Identity {
	return policy.Identity{UserID: u.ID, Role: u.Role, CareGroupID: u.CareGroupID}
}

func (u User) IsActive() bool {
	return u.Status == status.Active
}

type ListFilter struct {
	Limit  int
	Offset int
}

type CreateInput struct {
	Username    string `form:"username" validate:"required,max=80"`
	Password    string `form:"password" validate:"required,min=6,max=72"`
	Role        string `form:"role" validate:"required,oneof=admin leader viewer"`
	CareGroupID *uint  `form:"caregroup_id"`
}

type UpdateInput struct {
	Role        string `form:"role" validate:"required,oneof=admin leader viewer"`
	Status      string `form:"status" validate:"required,oneof=active inactive"`
	CareGroupID *uint  `form:"caregroup_id"`
}

// AccountInput changes the caller's own credentials. Blank fields keep the current value.
type AccountInput struct {
	Username string `form:"username" validate:"max=80"`
	Password string `form:"password" validate:"omitempty,min=6,max=72"`
}
