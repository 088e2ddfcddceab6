package member

import (
	"time"

	"church-app-go/internal/domain/status"
)

const dateLayout = "2006-01-02"

type Member struct {
	ID          uint          `gorm:"primaryKey"`
	Fullname    string        `gorm:"size:120;not null;index"`
	DateOfBirth *time.Time    `gorm:"type:date"`
	Age         *int          `gorm:""`
	Gender      string        `gorm:"size:20"`
	Address     string        `gorm:"type:text"`
	Contact     string        `gorm:"size:20"`
	BaptismDate *time.Time    `gorm:"type:date"`
	MinistryID  *uint         `gorm:"column:ministry_id"`
	CareGroupID *uint         `gorm:"column:caregroup_id"`
	Status      status.Status `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time     `gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime"`

	MinistryName   string `gorm:"column:ministry_name;->;-:migration"`
	CareGroupName  string `gorm:"column:caregroup_name;->;-:migration"`
	CareGroupColor string `gorm:"column:caregroup_color;->;-:migration"`
}

func (Member) TableName() string {
	return "members"
}

func (m Member) IsActive() bool {
	return m.Status == status.Active
}

type ListFilter struct {
	Search      string
	MinistryID  *uint
	CareGroupID *uint
	Status      string
	Limit       int
	Offset      int
}

// Query is what a caller asks to see; the service narrows it by role.
type Query struct {
	Search      string
	MinistryID  *uint
	CareGroupID *uint
	Status      string
}

// Input is the add/edit form. Dates and age arrive as submitted text.
type Input struct {
	Fullname    string `form:"fullname" validate:"required,max=120"`
	DateOfBirth string `form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Age         string `form:"age" validate:"omitempty,number"`
	Gender      string `form:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address     string `form:"address" validate:"max=1000"`
	Contact     string `form:"contact" validate:"max=20"`
	BaptismDate string `form:"baptism_date" validate:"omitempty,datetime=2006-01-02"`
	MinistryID  *uint  `form:"ministry_id"`
	CareGroupID *uint  `form:"caregroup_id"`
}
