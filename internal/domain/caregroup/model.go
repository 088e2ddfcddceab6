package caregroup

import (
	"time"

	"church-app-go/internal/domain/status"
)

const DefaultColor = "#000000"

type CareGroup struct {
	ID        uint          `gorm:"primaryKey"`
	Name      string        `gorm:"size:80;not null;uniqueIndex"`
	Color     string        `gorm:"size:7;not null"`
	LeaderID  *uint         `gorm:"column:leader_id"`
	Status    status.Status `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time     `gorm:"autoCreateTime"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime"`

	LeaderName  string `gorm:"column:leader_name;->;-:migration"`
	MemberCount int64  `gorm:"column:member_count;->;-:migration"`
}

func (CareGroup) TableName() string {
	return "caregroups"
}

func (g CareGroup) IsActive() bool {
	return g.Status == status.Active
}

type ListFilter struct {
	Status string
}

// Input is the add/edit form. Status is only offered on edit.
type Input struct {
	Name     string `form:"name" validate:"required,max=80"`
	Color    string `form:"color" validate:"omitempty,rgbhex"`
	LeaderID *uint  `form:"leader_id"`
	Status   string `form:"status" validate:"omitempty,oneof=active inactive"`
}
