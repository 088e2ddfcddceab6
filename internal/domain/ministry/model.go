package ministry

import (
	"time"

	"church-app-go/internal/domain/status"
)

type Ministry struct {
	ID          uint          `gorm:"primaryKey"`
	Name        string        `gorm:"size:80;not null;uniqueIndex"`
	Description string        `gorm:"type:text;not null"`
	Status      status.Status `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time     `gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime"`

	MemberCount int64 `gorm:"column:member_count;->;-:migration"`
}

func (Ministry) TableName() string {
	return "ministries"
}

func (m Ministry) IsActive() bool {
	return m.Status == status.Active
}

type ListFilter struct {
	Status string
}

type Input struct {
	Name        string `form:"name" validate:"required,max=80"`
	Description string `form:"description" validate:"max=2000"`
	Status      string `form:"status" validate:"omitempty,oneof=active inactive"`
}
