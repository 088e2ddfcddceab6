package setting

import "time"

const (
	KeyChurchName         = "church_name"
	KeyChurchAddress      = "church_address"
	KeyChurchContact      = "church_contact"
	KeyDefaultTheme       = "default_theme"
	KeyItemsPerPage       = "items_per_page"
	KeyEnableBaptismField = "enable_baptism_field"
)

const (
	minItemsPerPage = 1
	maxItemsPerPage = 100
)

type Setting struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"column:setting_name;size:100;not null;uniqueIndex"`
	Value     string    `gorm:"column:setting_value;type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Setting) TableName() string {
	return "settings"
}

type Church struct {
	Name    string
	Address string
	Contact string
}

type System struct {
	DefaultTheme string
	ItemsPerPage int
}

type ChurchInput struct {
	Name    string `form:"church_name" validate:"required,max=200"`
	Address string `form:"church_address" validate:"max=1000"`
	Contact string `form:"church_contact" validate:"max=200"`
}

type SystemInput struct {
	DefaultTheme string `form:"default_theme" validate:"required,oneof=light dark"`
	ItemsPerPage string `form:"items_per_page" validate:"required,number"`
}
