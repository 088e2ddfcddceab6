package bootstrap

import "church-app-go/internal/domain/setting"

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

type careGroupSeed struct {
	Name  string
	Color string
}

var defaultCareGroups = []careGroupSeed{
	{Name: "Yellow", Color: "#FFD700"},
	{Name: "Blue", Color: "#1E90FF"},
	{Name: "Red", Color: "#DC143C"},
	{Name: "Green", Color: "#32CD32"},
}

var defaultMinistries = []string{"Youth", "Adult", "Choir", "Ladies", "Laymen", "Children"}

type settingSeed struct {
	Name  string
	Value string
}

var defaultSettings = []settingSeed{
	{Name: setting.KeyChurchName, Value: "Mountain Brook Church"},
	{Name: setting.KeyChurchAddress, Value: ""},
	{Name: setting.KeyChurchContact, Value: ""},
	{Name: setting.KeyDefaultTheme, Value: "light"},
	{Name: setting.KeyItemsPerPage, Value: "10"},
	{Name: setting.KeyEnableBaptismField, Value: "true"},
}
