package setting

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	// GetMany returns the stored values for names; missing keys are absent from the map.
	GetMany(ctx context.Context, names ...string) (map[string]string, error)
	// Upsert creates the setting or overwrites its value.
	Upsert(ctx context.Context, name, value string) error
}
