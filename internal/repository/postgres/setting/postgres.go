package setting

import (
	"context"
	"time"

	settingdomain "church-app-go/internal/domain/setting"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(settingdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetMany(ctx context.Context, names ...string) (map[string]string, error) {
	values := make(map[string]string, len(names))
	if len(names) == 0 {
		return values, nil
	}

	var settings []settingdomain.Setting
	if err := r.db.WithContext(ctx).Where("setting_name IN ?", names).Find(&settings).Error; err != nil {
		return nil, err
	}
	for _, s := range settings {
		values[s.Name] = s.Value
	}
	return values, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, name, value string) error {
	setting := settingdomain.Setting{Name: name, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "setting_name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"setting_value": value,
				"updated_at":    time.Now().UTC(),
			}),
		}).
		Create(&setting).Error
}
