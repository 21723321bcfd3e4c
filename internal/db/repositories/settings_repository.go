package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gormModels "journal-transporter/transporter/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository is the auxiliary settings store keyed by
// (scope, object, group, name).
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Set upserts a single setting value.
func (r *SettingsRepository) Set(ctx context.Context, scope string, objectID uint, group, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s.%s: %w", group, name, err)
	}

	row := gormModels.Setting{
		Scope:    scope,
		ObjectID: objectID,
		Group:    group,
		Name:     name,
		Value:    raw,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "object_id"}, {Name: "setting_group"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save setting %s.%s: %w", group, name, err)
	}
	return nil
}

// Get returns the decoded value and whether it exists.
func (r *SettingsRepository) Get(ctx context.Context, scope string, objectID uint, group, name string) (any, bool, error) {
	var row gormModels.Setting

	err := r.db.WithContext(ctx).
		Where("scope = ? AND object_id = ? AND setting_group = ? AND name = ?", scope, objectID, group, name).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch setting %s.%s: %w", group, name, err)
	}

	var value any
	if err := json.Unmarshal(row.Value, &value); err != nil {
		return nil, false, fmt.Errorf("failed to decode setting %s.%s: %w", group, name, err)
	}
	return value, true, nil
}

// Has reports whether the setting exists without decoding it.
func (r *SettingsRepository) Has(ctx context.Context, scope string, objectID uint, group, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormModels.Setting{}).
		Where("scope = ? AND object_id = ? AND setting_group = ? AND name = ?", scope, objectID, group, name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count setting %s.%s: %w", group, name, err)
	}
	return count > 0, nil
}
