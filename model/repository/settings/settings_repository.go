package settings

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	settingsEntity "conputodo.GO/model/entity/settings"
)

// SettingsRepository is the one access path to the settings singletons.
// Components that need rates or marketing content take this repository as
// a dependency instead of fetching ad-hoc global state.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Global returns the exchange-rate settings. A missing row yields the
// zero value, not an error.
func (r *SettingsRepository) Global() (settingsEntity.Global, error) {
	var g settingsEntity.Global
	err := r.load(settingsEntity.KeyGlobal, &g)
	return g, err
}

// SaveGlobal upserts the exchange-rate settings.
func (r *SettingsRepository) SaveGlobal(g settingsEntity.Global) error {
	return r.store(settingsEntity.KeyGlobal, g)
}

// Marketing returns the storefront marketing settings.
func (r *SettingsRepository) Marketing() (settingsEntity.Marketing, error) {
	var m settingsEntity.Marketing
	err := r.load(settingsEntity.KeyMarketing, &m)
	return m, err
}

// SaveMarketing upserts the storefront marketing settings.
func (r *SettingsRepository) SaveMarketing(m settingsEntity.Marketing) error {
	return r.store(settingsEntity.KeyMarketing, m)
}

// byKey builds the settings-row condition through the clause builder so
// the column name is dialect-quoted; KEY is a reserved word in MySQL and
// a raw `key = ?` string dies with a syntax error there.
func byKey(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

func (r *SettingsRepository) load(key string, out interface{}) error {
	var row settingsEntity.Setting
	err := r.db.Where(byKey(key)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(row.Value) == 0 {
		return nil
	}
	return json.Unmarshal(row.Value, out)
}

func (r *SettingsRepository) store(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	row := settingsEntity.Setting{Key: key, Value: datatypes.JSON(raw)}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}
	return r.db.Clauses(upsert).Create(&row).Error
}
