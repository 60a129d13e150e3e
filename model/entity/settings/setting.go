package settings

import (
	"time"

	"gorm.io/datatypes"
)

// Singleton setting keys.
const (
	KeyGlobal    = "global"
	KeyMarketing = "marketing"
)

// Setting is one singleton configuration document, keyed by name.
type Setting struct {
	Key       string         `gorm:"column:key;primaryKey;type:varchar(32)" json:"key"`
	Value     datatypes.JSON `gorm:"column:value" json:"value"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Global holds the manually edited exchange rates.
type Global struct {
	ExchangeRate    float64 `json:"exchangeRate"`
	ExchangeRateBCV float64 `json:"exchangeRateBCV"`
}

// Marketing holds storefront marketing content.
type Marketing struct {
	HeroImage string `json:"heroImage"`
	NewsText  string `json:"newsText"`
}
