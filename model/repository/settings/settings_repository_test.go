package settings

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	settingsEntity "conputodo.GO/model/entity/settings"
)

func testRepo(t *testing.T) *SettingsRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&settingsEntity.Setting{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSettingsRepository(db)
}

func TestSettings_MissingRowsYieldZeroValues(t *testing.T) {
	repo := testRepo(t)

	g, err := repo.Global()
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if g.ExchangeRate != 0 || g.ExchangeRateBCV != 0 {
		t.Errorf("Global = %+v, want zero value", g)
	}

	m, err := repo.Marketing()
	if err != nil {
		t.Fatalf("Marketing: %v", err)
	}
	if m.HeroImage != "" || m.NewsText != "" {
		t.Errorf("Marketing = %+v, want zero value", m)
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	repo := testRepo(t)

	if err := repo.SaveGlobal(settingsEntity.Global{ExchangeRate: 40, ExchangeRateBCV: 36.5}); err != nil {
		t.Fatalf("SaveGlobal: %v", err)
	}
	if err := repo.SaveMarketing(settingsEntity.Marketing{HeroImage: "/media/hero.webp", NewsText: "Ofertas de agosto"}); err != nil {
		t.Fatalf("SaveMarketing: %v", err)
	}

	g, err := repo.Global()
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if g.ExchangeRate != 40 || g.ExchangeRateBCV != 36.5 {
		t.Errorf("Global = %+v", g)
	}

	m, err := repo.Marketing()
	if err != nil {
		t.Fatalf("Marketing: %v", err)
	}
	if m.HeroImage != "/media/hero.webp" || m.NewsText != "Ofertas de agosto" {
		t.Errorf("Marketing = %+v", m)
	}
}

func TestSettings_SaveIsAnUpsert(t *testing.T) {
	repo := testRepo(t)

	if err := repo.SaveGlobal(settingsEntity.Global{ExchangeRate: 38}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := repo.SaveGlobal(settingsEntity.Global{ExchangeRate: 41, ExchangeRateBCV: 37}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	g, err := repo.Global()
	if err != nil {
		t.Fatalf("Global: %v", err)
	}
	if g.ExchangeRate != 41 || g.ExchangeRateBCV != 37 {
		t.Errorf("Global = %+v, want the second save", g)
	}

	var count int64
	if err := repo.db.Model(&settingsEntity.Setting{}).Where(byKey(settingsEntity.KeyGlobal)).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows for %q = %d, want 1", settingsEntity.KeyGlobal, count)
	}
}

// The key column is a reserved word in MySQL, so the lookup condition
// must go through the clause builder and come out dialect-quoted.
func TestSettings_KeyColumnQuoted(t *testing.T) {
	repo := testRepo(t)

	sql := repo.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []settingsEntity.Setting
		return tx.Model(&settingsEntity.Setting{}).Where(byKey(settingsEntity.KeyGlobal)).Find(&rows)
	})
	if !strings.Contains(sql, "`key`") {
		t.Errorf("key column not quoted in: %s", sql)
	}
	if strings.Contains(sql, "WHERE key ") {
		t.Errorf("raw key column survives in: %s", sql)
	}
}
