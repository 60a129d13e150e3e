package sales

import (
	"math"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"conputodo.GO/config"
	catalogEntity "conputodo.GO/model/entity/catalog"
	salesEntity "conputodo.GO/model/entity/sales"
	settingsEntity "conputodo.GO/model/entity/settings"
	settingsRepo "conputodo.GO/model/repository/settings"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&catalogEntity.Product{}, &salesEntity.Order{}, &settingsEntity.Setting{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, p := range []catalogEntity.Product{
		{ID: "laptop-hp-15", Title: "Laptop HP 15", Slug: "laptop-hp-15", Status: catalogEntity.StatusPublished, PriceUSD: 499.99, Stock: 5, InStock: true, Version: 1},
		{ID: "mouse-gamer", Title: "Mouse Gamer", Slug: "mouse-gamer", Status: catalogEntity.StatusPublished, PriceUSD: 15.50, Stock: 10, InStock: true, Version: 1},
	} {
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed %s: %v", p.ID, err)
		}
	}
	if err := settingsRepo.NewSettingsRepository(db).SaveGlobal(settingsEntity.Global{ExchangeRate: 40, ExchangeRateBCV: 36.5}); err != nil {
		t.Fatalf("seed rates: %v", err)
	}
}

func TestCheckout_SnapshotsOrder(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	config.LoadAppConfig()

	res, err := Checkout(db, CheckoutInput{
		ClientName:  "María Pérez",
		ClientPhone: "0412-1234567",
		Items: []CheckoutItem{
			{ProductID: "laptop-hp-15", Qty: 1},
			{ProductID: "mouse-gamer", Qty: 2},
		},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	o := res.Order
	if o.OrderID == 0 {
		t.Error("order id not assigned")
	}
	if o.Status != salesEntity.StatusPending {
		t.Errorf("status = %q, want %q", o.Status, salesEntity.StatusPending)
	}
	wantUSD := 499.99 + 2*15.50
	if math.Abs(o.TotalUSD-wantUSD) > 0.001 {
		t.Errorf("TotalUSD = %v, want %v", o.TotalUSD, wantUSD)
	}
	if o.ExchangeRate != 40 || o.ExchangeRateBCV != 36.5 {
		t.Errorf("rates = %v/%v, want 40/36.5", o.ExchangeRate, o.ExchangeRateBCV)
	}
	if math.Abs(o.TotalVES-wantUSD*40) > 0.01 {
		t.Errorf("TotalVES = %v, want %v", o.TotalVES, wantUSD*40)
	}

	items, err := o.ItemList()
	if err != nil {
		t.Fatalf("ItemList: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Title != "Laptop HP 15" || items[0].Price != 499.99 || items[0].Qty != 1 {
		t.Errorf("item 0 snapshot = %+v", items[0])
	}

	// The snapshot survives later catalog changes.
	if err := db.Model(&catalogEntity.Product{}).Where("id = ?", "laptop-hp-15").Update("price_usd", 1.00).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}
	var stored salesEntity.Order
	if err := db.First(&stored, o.OrderID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	again, _ := stored.ItemList()
	if again[0].Price != 499.99 {
		t.Errorf("snapshot price = %v, want frozen 499.99", again[0].Price)
	}
}

func TestCheckout_WhatsAppHandoff(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	t.Setenv("WHATSAPP_NUMBER", "584121234567")
	// AppConfig is load-once; set the field directly for the test.
	config.LoadAppConfig()
	old := config.AppConfig.WhatsAppNumber
	config.AppConfig.WhatsAppNumber = "584121234567"
	defer func() { config.AppConfig.WhatsAppNumber = old }()

	res, err := Checkout(db, CheckoutInput{
		ClientName: "Pedro",
		Items:      []CheckoutItem{{ProductID: "mouse-gamer", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !strings.HasPrefix(res.WhatsAppURL, "https://wa.me/584121234567?text=") {
		t.Errorf("WhatsAppURL = %q", res.WhatsAppURL)
	}
	if !strings.Contains(res.WhatsAppURL, "Pedro") {
		t.Errorf("URL should carry the client name: %q", res.WhatsAppURL)
	}
}

func TestCheckout_Validation(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	config.LoadAppConfig()

	if _, err := Checkout(db, CheckoutInput{Items: []CheckoutItem{{ProductID: "mouse-gamer", Qty: 1}}}); err == nil {
		t.Error("missing client name should error")
	}
	if _, err := Checkout(db, CheckoutInput{ClientName: "Ana"}); err == nil {
		t.Error("empty cart should error")
	}
	if _, err := Checkout(db, CheckoutInput{ClientName: "Ana", Items: []CheckoutItem{{ProductID: "mouse-gamer", Qty: 0}}}); err == nil {
		t.Error("zero quantity should error")
	}
	if _, err := Checkout(db, CheckoutInput{ClientName: "Ana", Items: []CheckoutItem{{ProductID: "no-existe", Qty: 1}}}); err == nil {
		t.Error("unknown product should error")
	}
}
