package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"conputodo.GO/core/auth"
	"conputodo.GO/core/cache"
	catalogEntity "conputodo.GO/model/entity/catalog"
	catalogService "conputodo.GO/service/catalog"
)

// The package keeps one repository singleton per process, so all tests
// here share a single DB and server.
var (
	setupOnce sync.Once
	testSrv   *echo.Echo
	testDB    *gorm.DB
	setupErr  error
)

func testServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	setupOnce.Do(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		if err != nil {
			setupErr = err
			return
		}
		if err := db.AutoMigrate(&catalogEntity.Product{}); err != nil {
			setupErr = err
			return
		}
		e := echo.New()
		g := e.Group("/api")
		g.Use(auth.Middleware(db))
		RegisterCatalogRoutes(g, db)
		testSrv, testDB = e, db
	})
	if setupErr != nil {
		t.Fatalf("setup: %v", setupErr)
	}
	return testSrv, testDB
}

type listResponse struct {
	Count int `json:"count"`
	Items []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"items"`
}

func listProducts(t *testing.T, e *echo.Echo, target, user, pass string) listResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, body = %s", target, rec.Code, rec.Body.String())
	}
	var out listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

// Operators send credentials on every request; the listing must
// authenticate them and serve the back-office view, while anonymous
// traffic keeps getting only purchasable products.
func TestListing_OperatorSeesDraftsAndTrash(t *testing.T) {
	e, db := testServer(t)
	t.Setenv("API_USER", "admin")
	t.Setenv("API_PASS", "secret")

	for _, p := range []catalogEntity.Product{
		{ID: "monitor-24", Title: "Monitor 24", Slug: "monitor-24", Status: catalogEntity.StatusPublished, PriceUSD: 120, Stock: 3, InStock: true, Version: 1},
		{ID: "parlante-bt", Title: "Parlante BT", Slug: "parlante-bt", Status: catalogEntity.StatusDraft, PriceUSD: 25, Version: 1},
		{ID: "cable-usb", Title: "Cable USB", Slug: "cable-usb", Status: catalogEntity.StatusTrash, PriceUSD: 2, Version: 1},
	} {
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed %s: %v", p.ID, err)
		}
	}

	anon := listProducts(t, e, "/api/catalog", "", "")
	if anon.Count != 1 || anon.Items[0].ID != "monitor-24" {
		t.Errorf("anonymous listing = %+v, want only the published product", anon)
	}

	drafts := listProducts(t, e, "/api/catalog?status=draft", "admin", "secret")
	if drafts.Count != 1 || drafts.Items[0].ID != "parlante-bt" {
		t.Errorf("draft listing = %+v, want parlante-bt", drafts)
	}

	trash := listProducts(t, e, "/api/catalog?status=trash", "admin", "secret")
	if trash.Count != 1 || trash.Items[0].ID != "cable-usb" {
		t.Errorf("trash listing = %+v, want cable-usb", trash)
	}

	// No status filter still hides trash from the back-office default view.
	all := listProducts(t, e, "/api/catalog", "admin", "secret")
	if all.Count != 2 {
		t.Errorf("operator default listing count = %d, want 2", all.Count)
	}
}

func TestListing_BadCredentialsRejected(t *testing.T) {
	e, _ := testServer(t)
	t.Setenv("API_USER", "admin")
	t.Setenv("API_PASS", "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	req.SetBasicAuth("admin", "wrong")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestFeed_CacheHitAndInvalidation(t *testing.T) {
	e, _ := testServer(t)

	payload := []byte(`[{"id":"monitor-24"}]`)
	cache.GetInstance().Set(catalogService.FeedCacheKey, payload, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/feed", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("feed status = %d", rec.Code)
	}
	if rec.Body.String() != string(payload) {
		t.Errorf("feed body = %s, want the cached payload", rec.Body.String())
	}

	invalidateFeed()
	if _, ok := cache.GetInstance().Get(catalogService.FeedCacheKey); ok {
		t.Error("feed key still cached after invalidation")
	}

	// With the cache cold the endpoint serves the DB view.
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog/feed", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("feed fallback status = %d", rec.Code)
	}
	if rec.Body.String() == string(payload) {
		t.Error("feed fallback still serves the stale payload")
	}
}
