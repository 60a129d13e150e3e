package catalog

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	catalogEntity "conputodo.GO/model/entity/catalog"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&catalogEntity.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testRepo(t *testing.T) (*ProductRepository, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	repo, err := NewProductRepository(db)
	if err != nil {
		t.Fatalf("NewProductRepository: %v", err)
	}
	return repo, db
}

func seed(t *testing.T, repo *ProductRepository, id, status string, stock int64) {
	t.Helper()
	p := &catalogEntity.Product{ID: id, Title: id, Slug: id, Status: status, Stock: stock, InStock: stock > 0, Version: 1}
	if err := repo.Create(p); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestActive_ExcludesUnsellable(t *testing.T) {
	repo, _ := testRepo(t)
	seed(t, repo, "vendible", catalogEntity.StatusPublished, 5)
	seed(t, repo, "agotado", catalogEntity.StatusPublished, 0)
	seed(t, repo, "borrador", catalogEntity.StatusDraft, 5)
	seed(t, repo, "oculto", catalogEntity.StatusHidden, 5)

	active, err := repo.Active(10, 0)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if len(active) != 1 || active[0].ID != "vendible" {
		t.Errorf("Active = %v, want only vendible", ids(active))
	}
}

func TestList_DefaultHidesTrash(t *testing.T) {
	repo, _ := testRepo(t)
	seed(t, repo, "uno", catalogEntity.StatusPublished, 1)
	seed(t, repo, "dos", catalogEntity.StatusDraft, 0)
	seed(t, repo, "tres", catalogEntity.StatusTrash, 0)

	all, err := repo.List("", 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List(\"\") = %v, want 2 rows without trash", ids(all))
	}

	trashed, err := repo.List(catalogEntity.StatusTrash, 10, 0)
	if err != nil {
		t.Fatalf("List trash: %v", err)
	}
	if len(trashed) != 1 || trashed[0].ID != "tres" {
		t.Errorf("List(trash) = %v, want [tres]", ids(trashed))
	}
}

func TestConditionalUpdate_VersionSemantics(t *testing.T) {
	repo, _ := testRepo(t)
	seed(t, repo, "gpu", catalogEntity.StatusPublished, 3)

	if err := repo.ConditionalUpdate("gpu", 1, map[string]interface{}{"price_usd": 100.0}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	p, err := repo.ByID("gpu")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if p.Version != 2 || p.PriceUSD != 100.0 {
		t.Errorf("after update: version=%d price=%v, want 2/100", p.Version, p.PriceUSD)
	}

	err = repo.ConditionalUpdate("gpu", 1, map[string]interface{}{"price_usd": 90.0})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("stale update err = %v, want ErrConflict", err)
	}

	err = repo.ConditionalUpdate("missing", 1, map[string]interface{}{"price_usd": 1.0})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing row err = %v, want ErrRecordNotFound", err)
	}
}

func TestQuickUpdatePrice_BumpsVersion(t *testing.T) {
	repo, _ := testRepo(t)
	seed(t, repo, "ssd", catalogEntity.StatusPublished, 2)

	if err := repo.QuickUpdatePrice("ssd", 59.99); err != nil {
		t.Fatalf("QuickUpdatePrice: %v", err)
	}
	p, _ := repo.ByID("ssd")
	if p.PriceUSD != 59.99 || p.Version != 2 {
		t.Errorf("price=%v version=%d, want 59.99/2", p.PriceUSD, p.Version)
	}
}

func TestTrashLifecycle(t *testing.T) {
	repo, _ := testRepo(t)
	seed(t, repo, "case", catalogEntity.StatusPublished, 1)

	// Permanent delete outside trash is refused.
	if err := repo.DeletePermanently("case"); err == nil {
		t.Fatal("DeletePermanently outside trash should fail")
	}

	if err := repo.SetStatus("case", catalogEntity.StatusTrash); err != nil {
		t.Fatalf("SetStatus trash: %v", err)
	}
	if err := repo.Restore("case"); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	p, _ := repo.ByID("case")
	if p.Status != catalogEntity.StatusDraft {
		t.Errorf("restored status = %q, want draft", p.Status)
	}

	if err := repo.SetStatus("case", catalogEntity.StatusTrash); err != nil {
		t.Fatalf("re-trash: %v", err)
	}
	if err := repo.DeletePermanently("case"); err != nil {
		t.Fatalf("DeletePermanently: %v", err)
	}
	if _, err := repo.ByID("case"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("ByID after delete err = %v, want ErrRecordNotFound", err)
	}
}

func TestSetStatus_RejectsUnknown(t *testing.T) {
	repo, _ := testRepo(t)
	seed(t, repo, "kb", catalogEntity.StatusPublished, 1)
	if err := repo.SetStatus("kb", "archived"); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestByIDs_Batches(t *testing.T) {
	repo, _ := testRepo(t)
	want := []string{"a1", "b2", "c3", "d4", "e5"}
	for _, id := range want {
		seed(t, repo, id, catalogEntity.StatusPublished, 1)
	}
	got, err := repo.ByIDs(append(want, "missing"), 2)
	if err != nil {
		t.Fatalf("ByIDs: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("ByIDs = %d rows, want 5", len(got))
	}
	if _, ok := got["missing"]; ok {
		t.Error("missing id should not be in the result")
	}
}

func TestCountByStatus(t *testing.T) {
	repo, _ := testRepo(t)
	seed(t, repo, "p1", catalogEntity.StatusPublished, 1)
	seed(t, repo, "p2", catalogEntity.StatusPublished, 0)
	seed(t, repo, "d1", catalogEntity.StatusDraft, 0)

	counts, err := repo.CountByStatus()
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[catalogEntity.StatusPublished] != 2 || counts[catalogEntity.StatusDraft] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func ids(ps []catalogEntity.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
