package catalog

import (
	"strings"
	"testing"

	catalogEntity "conputodo.GO/model/entity/catalog"
)

func TestParseCatalogCSV_TemplateRoundTrip(t *testing.T) {
	res, err := ParseCatalogCSV(strings.NewReader(BuildTemplate()))
	if err != nil {
		t.Fatalf("ParseCatalogCSV: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("template should parse clean, got errors: %v", res.Errors)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	p := res.Records[0]
	if p.ID != "laptop-hp-15" {
		t.Errorf("ID = %q, want laptop-hp-15", p.ID)
	}
	if p.Slug != p.ID {
		t.Errorf("Slug = %q, want same as ID", p.Slug)
	}
	if p.PriceUSD != 499.99 {
		t.Errorf("PriceUSD = %v, want 499.99", p.PriceUSD)
	}
	if !p.InStock || p.Stock != UnlimitedStock {
		t.Errorf("in_stock=si should map to stock sentinel, got InStock=%v Stock=%d", p.InStock, p.Stock)
	}
	if p.Status != catalogEntity.StatusPublished {
		t.Errorf("Status = %q, want %q", p.Status, catalogEntity.StatusPublished)
	}
	tags := p.TagList()
	if len(tags) != 2 || tags[0] != "oferta" || tags[1] != "nuevo" {
		t.Errorf("tags = %v, want [oferta nuevo]", tags)
	}
}

func TestParseCatalogCSV_MissingPriceHeader(t *testing.T) {
	csv := "title,category\nMouse,Accesorios\n"
	_, err := ParseCatalogCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("want fatal error for missing price_usd column")
	}
}

func TestParseCatalogCSV_MissingTitleHeader(t *testing.T) {
	csv := "price_usd,category\n10,Accesorios\n"
	_, err := ParseCatalogCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("want fatal error for missing title column")
	}
}

func TestParseCatalogCSV_MixedRows(t *testing.T) {
	csv := "title,price_usd,in_stock\n" +
		"Teclado Mecánico,35.00,si\n" +
		",10.00,si\n" +
		"Mouse Gamer,not-a-price,si\n"
	res, err := ParseCatalogCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCatalogCSV: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(res.Records))
	}
	if len(res.Errors) != 2 {
		t.Fatalf("errors = %d, want 2: %v", len(res.Errors), res.Errors)
	}
	if res.Errors[0].Line != 3 || res.Errors[1].Line != 4 {
		t.Errorf("error lines = %d,%d, want 3,4", res.Errors[0].Line, res.Errors[1].Line)
	}
}

func TestParseCatalogCSV_QuotedFields(t *testing.T) {
	csv := "title,price_usd,description\n" +
		`"Laptop, 15 pulgadas",499.99,"Incluye ""mouse"" de regalo"` + "\n"
	res, err := ParseCatalogCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCatalogCSV: %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	p := res.Records[0]
	if p.Title != "Laptop, 15 pulgadas" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Description != `Incluye "mouse" de regalo` {
		t.Errorf("Description = %q", p.Description)
	}
}

func TestParseCatalogCSV_BlankRowsSkipped(t *testing.T) {
	csv := "title,price_usd\nMonitor,120\n\n  , \nTeclado,30\n"
	res, err := ParseCatalogCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCatalogCSV: %v", err)
	}
	if len(res.Records) != 2 || len(res.Errors) != 0 {
		t.Fatalf("records=%d errors=%v, want 2 records and no errors", len(res.Records), res.Errors)
	}
}

func TestParseCatalogCSV_InStockValues(t *testing.T) {
	cases := []struct {
		cell string
		want bool
	}{
		{"si", true},
		{"SI", true},
		{"Si", true},
		{"yes", true},
		{"Yes", true},
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"no", false},
		{"", false},
		{"2", false},
		{"0", false},
		{"maybe", false},
	}
	for _, tc := range cases {
		csv := "title,price_usd,in_stock\nAudífonos,19.99," + tc.cell + "\n"
		res, err := ParseCatalogCSV(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("in_stock=%q: %v", tc.cell, err)
		}
		if len(res.Records) != 1 {
			t.Fatalf("in_stock=%q: records = %d, want 1", tc.cell, len(res.Records))
		}
		p := res.Records[0]
		if p.InStock != tc.want {
			t.Errorf("in_stock=%q: InStock = %v, want %v", tc.cell, p.InStock, tc.want)
		}
		wantStock := int64(0)
		if tc.want {
			wantStock = UnlimitedStock
		}
		if p.Stock != wantStock {
			t.Errorf("in_stock=%q: Stock = %d, want %d", tc.cell, p.Stock, wantStock)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := splitTags(" oferta | nuevo ||gamer ")
	want := []string{"oferta", "nuevo", "gamer"}
	if len(got) != len(want) {
		t.Fatalf("splitTags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitTags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
