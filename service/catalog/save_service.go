package catalog

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "conputodo.GO/model/entity/catalog"
	catalogRepo "conputodo.GO/model/repository/catalog"
)

// ProductInput is the write-path payload for creating or editing a
// product. Variants non-empty makes the product variable; root price and
// stock are then derived, and the input price field is ignored.
type ProductInput struct {
	Title       string                  `json:"title"`
	Slug        string                  `json:"slug"`
	Category    string                  `json:"category"`
	Brand       string                  `json:"brand"`
	SKU         string                  `json:"sku"`
	Description string                  `json:"description"`
	PriceUSD    float64                 `json:"price_usd"`
	InStock     bool                    `json:"in_stock"`
	Status      string                  `json:"status"`
	IsFeatured  bool                    `json:"is_featured"`
	Tags        []string                `json:"tags"`
	Specs       []catalogEntity.Spec    `json:"specs"`
	Images      catalogEntity.Images    `json:"images"`
	SEO         catalogEntity.SEO       `json:"seo"`
	Variants    []catalogEntity.Variant `json:"variants"`
	// Version is the version the caller last read when editing. Zero
	// skips the conflict check (last writer wins).
	Version int64 `json:"version"`
}

// SaveProduct creates or updates a product. existingID empty means
// create: the id derives from the slug override or the title, and a
// collision overwrites (last writer wins). Edits are conditional on the
// version the caller read; a concurrent change surfaces as ErrConflict.
// Returns the fully resolved stored record.
func SaveProduct(db *gorm.DB, in ProductInput, existingID string) (*catalogEntity.Product, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	status := in.Status
	if status == "" {
		status = catalogEntity.StatusPublished
	}
	switch status {
	case catalogEntity.StatusPublished, catalogEntity.StatusDraft,
		catalogEntity.StatusHidden, catalogEntity.StatusTrash:
	default:
		return nil, fmt.Errorf("invalid status %q", status)
	}

	slug := Sanitize(in.Slug)
	if slug == "" {
		slug = Sanitize(in.Title)
	}
	if slug == "" {
		return nil, fmt.Errorf("title %q yields an empty slug", in.Title)
	}

	price := in.PriceUSD
	var stock int64
	variants := in.Variants
	if len(variants) > 0 {
		for i := range variants {
			if variants[i].Name == "" {
				return nil, fmt.Errorf("variant %d: name is required", i)
			}
			if variants[i].ID == "" {
				variants[i].ID = uuid.NewString()
			}
		}
		totals := AggregateVariants(variants)
		price = totals.MinPrice
		stock = totals.TotalStock
	} else {
		stock = FromFlag(in.InStock).StockValue()
	}

	p := catalogEntity.Product{
		Title:       in.Title,
		Slug:        slug,
		Category:    in.Category,
		Brand:       in.Brand,
		SKU:         in.SKU,
		Description: in.Description,
		PriceUSD:    price,
		Stock:       stock,
		InStock:     in.InStock,
		Status:      status,
		IsFeatured:  in.IsFeatured,
	}
	p.SetTags(in.Tags)
	p.SetSpecs(in.Specs)
	p.SetImages(in.Images)
	p.SetSEO(in.SEO)
	if err := p.SetVariants(variants); err != nil {
		return nil, err
	}

	repo, err := catalogRepo.NewProductRepository(db)
	if err != nil {
		return nil, err
	}

	if existingID == "" {
		p.ID = slug
		p.Version = 1
		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "slug", "category", "brand", "sku", "description",
				"price_usd", "stock", "in_stock", "status", "is_featured",
				"tags", "specs", "images", "variants", "seo", "updated_at",
			}),
		}
		if err := db.Clauses(upsert).Create(&p).Error; err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
	} else {
		current, err := repo.ByID(existingID)
		if err != nil {
			return nil, err
		}
		expected := in.Version
		if expected == 0 {
			expected = current.Version
		}
		updates := map[string]interface{}{
			"title":       p.Title,
			"slug":        p.Slug,
			"category":    p.Category,
			"brand":       p.Brand,
			"sku":         p.SKU,
			"description": p.Description,
			"price_usd":   p.PriceUSD,
			"stock":       p.Stock,
			"in_stock":    p.InStock,
			"status":      p.Status,
			"is_featured": p.IsFeatured,
			"tags":        p.Tags,
			"specs":       p.Specs,
			"images":      p.Images,
			"variants":    p.Variants,
			"seo":         p.SEO,
			"updated_at":  time.Now(),
		}
		if err := repo.ConditionalUpdate(existingID, expected, updates); err != nil {
			return nil, err
		}
		p.ID = existingID
	}

	stored, err := repo.ByID(p.ID)
	if err != nil {
		return nil, err
	}

	// Search indexing is best-effort; the catalog is the source of truth.
	if svc := GetSearchService(); svc.Enabled() {
		if err := svc.IndexProduct(context.Background(), stored); err != nil {
			log.Printf("search index for %s failed: %v", stored.ID, err)
		}
	}
	return stored, nil
}
