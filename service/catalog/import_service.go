package catalog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	catalogEntity "conputodo.GO/model/entity/catalog"
)

// DefaultBatchSize leaves headroom under the store's 500-operation batch
// cap.
const DefaultBatchSize = 450

// ImportMode pins down what happens when a CSV row hits an existing
// product id.
type ImportMode int

const (
	// ModePatch updates only the CSV-covered columns; images, variants
	// and specs on the stored record survive.
	ModePatch ImportMode = iota
	// ModeOverwrite replaces the whole record with the CSV-implied
	// defaults, resetting images, variants and specs.
	ModeOverwrite
)

// ParseImportMode maps the user-facing mode names.
func ParseImportMode(s string) (ImportMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "patch":
		return ModePatch, nil
	case "overwrite":
		return ModeOverwrite, nil
	default:
		return ModePatch, fmt.Errorf("unknown import mode %q (want patch or overwrite)", s)
	}
}

// ImportOptions configures a catalog import run.
type ImportOptions struct {
	BatchSize int
	Mode      ImportMode
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows   int           `json:"total_rows"`
	Created     int           `json:"created"`
	Updated     int           `json:"updated"`
	Skipped     int           `json:"skipped"`
	Warnings    []string      `json:"warnings,omitempty"`
	ProcessTime time.Duration `json:"-"`
	DBTime      time.Duration `json:"-"`
	TotalTime   time.Duration `json:"-"`
}

// ImportCatalog reads CSV data from r and upserts products keyed by the
// title-derived id. Individual row failures are recorded as warnings and
// never abort the run; re-running the same file reproduces the same
// final state except for updated_at.
func ImportCatalog(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	parsed, err := ParseCatalogCSV(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		TotalRows: len(parsed.Records) + len(parsed.Errors),
		Skipped:   len(parsed.Errors),
	}
	for _, re := range parsed.Errors {
		result.Warnings = append(result.Warnings, re.String())
	}

	startProcess := time.Now()

	ids := make([]string, 0, len(parsed.Records))
	for _, rec := range parsed.Records {
		ids = append(ids, rec.ID)
	}
	existing, err := lookupIDs(db, ids, opts.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("lookup existing products: %w", err)
	}

	var toCreate, toUpdate []catalogEntity.Product
	seen := make(map[string]bool, len(parsed.Records))
	for _, rec := range parsed.Records {
		// Duplicate ids within one file: last row wins, matching the
		// id collision policy.
		if seen[rec.ID] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("id=%s: duplicate row, keeping the later one", rec.ID))
			replaceRecord(&toCreate, rec)
			replaceRecord(&toUpdate, rec)
			continue
		}
		seen[rec.ID] = true
		if existing[rec.ID] {
			toUpdate = append(toUpdate, rec)
		} else {
			toCreate = append(toCreate, rec)
		}
	}
	result.ProcessTime = time.Since(startProcess)

	startDB := time.Now()
	if len(toCreate) > 0 {
		if err := db.CreateInBatches(&toCreate, opts.BatchSize).Error; err != nil {
			return nil, fmt.Errorf("insert new products: %w", err)
		}
		result.Created = len(toCreate)
	}
	if len(toUpdate) > 0 {
		updated, err := applyUpdates(db, toUpdate, opts)
		if err != nil {
			return nil, err
		}
		result.Updated = updated
	}
	result.DBTime = time.Since(startDB)
	result.TotalTime = time.Since(startTotal)
	return result, nil
}

func replaceRecord(recs *[]catalogEntity.Product, rec catalogEntity.Product) {
	for i := range *recs {
		if (*recs)[i].ID == rec.ID {
			(*recs)[i] = rec
			return
		}
	}
}

// lookupIDs batch-queries which of the ids already have a row.
func lookupIDs(db *gorm.DB, ids []string, batchSize int) (map[string]bool, error) {
	existing := make(map[string]bool, len(ids))
	for i := 0; i < len(ids); i += batchSize {
		end := i + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		var chunk []string
		if err := db.Model(&catalogEntity.Product{}).
			Where("id IN ?", ids[i:end]).
			Pluck("id", &chunk).Error; err != nil {
			return nil, err
		}
		for _, id := range chunk {
			existing[id] = true
		}
	}
	return existing, nil
}

// applyUpdates writes existing-product rows batch by batch, one
// transaction per batch. Imports bypass the version check (bulk
// reconciliation is last-writer-wins by contract) but still bump the
// version so concurrent editors notice.
func applyUpdates(db *gorm.DB, recs []catalogEntity.Product, opts ImportOptions) (int, error) {
	updated := 0
	for i := 0; i < len(recs); i += opts.BatchSize {
		end := i + opts.BatchSize
		if end > len(recs) {
			end = len(recs)
		}
		batch := recs[i:end]
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, rec := range batch {
				updates := updateSet(rec, opts.Mode)
				res := tx.Model(&catalogEntity.Product{}).
					Where("id = ?", rec.ID).
					Updates(updates)
				if res.Error != nil {
					return res.Error
				}
				updated += int(res.RowsAffected)
			}
			return nil
		})
		if err != nil {
			return updated, fmt.Errorf("update batch: %w", err)
		}
	}
	return updated, nil
}

func updateSet(rec catalogEntity.Product, mode ImportMode) map[string]interface{} {
	updates := map[string]interface{}{
		"title":       rec.Title,
		"slug":        rec.Slug,
		"category":    rec.Category,
		"brand":       rec.Brand,
		"sku":         rec.SKU,
		"description": rec.Description,
		"price_usd":   rec.PriceUSD,
		"stock":       rec.Stock,
		"in_stock":    rec.InStock,
		"tags":        rec.Tags,
		"status":      rec.Status,
		"updated_at":  rec.UpdatedAt,
		"version":     gorm.Expr("version + 1"),
	}
	if mode == ModeOverwrite {
		updates["images"] = rec.Images
		updates["variants"] = rec.Variants
		updates["specs"] = rec.Specs
		updates["seo"] = rec.SEO
		updates["is_featured"] = rec.IsFeatured
	}
	return updates
}
