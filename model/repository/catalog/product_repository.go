package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	catalogEntity "conputodo.GO/model/entity/catalog"
)

// ErrConflict is returned by conditional writes when the row's version
// moved underneath the caller. Re-fetch and retry.
var ErrConflict = errors.New("product was modified by another writer")

type ProductRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewProductRepository(db *gorm.DB) (*ProductRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &ProductRepository{db: db, sqlDB: sqlDB}, nil
}

// ByID returns a product by its document id.
func (r *ProductRepository) ByID(id string) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// BySlug returns a product by its URL slug.
func (r *ProductRepository) BySlug(slug string) (*catalogEntity.Product, error) {
	var p catalogEntity.Product
	if err := r.db.Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products filtered by status ("" means any status except
// trash), newest first.
func (r *ProductRepository) List(status string, limit, offset int) ([]catalogEntity.Product, error) {
	q := r.db.Model(&catalogEntity.Product{})
	if status != "" {
		q = q.Where("status = ?", status)
	} else {
		q = q.Where("status <> ?", catalogEntity.StatusTrash)
	}
	var products []catalogEntity.Product
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

// Active returns published products that are purchasable (stock > 0).
// Simple products in stock carry the sentinel stock value, so the one
// numeric filter covers both simple and variable products.
func (r *ProductRepository) Active(limit, offset int) ([]catalogEntity.Product, error) {
	var products []catalogEntity.Product
	err := r.db.
		Where("status = ? AND stock > 0", catalogEntity.StatusPublished).
		Order("is_featured DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	return products, err
}

// Featured returns published featured products.
func (r *ProductRepository) Featured(limit int) ([]catalogEntity.Product, error) {
	var products []catalogEntity.Product
	err := r.db.
		Where("status = ? AND is_featured = ?", catalogEntity.StatusPublished, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// ByIDs fetches products for a set of ids in batched IN queries.
func (r *ProductRepository) ByIDs(ids []string, batchSize int) (map[string]catalogEntity.Product, error) {
	if batchSize <= 0 {
		batchSize = 450
	}
	result := make(map[string]catalogEntity.Product, len(ids))
	for i := 0; i < len(ids); i += batchSize {
		end := i + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		var chunk []catalogEntity.Product
		if err := r.db.Where("id IN ?", ids[i:end]).Find(&chunk).Error; err != nil {
			return nil, err
		}
		for _, p := range chunk {
			result[p.ID] = p
		}
	}
	return result, nil
}

// Create inserts a new product row.
func (r *ProductRepository) Create(p *catalogEntity.Product) error {
	return r.db.Create(p).Error
}

// ConditionalUpdate applies updates to a product only if its version
// still matches expectedVersion, bumping the version in the same write.
// Returns ErrConflict when the row moved.
func (r *ProductRepository) ConditionalUpdate(id string, expectedVersion int64, updates map[string]interface{}) error {
	updates["version"] = gorm.Expr("version + 1")
	res := r.db.Model(&catalogEntity.Product{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		r.db.Model(&catalogEntity.Product{}).Where("id = ?", id).Count(&count)
		if count > 0 {
			return ErrConflict
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}

// QuickUpdatePrice is the quick-edit path: price only, last writer wins,
// version still bumped so full edits detect the change.
func (r *ProductRepository) QuickUpdatePrice(id string, price float64) error {
	res := r.db.Model(&catalogEntity.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"price_usd": price,
			"version":   gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetStatus moves a product to a lifecycle state. Trash is the soft
// delete; the row stays until DeletePermanently.
func (r *ProductRepository) SetStatus(id, status string) error {
	switch status {
	case catalogEntity.StatusPublished, catalogEntity.StatusDraft,
		catalogEntity.StatusHidden, catalogEntity.StatusTrash:
	default:
		return fmt.Errorf("invalid status %q", status)
	}
	res := r.db.Model(&catalogEntity.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  status,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Restore moves a trashed product back to draft.
func (r *ProductRepository) Restore(id string) error {
	res := r.db.Model(&catalogEntity.Product{}).
		Where("id = ? AND status = ?", id, catalogEntity.StatusTrash).
		Updates(map[string]interface{}{
			"status":  catalogEntity.StatusDraft,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePermanently removes a product row for good. Only allowed from
// the trash state.
func (r *ProductRepository) DeletePermanently(id string) error {
	res := r.db.Where("id = ? AND status = ?", id, catalogEntity.StatusTrash).
		Delete(&catalogEntity.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %q not in trash", id)
	}
	return nil
}

// CountByStatus returns row counts per lifecycle state.
func (r *ProductRepository) CountByStatus() (map[string]int64, error) {
	rows, err := r.db.Model(&catalogEntity.Product{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			continue
		}
		counts[status] = n
	}
	return counts, nil
}
