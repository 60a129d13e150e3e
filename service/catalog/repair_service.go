package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogEntity "conputodo.GO/model/entity/catalog"
	jobsEntity "conputodo.GO/model/entity/jobs"
)

// RepairJobName keys the repair pass checkpoint row.
const RepairJobName = "inventory_repair"

// RepairOptions configures a repair run.
type RepairOptions struct {
	BatchSize int
	// Resume continues from the last committed checkpoint instead of
	// rescanning from the start.
	Resume bool
}

// RepairResult holds counters from a repair run.
type RepairResult struct {
	Scanned   int           `json:"scanned"`
	Fixed     int           `json:"fixed"`
	Batches   int           `json:"batches"`
	Warnings  []string      `json:"warnings,omitempty"`
	TotalTime time.Duration `json:"-"`
}

// RepairInventory scans every product row and applies minimal corrective
// updates to structurally invalid records: missing status, textual or
// absent stock, variants not stored as a list, missing slug. Rows with
// nothing to fix are skipped silently. Each batch commits in its own
// transaction together with a cursor checkpoint, so a crashed run can
// resume. Running the pass twice in a row fixes zero rows the second
// time. It does not re-derive root price/stock from variants; that is
// the write path's job.
func RepairInventory(db *gorm.DB, opts RepairOptions) (*RepairResult, error) {
	start := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	cursor := ""
	if opts.Resume {
		if cp, err := loadCheckpoint(db); err == nil && cp != nil && !cp.Done {
			cursor = cp.Cursor
		}
	}

	result := &RepairResult{}
	for {
		var rows []map[string]interface{}
		err := db.Table("products").
			Select("id", "title", "slug", "status", "stock", "in_stock", "variants").
			Where("id > ?", cursor).
			Order("id").
			Limit(opts.BatchSize).
			Find(&rows).Error
		if err != nil {
			return result, fmt.Errorf("scan products after %q: %w", cursor, err)
		}
		if len(rows) == 0 {
			break
		}
		result.Scanned += len(rows)
		result.Batches++
		cursor = stringField(rows[len(rows)-1], "id")

		type fix struct {
			id      string
			updates map[string]interface{}
		}
		var fixes []fix
		for _, row := range rows {
			id := stringField(row, "id")
			if id == "" {
				result.Warnings = append(result.Warnings, "row without id, skipping")
				continue
			}
			updates := repairUpdates(row)
			if len(updates) > 0 {
				fixes = append(fixes, fix{id: id, updates: updates})
			}
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			for _, f := range fixes {
				f.updates["version"] = gorm.Expr("version + 1")
				if err := tx.Table("products").Where("id = ?", f.id).Updates(f.updates).Error; err != nil {
					return err
				}
			}
			return saveCheckpoint(tx, cursor, result.Batches, false)
		})
		if err != nil {
			return result, fmt.Errorf("repair batch ending at %q: %w", cursor, err)
		}
		result.Fixed += len(fixes)
	}

	if err := saveCheckpoint(db, cursor, result.Batches, true); err != nil {
		return result, fmt.Errorf("finalize checkpoint: %w", err)
	}
	result.TotalTime = time.Since(start)
	return result, nil
}

// repairUpdates computes the corrective column set for one raw row.
// Empty map means the row is structurally sound.
func repairUpdates(row map[string]interface{}) map[string]interface{} {
	updates := make(map[string]interface{})

	if stringField(row, "status") == "" {
		updates["status"] = catalogEntity.StatusPublished
	}

	switch v := row["stock"].(type) {
	case nil:
		if boolField(row, "in_stock") {
			updates["stock"] = UnlimitedStock
		}
	case int, int32, int64, uint, uint32, uint64, float64, float32:
		// proper numeric stock, leave it alone
	default:
		updates["stock"] = weakInt(v)
	}

	if !variantsWellFormed(row["variants"]) {
		updates["variants"] = "[]"
	}

	if stringField(row, "slug") == "" {
		title := stringField(row, "title")
		if title != "" {
			updates["slug"] = Sanitize(title)
		} else {
			updates["slug"] = Sanitize(stringField(row, "id"))
		}
	}
	return updates
}

// weakInt parses stock values stored as text by legacy writers. Parse
// failures fall back to zero.
func weakInt(v interface{}) int64 {
	var out struct {
		Stock int64 `mapstructure:"stock"`
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return 0
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if err := dec.Decode(map[string]interface{}{"stock": v}); err != nil {
		return 0
	}
	return out.Stock
}

// variantsWellFormed accepts only a JSON array (possibly empty) in the
// variants column.
func variantsWellFormed(v interface{}) bool {
	var raw []byte
	switch val := v.(type) {
	case nil:
		return false
	case []byte:
		raw = val
	case string:
		raw = []byte(val)
	default:
		return false
	}
	var list []interface{}
	return json.Unmarshal(raw, &list) == nil
}

func stringField(row map[string]interface{}, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func boolField(row map[string]interface{}, key string) bool {
	var out struct {
		Flag bool `mapstructure:"flag"`
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return false
	}
	v := row[key]
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if v == nil {
		return false
	}
	if err := dec.Decode(map[string]interface{}{"flag": v}); err != nil {
		return false
	}
	return out.Flag
}

func loadCheckpoint(db *gorm.DB) (*jobsEntity.Checkpoint, error) {
	var cp jobsEntity.Checkpoint
	err := db.Where("job = ?", RepairJobName).First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func saveCheckpoint(db *gorm.DB, cursor string, batches int, done bool) error {
	cp := jobsEntity.Checkpoint{
		Job:     RepairJobName,
		Cursor:  cursor,
		Batches: batches,
		Done:    done,
	}
	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "job"}},
		DoUpdates: clause.AssignmentColumns([]string{"cursor", "batches", "done", "updated_at"}),
	}
	return db.Clauses(upsert).Create(&cp).Error
}
