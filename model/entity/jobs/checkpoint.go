package jobs

import "time"

// Checkpoint records how far a batch job got. One row per job name; the
// cursor is the last product id whose batch committed, so a crashed run
// can resume instead of silently leaving partial state.
type Checkpoint struct {
	Job       string    `gorm:"column:job;primaryKey;type:varchar(64)" json:"job"`
	Cursor    string    `gorm:"column:cursor;type:varchar(128)" json:"cursor"`
	Batches   int       `gorm:"column:batches;not null;default:0" json:"batches"`
	Done      bool      `gorm:"column:done;default:false" json:"done"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Checkpoint) TableName() string {
	return "job_checkpoints"
}
