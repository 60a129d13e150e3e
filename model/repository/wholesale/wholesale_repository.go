package wholesale

import (
	"gorm.io/gorm"

	wholesaleEntity "conputodo.GO/model/entity/wholesale"
)

type WholesaleRepository struct {
	db *gorm.DB
}

func NewWholesaleRepository(db *gorm.DB) *WholesaleRepository {
	return &WholesaleRepository{db: db}
}

// Create stores a contact-form submission.
func (r *WholesaleRepository) Create(req *wholesaleEntity.Request) error {
	return r.db.Create(req).Error
}

// List returns submissions, newest first.
func (r *WholesaleRepository) List(limit, offset int) ([]wholesaleEntity.Request, error) {
	var reqs []wholesaleEntity.Request
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reqs).Error
	return reqs, err
}
