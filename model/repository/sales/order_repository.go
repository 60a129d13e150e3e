package sales

import (
	"fmt"

	"gorm.io/gorm"

	salesEntity "conputodo.GO/model/entity/sales"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create appends a new order. Orders are never edited afterwards except
// for their status.
func (r *OrderRepository) Create(o *salesEntity.Order) error {
	if o.Status == "" {
		o.Status = salesEntity.StatusPending
	}
	return r.db.Create(o).Error
}

// ByID returns one order.
func (r *OrderRepository) ByID(id uint) (*salesEntity.Order, error) {
	var o salesEntity.Order
	if err := r.db.Where("order_id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns orders, optionally filtered by status, newest first.
func (r *OrderRepository) List(status string, limit, offset int) ([]salesEntity.Order, error) {
	q := r.db.Model(&salesEntity.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []salesEntity.Order
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, err
}

// UpdateStatus transitions an order to a known status.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	switch status {
	case salesEntity.StatusPending, salesEntity.StatusCompleted, salesEntity.StatusCancelled:
	default:
		return fmt.Errorf("invalid order status %q", status)
	}
	res := r.db.Model(&salesEntity.Order{}).
		Where("order_id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
