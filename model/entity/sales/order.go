package sales

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Order status values. Kept in Spanish because they are displayed
// verbatim in the back office and stored as-is.
const (
	StatusPending   = "pendiente"
	StatusCompleted = "completado"
	StatusCancelled = "cancelado"
)

// OrderItem is a snapshot of one cart line at checkout time. Title and
// price are frozen here; later catalog edits never touch past orders.
type OrderItem struct {
	ProductID string  `json:"id"`
	Title     string  `json:"title"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

// Order captures a checkout event. Append-only except for Status.
type Order struct {
	OrderID         uint           `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	ClientName      string         `gorm:"column:client_name;type:varchar(128);not null" json:"client_name"`
	ClientPhone     string         `gorm:"column:client_phone;type:varchar(32)" json:"client_phone"`
	ClientAddress   string         `gorm:"column:client_address;type:varchar(255)" json:"client_address"`
	Items           datatypes.JSON `gorm:"column:items" json:"items"`
	TotalUSD        float64        `gorm:"column:total_usd;type:decimal(12,2);not null;default:0" json:"total_usd"`
	TotalVES        float64        `gorm:"column:total_ves;type:decimal(14,2);not null;default:0" json:"total_ves"`
	ExchangeRate    float64        `gorm:"column:exchange_rate;type:decimal(12,4);not null;default:0" json:"exchange_rate"`
	ExchangeRateBCV float64        `gorm:"column:exchange_rate_bcv;type:decimal(12,4);not null;default:0" json:"exchange_rate_bcv"`
	Status          string         `gorm:"column:status;type:varchar(16);index" json:"status"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// ItemList decodes the items JSON column.
func (o *Order) ItemList() ([]OrderItem, error) {
	if len(o.Items) == 0 {
		return nil, nil
	}
	var items []OrderItem
	if err := json.Unmarshal(o.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetItems encodes items into the items JSON column.
func (o *Order) SetItems(items []OrderItem) error {
	if items == nil {
		items = []OrderItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	o.Items = datatypes.JSON(raw)
	return nil
}
