package wholesale

import "time"

// Request is a wholesale contact-form submission.
type Request struct {
	RequestID uint      `gorm:"column:request_id;primaryKey;autoIncrement" json:"request_id"`
	Name      string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Company   string    `gorm:"column:company;type:varchar(128)" json:"company"`
	Email     string    `gorm:"column:email;type:varchar(128)" json:"email"`
	Phone     string    `gorm:"column:phone;type:varchar(32)" json:"phone"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Request) TableName() string {
	return "wholesale_requests"
}
