package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem captures the snapshot of one cart line inside an order, bound to
// the class it is destined for. Stage timestamps advance independently of the
// parent order's status.
type OrderItem struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	OrderID      uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	RecipeID     uuid.UUID  `gorm:"column:recipe_id;type:uuid;not null"`
	RecipeName   string     `gorm:"column:recipe_name;not null"`
	ClassID      uuid.UUID  `gorm:"column:class_id;type:uuid;not null;index"`
	ClassName    string     `gorm:"column:class_name;not null"`
	SchoolID     uuid.UUID  `gorm:"column:school_id;type:uuid;not null"`
	Quantity     int        `gorm:"column:quantity;not null"`
	Notes        string     `gorm:"column:notes"`
	DeliveryDate *time.Time `gorm:"column:delivery_date"`
	ImageURL     *string    `gorm:"column:image_url"`
	ProcessedAt  *time.Time `gorm:"column:processed_at"`
	ShippedAt    *time.Time `gorm:"column:shipped_at"`
	DeliveredAt  *time.Time `gorm:"column:delivered_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
