package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/classcooks/classcooks-backend/pkg/enums"
)

// ClassOrder is the denormalized dashboard row for a class: a last-writer-wins
// summary of the most recent order touching that class. Each new submission
// overwrites the row entirely; it carries no history.
type ClassOrder struct {
	ClassID       uuid.UUID         `gorm:"column:class_id;type:uuid;primaryKey"`
	OrderID       uuid.UUID         `gorm:"column:order_id;type:uuid;not null"`
	ClassName     string            `gorm:"column:class_name;not null"`
	SchoolID      uuid.UUID         `gorm:"column:school_id;type:uuid;not null"`
	OwnerUserID   uuid.UUID         `gorm:"column:owner_user_id;type:uuid;not null"`
	OwnerEmail    string            `gorm:"column:owner_email;not null"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	TotalQuantity int               `gorm:"column:total_quantity;not null"`
	// Representative line: the first item of the latest order for this class.
	LeadRecipeID   uuid.UUID  `gorm:"column:lead_recipe_id;type:uuid;not null"`
	LeadRecipeName string     `gorm:"column:lead_recipe_name;not null"`
	LeadQuantity   int        `gorm:"column:lead_quantity;not null"`
	ProcessedAt    *time.Time `gorm:"column:processed_at"`
	ShippedAt      *time.Time `gorm:"column:shipped_at"`
	DeliveredAt    *time.Time `gorm:"column:delivered_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
