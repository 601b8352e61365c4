package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/classcooks/classcooks-backend/pkg/enums"
)

// Order is the top-level record for one checkout event. Rows are append-only:
// status and stage timestamps advance, nothing is ever deleted.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OwnerUserID   uuid.UUID         `gorm:"column:owner_user_id;type:uuid;not null"`
	OwnerEmail    string            `gorm:"column:owner_email;not null"`
	SchoolID      uuid.UUID         `gorm:"column:school_id;type:uuid;not null"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	TotalQuantity int               `gorm:"column:total_quantity;not null"`
	ProcessedAt   *time.Time        `gorm:"column:processed_at"`
	ShippedAt     *time.Time        `gorm:"column:shipped_at"`
	DeliveredAt   *time.Time        `gorm:"column:delivered_at"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
