package models

import (
	"time"

	"github.com/google/uuid"
)

// School groups classes and carries the weekdays deliveries can be scheduled.
type School struct {
	ID           uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	Name         string        `gorm:"column:name;not null"`
	DeliveryDays []string      `gorm:"column:delivery_days;type:jsonb;serializer:json"`
	Classes      []SchoolClass `gorm:"foreignKey:SchoolID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// SchoolClass is one class within a school, the destination unit for orders.
type SchoolClass struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SchoolID  uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
