package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is the catalog entry teachers order from.
type Recipe struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	ServingSize int       `gorm:"column:serving_size;not null;default:1"`
	ImageURL    *string   `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
