package recipes

import (
	"context"

	"github.com/classcooks/classcooks-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a recipes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *repository) Update(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *repository) Delete(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", recipeID).
		Delete(&models.Recipe{})
	return result.RowsAffected, result.Error
}

func (r *repository) Find(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		Where("id = ?", recipeID).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *repository) List(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}
