package recipes

import (
	"context"

	"github.com/classcooks/classcooks-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Repository persists catalog entries.
type Repository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, recipeID uuid.UUID) (int64, error)
	Find(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
}
