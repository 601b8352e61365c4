package schools

import (
	"context"

	"github.com/classcooks/classcooks-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Repository reads school and class records.
type Repository interface {
	ListSchools(ctx context.Context) ([]models.School, error)
	FindSchool(ctx context.Context, schoolID uuid.UUID) (*models.School, error)
	ListClasses(ctx context.Context, schoolID uuid.UUID) ([]models.SchoolClass, error)
	FindClass(ctx context.Context, classID uuid.UUID) (*models.SchoolClass, error)
}
