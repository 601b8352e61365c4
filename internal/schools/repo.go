package schools

import (
	"context"

	"github.com/classcooks/classcooks-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a schools repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListSchools(ctx context.Context) ([]models.School, error) {
	var schools []models.School
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&schools).Error
	if err != nil {
		return nil, err
	}
	return schools, nil
}

func (r *repository) FindSchool(ctx context.Context, schoolID uuid.UUID) (*models.School, error) {
	var school models.School
	err := r.db.WithContext(ctx).
		Preload("Classes", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("id = ?", schoolID).
		First(&school).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *repository) ListClasses(ctx context.Context, schoolID uuid.UUID) ([]models.SchoolClass, error) {
	var classes []models.SchoolClass
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("name ASC").
		Find(&classes).Error
	if err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *repository) FindClass(ctx context.Context, classID uuid.UUID) (*models.SchoolClass, error) {
	var class models.SchoolClass
	err := r.db.WithContext(ctx).
		Where("id = ?", classID).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}
