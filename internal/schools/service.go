package schools

import (
	"context"
	"errors"
	"fmt"

	"github.com/classcooks/classcooks-backend/pkg/db/models"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the read surface teachers use to pick a school and class.
type Service interface {
	ListSchools(ctx context.Context) ([]models.School, error)
	GetSchool(ctx context.Context, schoolID uuid.UUID) (*models.School, error)
	ListClasses(ctx context.Context, schoolID uuid.UUID) ([]models.SchoolClass, error)
	GetClass(ctx context.Context, classID uuid.UUID) (*models.SchoolClass, error)
}

type service struct {
	repo Repository
}

// NewService builds the schools service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("schools repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListSchools(ctx context.Context) ([]models.School, error) {
	schools, err := s.repo.ListSchools(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list schools")
	}
	return schools, nil
}

func (s *service) GetSchool(ctx context.Context, schoolID uuid.UUID) (*models.School, error) {
	if schoolID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "school id required")
	}
	school, err := s.repo.FindSchool(ctx, schoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "school not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load school")
	}
	return school, nil
}

func (s *service) ListClasses(ctx context.Context, schoolID uuid.UUID) ([]models.SchoolClass, error) {
	if schoolID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "school id required")
	}
	classes, err := s.repo.ListClasses(ctx, schoolID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list classes")
	}
	return classes, nil
}

func (s *service) GetClass(ctx context.Context, classID uuid.UUID) (*models.SchoolClass, error) {
	if classID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "class id required")
	}
	class, err := s.repo.FindClass(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "class not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load class")
	}
	return class, nil
}
