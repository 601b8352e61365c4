package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/classcooks/classcooks-backend/pkg/db/models"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInput carries the fields of a new catalog entry.
type CreateInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	ServingSize int     `json:"serving_size" validate:"omitempty,min=1"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

// UpdateInput carries a partial update; nil fields are left alone.
type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	ServingSize *int    `json:"serving_size" validate:"omitempty,min=1"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

// Service covers catalog reads and the admin-only mutations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Recipe, error)
	Update(ctx context.Context, recipeID uuid.UUID, input UpdateInput) (*models.Recipe, error)
	Delete(ctx context.Context, recipeID uuid.UUID) error
	Get(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
}

type service struct {
	repo Repository
}

// NewService builds the recipes service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recipes repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Recipe, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe name required")
	}

	recipe := &models.Recipe{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
		ServingSize: input.ServingSize,
		ImageURL:    input.ImageURL,
	}
	if recipe.ServingSize < 1 {
		recipe.ServingSize = 1
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist recipe")
	}
	return recipe, nil
}

func (s *service) Update(ctx context.Context, recipeID uuid.UUID, input UpdateInput) (*models.Recipe, error) {
	recipe, err := s.fetch(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe name cannot be blank")
		}
		recipe.Name = name
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.ServingSize != nil {
		if *input.ServingSize < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "serving size must be at least 1")
		}
		recipe.ServingSize = *input.ServingSize
	}
	if input.ImageURL != nil {
		recipe.ImageURL = input.ImageURL
	}

	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update recipe")
	}
	return recipe, nil
}

func (s *service) Delete(ctx context.Context, recipeID uuid.UUID) error {
	if recipeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipe id required")
	}
	rows, err := s.repo.Delete(ctx, recipeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete recipe")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
	}
	return nil
}

func (s *service) Get(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	return s.fetch(ctx, recipeID)
}

func (s *service) List(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recipes")
	}
	return recipes, nil
}

func (s *service) fetch(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	if recipeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe id required")
	}
	recipe, err := s.repo.Find(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe")
	}
	return recipe, nil
}
