package cart

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service holds the pre-submission cart for each user. Every mutation loads
// the snapshot, applies the change, and persists the whole cart back, so the
// cart survives client restarts.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) ([]Line, error)
	AddLine(ctx context.Context, userID uuid.UUID, line Line) ([]Line, error)
	RemoveLine(ctx context.Context, userID, recipeID, classID uuid.UUID) ([]Line, error)
	UpdateQuantity(ctx context.Context, userID, recipeID, classID uuid.UUID, quantity int) ([]Line, error)
	UpdateNotes(ctx context.Context, userID, recipeID, classID uuid.UUID, notes string) ([]Line, error)
	UpdateDate(ctx context.Context, userID, recipeID, classID uuid.UUID, date *time.Time) ([]Line, error)
	UpdateClass(ctx context.Context, userID, recipeID, classID uuid.UUID, newClassID uuid.UUID, newClassName string) ([]Line, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	store Store
}

// NewService builds the cart service on top of the session store.
func NewService(store Store) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	return &service{store: store}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.store.Load(ctx, userID)
}

func (s *service) AddLine(ctx context.Context, userID uuid.UUID, line Line) ([]Line, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if line.RecipeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe id required")
	}
	if line.ClassID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination class required")
	}

	lines, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range lines {
		if lines[i].matches(line.RecipeID, line.ClassID) {
			lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		line.Quantity = 1
		lines = append(lines, line)
	}

	if err := s.store.Save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *service) RemoveLine(ctx context.Context, userID, recipeID, classID uuid.UUID) ([]Line, error) {
	return s.mutate(ctx, userID, func(lines []Line) ([]Line, error) {
		kept := lines[:0]
		for _, l := range lines {
			if !l.matches(recipeID, classID) {
				kept = append(kept, l)
			}
		}
		return kept, nil
	})
}

func (s *service) UpdateQuantity(ctx context.Context, userID, recipeID, classID uuid.UUID, quantity int) ([]Line, error) {
	if quantity < 1 {
		quantity = 1
	}
	return s.mutate(ctx, userID, func(lines []Line) ([]Line, error) {
		idx := findLine(lines, recipeID, classID)
		if idx < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		lines[idx].Quantity = quantity
		return lines, nil
	})
}

func (s *service) UpdateNotes(ctx context.Context, userID, recipeID, classID uuid.UUID, notes string) ([]Line, error) {
	return s.mutate(ctx, userID, func(lines []Line) ([]Line, error) {
		idx := findLine(lines, recipeID, classID)
		if idx < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		lines[idx].Notes = notes
		return lines, nil
	})
}

func (s *service) UpdateDate(ctx context.Context, userID, recipeID, classID uuid.UUID, date *time.Time) ([]Line, error) {
	return s.mutate(ctx, userID, func(lines []Line) ([]Line, error) {
		idx := findLine(lines, recipeID, classID)
		if idx < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}
		lines[idx].DeliveryDate = date
		return lines, nil
	})
}

// UpdateClass re-keys a line to a new destination class. When a line for the
// same recipe already targets the new class, the two are merged: quantities
// are summed and the moved line's notes and date win.
func (s *service) UpdateClass(ctx context.Context, userID, recipeID, classID uuid.UUID, newClassID uuid.UUID, newClassName string) ([]Line, error) {
	if newClassID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination class required")
	}
	return s.mutate(ctx, userID, func(lines []Line) ([]Line, error) {
		idx := findLine(lines, recipeID, classID)
		if idx < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}

		moved := lines[idx]
		moved.ClassID = newClassID
		moved.ClassName = newClassName

		if existing := findLine(lines, recipeID, newClassID); existing >= 0 && existing != idx {
			moved.Quantity += lines[existing].Quantity
			lines[idx] = moved
			lines = append(lines[:existing], lines[existing+1:]...)
			return lines, nil
		}

		lines[idx] = moved
		return lines, nil
	})
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.store.Clear(ctx, userID)
}

func (s *service) mutate(ctx context.Context, userID uuid.UUID, apply func([]Line) ([]Line, error)) ([]Line, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	lines, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err = apply(lines)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func findLine(lines []Line, recipeID, classID uuid.UUID) int {
	for i := range lines {
		if lines[i].matches(recipeID, classID) {
			return i
		}
	}
	return -1
}
