package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/classcooks/classcooks-backend/internal/cart"
	"github.com/classcooks/classcooks-backend/pkg/db/models"
	"github.com/classcooks/classcooks-backend/pkg/enums"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service covers order creation, fulfillment transitions and dashboard reads.
type Service interface {
	Submit(ctx context.Context, actor Identity, lines []cart.Line) (uuid.UUID, error)
	TransitionOrder(ctx context.Context, orderID uuid.UUID, newStatus enums.OrderStatus) error
	TransitionItem(ctx context.Context, input TransitionItemInput) error
	MarkComplete(ctx context.Context, orderID uuid.UUID) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetClassOrder(ctx context.Context, classID uuid.UUID) (*models.ClassOrder, error)
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds the orders service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo: repo,
		tx:   tx,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// Submit converts a cart into a durable order. The order header, its items
// and the per-class summary rows are written in one transaction; a failure
// leaves no trace of the attempt.
func (s *service) Submit(ctx context.Context, actor Identity, lines []cart.Line) (uuid.UUID, error) {
	if actor.UserID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := validateLines(lines); err != nil {
		return uuid.Nil, err
	}

	createdAt := s.now()
	order := &models.Order{
		ID:          uuid.New(),
		OwnerUserID: actor.UserID,
		OwnerEmail:  actor.Email,
		SchoolID:    actor.SchoolID,
		Status:      enums.OrderStatusPending,
		CreatedAt:   createdAt,
	}

	items := make([]models.OrderItem, 0, len(lines))
	classIndex := make(map[uuid.UUID]int)
	classRows := make([]models.ClassOrder, 0)

	for _, line := range lines {
		order.TotalQuantity += line.Quantity

		items = append(items, models.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			RecipeID:     line.RecipeID,
			RecipeName:   line.RecipeName,
			ClassID:      line.ClassID,
			ClassName:    line.ClassName,
			SchoolID:     actor.SchoolID,
			Quantity:     line.Quantity,
			Notes:        line.Notes,
			DeliveryDate: line.DeliveryDate,
			ImageURL:     line.ImageURL,
		})

		idx, seen := classIndex[line.ClassID]
		if !seen {
			classIndex[line.ClassID] = len(classRows)
			classRows = append(classRows, models.ClassOrder{
				ClassID:        line.ClassID,
				OrderID:        order.ID,
				ClassName:      line.ClassName,
				SchoolID:       actor.SchoolID,
				OwnerUserID:    actor.UserID,
				OwnerEmail:     actor.Email,
				Status:         enums.OrderStatusPending,
				TotalQuantity:  line.Quantity,
				LeadRecipeID:   line.RecipeID,
				LeadRecipeName: line.RecipeName,
				LeadQuantity:   line.Quantity,
				CreatedAt:      createdAt,
			})
			continue
		}
		classRows[idx].TotalQuantity += line.Quantity
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order header")
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order items")
		}
		if err := repo.UpsertClassOrders(ctx, classRows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh class summaries")
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return order.ID, nil
}

func validateLines(lines []cart.Line) error {
	if len(lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart contains no lines")
	}

	var issues error
	for i, line := range lines {
		if line.RecipeID == uuid.Nil {
			issues = multierr.Append(issues, fmt.Errorf("line %d: recipe id required", i))
		}
		if line.ClassID == uuid.Nil {
			issues = multierr.Append(issues, fmt.Errorf("line %d: destination class required", i))
		}
		if line.Quantity < 1 {
			issues = multierr.Append(issues, fmt.Errorf("line %d: quantity must be at least 1", i))
		}
	}
	if issues == nil {
		return nil
	}

	details := make([]string, 0)
	for _, err := range multierr.Errors(issues) {
		details = append(details, err.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, issues, "invalid cart lines").
		WithDetails(map[string]any{"lines": details})
}
