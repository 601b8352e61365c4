package orders

import (
	"context"
	"errors"

	"github.com/classcooks/classcooks-backend/pkg/db/models"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrder fetches the order header and its full item list. If the header
// exists but the item read fails, the header is still returned together with
// a partial-fetch error so the caller can degrade instead of discarding the
// record.
func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetail, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	detail := &OrderDetail{Order: *order}

	items, err := s.repo.FindOrderItems(ctx, orderID)
	if err != nil {
		return detail, pkgerrors.Wrap(pkgerrors.CodePartialFetch, err, "order items unavailable")
	}
	detail.Items = items
	return detail, nil
}

// ListOrders returns every order header, newest first.
func (s *service) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

// GetClassOrder returns the latest-order summary for a class, or NotFound if
// no order has ever targeted it.
func (s *service) GetClassOrder(ctx context.Context, classID uuid.UUID) (*models.ClassOrder, error) {
	if classID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "class id required")
	}

	row, err := s.repo.FindClassOrder(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no orders for class")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load class summary")
	}
	return row, nil
}
