package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/classcooks/classcooks-backend/pkg/enums"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransitionOrder advances the order-level status. Advancement is
// non-decreasing over the pending→processing→dispatched→delivered chain;
// skipping ahead is allowed, regression and replay are rejected before any
// write. The order row and every class summary referenced by its items move
// in one transaction.
func (s *service) TransitionOrder(ctx context.Context, orderID uuid.UUID, newStatus enums.OrderStatus) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	newIdx, ok := newStatus.StageIndex()
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("status %q is not a fulfillment stage", newStatus))
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		curIdx, ok := order.Status.StageIndex()
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is complete")
		}
		if newIdx <= curIdx {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, newStatus))
		}

		ts := s.now()
		column := stampColumn(newStatus)

		// The guard re-checks the status we just read, so a writer racing on
		// the same stale read cannot regress or double-apply a stage.
		rows, err := repo.AdvanceOrderStatus(ctx, orderID, order.Status, newStatus, column, ts)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advance order status")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
		}

		classIDs, err := repo.FindOrderClassIDs(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order classes")
		}
		if err := repo.AdvanceClassOrders(ctx, classIDs, newStatus, column, ts); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advance class summaries")
		}
		return nil
	})
}

// TransitionItem stamps a fulfillment stage on one item and mirrors it onto
// the item's class summary. The parent order's status is deliberately left
// untouched: the two tracks advance independently.
func (s *service) TransitionItem(ctx context.Context, input TransitionItemInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if !input.Action.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid stage action %q", input.Action))
	}
	column := actionColumn(input.Action)

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindOrderItem(ctx, input.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
		}
		if item.OrderID != input.OrderID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item does not belong to order")
		}
		if input.ClassID != uuid.Nil && input.ClassID != item.ClassID {
			return pkgerrors.New(pkgerrors.CodeValidation, "class does not match item")
		}

		ts := s.now()
		if err := repo.StampOrderItem(ctx, item.ID, column, ts); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp order item")
		}
		if err := repo.StampClassOrder(ctx, item.ClassID, item.OrderID, column, ts); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp class summary")
		}
		return nil
	})
}

// MarkComplete flips the terminal flag. Completing an already complete order
// is a no-op.
func (s *service) MarkComplete(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Status == enums.OrderStatusComplete {
		return nil
	}

	if _, err := s.repo.CompleteOrder(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete order")
	}
	return nil
}
