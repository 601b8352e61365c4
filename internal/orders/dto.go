package orders

import (
	"github.com/classcooks/classcooks-backend/pkg/db/models"
	"github.com/classcooks/classcooks-backend/pkg/enums"
	"github.com/google/uuid"
)

// Identity carries the caller's ownership fields, as supplied by the identity
// provider.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	SchoolID uuid.UUID
}

// OrderDetail pairs an order header with its item list. Items may be empty
// when the header was fetched but the item read failed; the accompanying
// error says so.
type OrderDetail struct {
	Order models.Order
	Items []models.OrderItem
}

// TransitionItemInput identifies one item of one order and the stage to stamp.
type TransitionItemInput struct {
	OrderID uuid.UUID
	ItemID  uuid.UUID
	ClassID uuid.UUID
	Action  enums.StageAction
}

const (
	columnProcessedAt = "processed_at"
	columnShippedAt   = "shipped_at"
	columnDeliveredAt = "delivered_at"
)

// stampColumn maps a chain status to the timestamp column it owns. Pending
// has no stamp.
func stampColumn(status enums.OrderStatus) string {
	switch status {
	case enums.OrderStatusProcessing:
		return columnProcessedAt
	case enums.OrderStatusDispatched:
		return columnShippedAt
	case enums.OrderStatusDelivered:
		return columnDeliveredAt
	}
	return ""
}

func actionColumn(action enums.StageAction) string {
	switch action {
	case enums.StageActionProcessing:
		return columnProcessedAt
	case enums.StageActionDispatched:
		return columnShippedAt
	case enums.StageActionDelivered:
		return columnDeliveredAt
	}
	return ""
}
