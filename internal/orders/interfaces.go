package orders

import (
	"context"
	"time"

	"github.com/classcooks/classcooks-backend/pkg/db/models"
	"github.com/classcooks/classcooks-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders, order items and the
// per-class summary rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	UpsertClassOrders(ctx context.Context, rows []models.ClassOrder) error

	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	FindOrderItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error)
	FindOrderClassIDs(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	FindClassOrder(ctx context.Context, classID uuid.UUID) (*models.ClassOrder, error)

	// AdvanceOrderStatus applies the status change and stage stamp as one
	// conditional write guarded on the status the caller read. It returns the
	// number of rows touched; zero means the guard failed.
	AdvanceOrderStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus, stampColumn string, ts time.Time) (int64, error)
	AdvanceClassOrders(ctx context.Context, classIDs []uuid.UUID, status enums.OrderStatus, stampColumn string, ts time.Time) error
	StampOrderItem(ctx context.Context, itemID uuid.UUID, stampColumn string, ts time.Time) error
	StampClassOrder(ctx context.Context, classID, orderID uuid.UUID, stampColumn string, ts time.Time) error

	// CompleteOrder flips the terminal flag; the write is guarded so an
	// already-complete order is left alone.
	CompleteOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}
