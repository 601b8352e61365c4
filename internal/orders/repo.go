package orders

import (
	"context"
	"time"

	"github.com/classcooks/classcooks-backend/pkg/db/models"
	"github.com/classcooks/classcooks-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Create(order).Error
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) UpsertClassOrders(ctx context.Context, rows []models.ClassOrder) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "class_id"}},
			UpdateAll: true,
		}).
		Create(&rows).Error
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindOrderItem(ctx context.Context, itemID uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindOrderClassIDs(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error) {
	var classIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Distinct("class_id").
		Where("order_id = ?", orderID).
		Pluck("class_id", &classIDs).Error
	if err != nil {
		return nil, err
	}
	return classIDs, nil
}

func (r *repository) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindClassOrder(ctx context.Context, classID uuid.UUID) (*models.ClassOrder, error) {
	var row models.ClassOrder
	err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) AdvanceOrderStatus(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus, stampColumn string, ts time.Time) (int64, error) {
	updates := map[string]any{"status": to}
	if stampColumn != "" {
		// First write wins: a stamp that is already set is never overwritten.
		updates[stampColumn] = gorm.Expr("COALESCE("+stampColumn+", ?)", ts)
	}
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) AdvanceClassOrders(ctx context.Context, classIDs []uuid.UUID, status enums.OrderStatus, stampColumn string, ts time.Time) error {
	if len(classIDs) == 0 {
		return nil
	}
	updates := map[string]any{"status": status}
	if stampColumn != "" {
		updates[stampColumn] = gorm.Expr("COALESCE("+stampColumn+", ?)", ts)
	}
	return r.db.WithContext(ctx).
		Model(&models.ClassOrder{}).
		Where("class_id IN ?", classIDs).
		Updates(updates).Error
}

func (r *repository) StampOrderItem(ctx context.Context, itemID uuid.UUID, stampColumn string, ts time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Update(stampColumn, gorm.Expr("COALESCE("+stampColumn+", ?)", ts)).Error
}

func (r *repository) StampClassOrder(ctx context.Context, classID, orderID uuid.UUID, stampColumn string, ts time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ClassOrder{}).
		Where("class_id = ?", classID).
		Updates(map[string]any{
			stampColumn: gorm.Expr("COALESCE("+stampColumn+", ?)", ts),
			"order_id":  orderID,
		}).Error
}

func (r *repository) CompleteOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status <> ?", orderID, enums.OrderStatusComplete).
		Update("status", enums.OrderStatusComplete)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
