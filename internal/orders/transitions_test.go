package orders

import (
	"context"
	"testing"
	"time"

	"github.com/classcooks/classcooks-backend/internal/cart"
	"github.com/classcooks/classcooks-backend/pkg/enums"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionOrderAdvancesOrderAndClassRows(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc := newTestService(t, db, repo)
	ctx := context.Background()

	classA := uuid.New()
	classB := uuid.New()
	orderID, err := svc.Submit(ctx, testIdentity(), testLines(classA, classB))
	require.NoError(t, err)

	stageTs := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return stageTs }

	require.NoError(t, svc.TransitionOrder(ctx, orderID, enums.OrderStatusProcessing))

	order, err := repo.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, order.Status)
	require.NotNil(t, order.ProcessedAt)
	assert.True(t, stageTs.Equal(*order.ProcessedAt))

	for _, classID := range []uuid.UUID{classA, classB} {
		row, err := repo.FindClassOrder(ctx, classID)
		require.NoError(t, err)
		assert.Equal(t, enums.OrderStatusProcessing, row.Status)
		require.NotNil(t, row.ProcessedAt)
		assert.True(t, stageTs.Equal(*row.ProcessedAt), "class row carries the same timestamp as the order")
	}
}

func TestTransitionOrderSkipAheadStampsOnlyTarget(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc := newTestService(t, db, repo)
	ctx := context.Background()

	orderID, err := svc.Submit(ctx, testIdentity(), testLines(uuid.New(), uuid.New()))
	require.NoError(t, err)

	require.NoError(t, svc.TransitionOrder(ctx, orderID, enums.OrderStatusDispatched))

	order, err := repo.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDispatched, order.Status)
	assert.NotNil(t, order.ShippedAt)
	assert.Nil(t, order.ProcessedAt, "skipped stages are not back-filled")
}

func TestTransitionOrderRejectsRegressionAndReplay(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc := newTestService(t, db, repo)
	ctx := context.Background()

	orderID, err := svc.Submit(ctx, testIdentity(), testLines(uuid.New(), uuid.New()))
	require.NoError(t, err)
	require.NoError(t, svc.TransitionOrder(ctx, orderID, enums.OrderStatusDispatched))

	before, err := repo.FindOrder(ctx, orderID)
	require.NoError(t, err)

	err = svc.TransitionOrder(ctx, orderID, enums.OrderStatusProcessing)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	err = svc.TransitionOrder(ctx, orderID, enums.OrderStatusDispatched)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	after, err := repo.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, before.Status, after.Status)
	require.NotNil(t, after.ShippedAt)
	assert.True(t, before.ShippedAt.Equal(*after.ShippedAt), "rejected transitions leave timestamps alone")
	assert.Nil(t, after.ProcessedAt)
}

func TestTransitionOrderRejectsCompleteOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newTestService(t, db, NewRepository(db))
	ctx := context.Background()

	orderID, err := svc.Submit(ctx, testIdentity(), testLines(uuid.New(), uuid.New()))
	require.NoError(t, err)
	require.NoError(t, svc.MarkComplete(ctx, orderID))

	err = svc.TransitionOrder(ctx, orderID, enums.OrderStatusProcessing)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
}

func TestTransitionOrderRejectsNonStageStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newTestService(t, db, NewRepository(db))

	err := svc.TransitionOrder(context.Background(), uuid.New(), enums.OrderStatusComplete)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	err = svc.TransitionOrder(context.Background(), uuid.New(), enums.OrderStatus("packed"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestTransitionOrderNotFound(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newTestService(t, db, NewRepository(db))

	err := svc.TransitionOrder(context.Background(), uuid.New(), enums.OrderStatusProcessing)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestTransitionItemStampsItemAndClassOnly(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc := newTestService(t, db, repo)
	ctx := context.Background()

	classA := uuid.New()
	classB := uuid.New()
	orderID, err := svc.Submit(ctx, testIdentity(), testLines(classA, classB))
	require.NoError(t, err)

	items, err := repo.FindOrderItems(ctx, orderID)
	require.NoError(t, err)
	var target, sibling *struct {
		id      uuid.UUID
		classID uuid.UUID
	}
	for _, item := range items {
		entry := &struct {
			id      uuid.UUID
			classID uuid.UUID
		}{id: item.ID, classID: item.ClassID}
		if item.ClassID == classB {
			target = entry
		} else if sibling == nil {
			sibling = entry
		}
	}
	require.NotNil(t, target)
	require.NotNil(t, sibling)

	stageTs := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return stageTs }

	require.NoError(t, svc.TransitionItem(ctx, TransitionItemInput{
		OrderID: orderID,
		ItemID:  target.id,
		ClassID: classB,
		Action:  enums.StageActionProcessing,
	}))

	stamped, err := repo.FindOrderItem(ctx, target.id)
	require.NoError(t, err)
	require.NotNil(t, stamped.ProcessedAt)
	assert.True(t, stageTs.Equal(*stamped.ProcessedAt))

	classRow, err := repo.FindClassOrder(ctx, classB)
	require.NoError(t, err)
	require.NotNil(t, classRow.ProcessedAt)
	assert.True(t, stageTs.Equal(*classRow.ProcessedAt), "class row mirrors the item stamp")

	untouched, err := repo.FindOrderItem(ctx, sibling.id)
	require.NoError(t, err)
	assert.Nil(t, untouched.ProcessedAt)

	order, err := repo.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, order.Status, "item stamps never move the order status")
	assert.Nil(t, order.ProcessedAt)
}

func TestTransitionItemStampIsIdempotent(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc := newTestService(t, db, repo)
	ctx := context.Background()

	classID := uuid.New()
	orderID, err := svc.Submit(ctx, testIdentity(), []cart.Line{
		{RecipeID: uuid.New(), RecipeName: "Scones", ClassID: classID, ClassName: "Class 4A", Quantity: 1},
	})
	require.NoError(t, err)
	items, err := repo.FindOrderItems(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	input := TransitionItemInput{OrderID: orderID, ItemID: items[0].ID, Action: enums.StageActionDispatched}

	firstTs := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return firstTs }
	require.NoError(t, svc.TransitionItem(ctx, input))

	svc.now = func() time.Time { return firstTs.Add(30 * time.Minute) }
	require.NoError(t, svc.TransitionItem(ctx, input))

	item, err := repo.FindOrderItem(ctx, items[0].ID)
	require.NoError(t, err)
	require.NotNil(t, item.ShippedAt)
	assert.True(t, firstTs.Equal(*item.ShippedAt), "the first stamp wins")
}

func TestTransitionItemRejectsMismatches(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc := newTestService(t, db, repo)
	ctx := context.Background()

	classID := uuid.New()
	orderID, err := svc.Submit(ctx, testIdentity(), []cart.Line{
		{RecipeID: uuid.New(), RecipeName: "Scones", ClassID: classID, ClassName: "Class 4A", Quantity: 1},
	})
	require.NoError(t, err)
	items, err := repo.FindOrderItems(ctx, orderID)
	require.NoError(t, err)

	err = svc.TransitionItem(ctx, TransitionItemInput{
		OrderID: uuid.New(),
		ItemID:  items[0].ID,
		Action:  enums.StageActionProcessing,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	err = svc.TransitionItem(ctx, TransitionItemInput{
		OrderID: orderID,
		ItemID:  items[0].ID,
		ClassID: uuid.New(),
		Action:  enums.StageActionProcessing,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	err = svc.TransitionItem(ctx, TransitionItemInput{
		OrderID: orderID,
		ItemID:  items[0].ID,
		Action:  enums.StageAction("boxed"),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestMarkCompleteIsTerminalAndIdempotent(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc := newTestService(t, db, repo)
	ctx := context.Background()

	classID := uuid.New()
	orderID, err := svc.Submit(ctx, testIdentity(), []cart.Line{
		{RecipeID: uuid.New(), RecipeName: "Scones", ClassID: classID, ClassName: "Class 4A", Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, svc.TransitionOrder(ctx, orderID, enums.OrderStatusDelivered))

	require.NoError(t, svc.MarkComplete(ctx, orderID))
	require.NoError(t, svc.MarkComplete(ctx, orderID), "completing twice is a no-op")

	order, err := repo.FindOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusComplete, order.Status)
	assert.NotNil(t, order.DeliveredAt, "completion does not clear stage stamps")

	// Class summaries keep their own track.
	row, err := repo.FindClassOrder(ctx, classID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, row.Status)
}
