package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	carts   map[uuid.UUID][]Line
	saveErr error
	saves   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: map[uuid.UUID][]Line{}}
}

func (m *memoryStore) Load(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	snapshot := make([]Line, len(m.carts[userID]))
	copy(snapshot, m.carts[userID])
	return snapshot, nil
}

func (m *memoryStore) Save(ctx context.Context, userID uuid.UUID, lines []Line) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.carts[userID] = lines
	return nil
}

func (m *memoryStore) Clear(ctx context.Context, userID uuid.UUID) error {
	delete(m.carts, userID)
	return nil
}

func newTestService(t *testing.T) (Service, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	svc, err := NewService(store)
	require.NoError(t, err)
	return svc, store
}

func testLine(recipeID, classID uuid.UUID) Line {
	return Line{
		RecipeID:   recipeID,
		RecipeName: "Banana Bread",
		ClassID:    classID,
		ClassName:  "Class 3B",
		Quantity:   1,
	}
}

func TestAddLineMergesOnSameKey(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	recipeID := uuid.New()
	classID := uuid.New()

	lines, err := svc.AddLine(ctx, userID, testLine(recipeID, classID))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	lines, err = svc.AddLine(ctx, userID, testLine(recipeID, classID))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	// Same recipe for another class is its own line.
	lines, err = svc.AddLine(ctx, userID, testLine(recipeID, uuid.New()))
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	// Every mutation persisted the snapshot.
	assert.Equal(t, 3, store.saves)
}

func TestAddLineValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, uuid.Nil, testLine(uuid.New(), uuid.New()))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = svc.AddLine(ctx, uuid.New(), Line{ClassID: uuid.New()})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.AddLine(ctx, uuid.New(), Line{RecipeID: uuid.New()})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	recipeID := uuid.New()
	classID := uuid.New()

	_, err := svc.AddLine(ctx, userID, testLine(recipeID, classID))
	require.NoError(t, err)

	lines, err := svc.UpdateQuantity(ctx, userID, recipeID, classID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, lines[0].Quantity)

	lines, err = svc.UpdateQuantity(ctx, userID, recipeID, classID, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestUpdateNotesAndDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	recipeID := uuid.New()
	classID := uuid.New()

	_, err := svc.AddLine(ctx, userID, testLine(recipeID, classID))
	require.NoError(t, err)

	lines, err := svc.UpdateNotes(ctx, userID, recipeID, classID, "no nuts")
	require.NoError(t, err)
	assert.Equal(t, "no nuts", lines[0].Notes)

	when := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	lines, err = svc.UpdateDate(ctx, userID, recipeID, classID, &when)
	require.NoError(t, err)
	require.NotNil(t, lines[0].DeliveryDate)
	assert.True(t, when.Equal(*lines[0].DeliveryDate))

	_, err = svc.UpdateNotes(ctx, userID, uuid.New(), classID, "x")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateClassReKeysLine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	recipeID := uuid.New()
	classA := uuid.New()
	classB := uuid.New()

	_, err := svc.AddLine(ctx, userID, testLine(recipeID, classA))
	require.NoError(t, err)

	lines, err := svc.UpdateClass(ctx, userID, recipeID, classA, classB, "Class 4A")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, classB, lines[0].ClassID)
	assert.Equal(t, "Class 4A", lines[0].ClassName)
}

func TestUpdateClassMergesWithExistingTarget(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	recipeID := uuid.New()
	classA := uuid.New()
	classB := uuid.New()

	_, err := svc.AddLine(ctx, userID, testLine(recipeID, classA))
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, userID, testLine(recipeID, classB))
	require.NoError(t, err)
	_, err = svc.UpdateQuantity(ctx, userID, recipeID, classA, 3)
	require.NoError(t, err)
	lines, err := svc.UpdateNotes(ctx, userID, recipeID, classA, "extra flour")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	lines, err = svc.UpdateClass(ctx, userID, recipeID, classA, classB, "Class 3B")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, classB, lines[0].ClassID)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, "extra flour", lines[0].Notes)
}

func TestRemoveLineAndClear(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	recipeID := uuid.New()
	classID := uuid.New()

	_, err := svc.AddLine(ctx, userID, testLine(recipeID, classID))
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, userID, testLine(uuid.New(), classID))
	require.NoError(t, err)

	lines, err := svc.RemoveLine(ctx, userID, recipeID, classID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	require.NoError(t, svc.Clear(ctx, userID))
	lines, err = svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	_, ok := store.carts[userID]
	assert.False(t, ok)
}

func TestMutationFailureLeavesCartUntouched(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()
	recipeID := uuid.New()
	classID := uuid.New()

	_, err := svc.AddLine(ctx, userID, testLine(recipeID, classID))
	require.NoError(t, err)

	store.saveErr = errors.New("redis down")
	_, err = svc.UpdateQuantity(ctx, userID, recipeID, classID, 5)
	require.Error(t, err)

	store.saveErr = nil
	lines, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}
