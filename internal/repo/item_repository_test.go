package repo

import (
	"InvKeeper/internal/model"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// хелпер для создания базового item
func mkItem(name, locationID string) *model.Item {
	return &model.Item{
		ID:         uuid.NewString(),
		Name:       name,
		Status:     model.ItemAvailable,
		Quantity:   1,
		LocationID: locationID,
		Version:    1,
	}
}

func TestItemRepository_CreateIfAbsent_GetByIDAndName(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()
	loc := uuid.NewString()

	it := mkItem("Drill", loc)
	created, err := r.CreateIfAbsent(ctx, it)
	require.NoError(t, err)
	assert.True(t, created)

	got, err := r.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
	assert.Equal(t, loc, got.LocationID)
	assert.Empty(t, got.BorrowerIDs)

	got, err = r.GetByName(ctx, "Drill")
	require.NoError(t, err)
	assert.Equal(t, it.ID, got.ID)

	// повторное имя - created=false, без ошибки
	created, err = r.CreateIfAbsent(ctx, mkItem("Drill", loc))
	assert.NoError(t, err)
	assert.False(t, created)

	_, err = r.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestItemRepository_UpdateMatchedCountAndVersion(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	it := mkItem("Saw", uuid.NewString())
	_, err := r.CreateIfAbsent(ctx, it)
	require.NoError(t, err)

	matched, err := r.Update(ctx, it.ID, map[string]any{"status": model.ItemInUse})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	got, err := r.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemInUse, got.Status)
	assert.Equal(t, int64(2), got.Version)

	matched, err = r.Update(ctx, uuid.NewString(), map[string]any{"status": model.ItemInUse})
	assert.NoError(t, err)
	assert.Zero(t, matched)
}

func TestItemRepository_UpdateWithVersion_SuccessAndConflict(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	it := mkItem("Hammer", uuid.NewString())
	_, err := r.CreateIfAbsent(ctx, it)
	require.NoError(t, err)

	target := uuid.NewString()
	newVer, err := r.UpdateWithVersion(ctx, it.ID, 1, map[string]any{"location_id": target})
	require.NoError(t, err)
	assert.Equal(t, int64(2), newVer)

	got, err := r.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, target, got.LocationID)
	assert.Equal(t, int64(2), got.Version)

	// устаревшая версия
	_, err = r.UpdateWithVersion(ctx, it.ID, 1, map[string]any{"location_id": uuid.NewString()})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestItemRepository_BorrowersKeepOrderAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()

	it := mkItem("Ladder", uuid.NewString())
	_, err := r.CreateIfAbsent(ctx, it)
	require.NoError(t, err)

	list := model.IDList{"b", "a", "b"}
	_, err = r.Update(ctx, it.ID, map[string]any{"borrower_ids": list})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, list, got.BorrowerIDs)
}

func TestItemRepository_ListAndCountByLocation(t *testing.T) {
	db := newTestDB(t)
	r := NewItemRepository(db)
	ctx := context.Background()
	locA, locB := uuid.NewString(), uuid.NewString()

	for _, it := range []*model.Item{mkItem("a", locA), mkItem("b", locA), mkItem("c", locB)} {
		_, err := r.CreateIfAbsent(ctx, it)
		require.NoError(t, err)
	}

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = r.CountByLocation(ctx, locA)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = r.CountByLocation(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Zero(t, n)
}
