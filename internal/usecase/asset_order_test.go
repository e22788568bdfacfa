package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAssetOrder_SwapsWithHolder(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()
	modelID := uuid.New()

	a := env.repo.seedAsset(modelID, AssetTypeCarousel, 1, AssetStatusActive)
	b := env.repo.seedAsset(modelID, AssetTypeCarousel, 2, AssetStatusActive)
	c := env.repo.seedAsset(modelID, AssetTypeCarousel, 3, AssetStatusActive)

	require.NoError(t, uc.UpdateAssetOrder(ctx, a.ID, 3))

	got := env.repo.assets
	assert.Equal(t, 3, got[a.ID].Order)
	assert.Equal(t, 1, got[c.ID].Order, "previous holder takes the vacated order")
	assert.Equal(t, 2, got[b.ID].Order, "bystander keeps its order")
}

func TestUpdateAssetOrder_SwapScopedToPartition(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()
	modelID := uuid.New()

	a := env.repo.seedAsset(modelID, AssetTypeCarousel, 1, AssetStatusActive)
	// Same order, different type: not a conflict.
	p := env.repo.seedAsset(modelID, AssetTypePolaroid, 5, AssetStatusActive)
	// Same order and type, different model: not a conflict either.
	other := env.repo.seedAsset(uuid.New(), AssetTypeCarousel, 5, AssetStatusActive)

	require.NoError(t, uc.UpdateAssetOrder(ctx, a.ID, 5))

	got := env.repo.assets
	assert.Equal(t, 5, got[a.ID].Order)
	assert.Equal(t, 5, got[p.ID].Order)
	assert.Equal(t, 5, got[other.ID].Order)
}

func TestUpdateAssetOrder_NoHolderMovesDirectly(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()
	modelID := uuid.New()

	a := env.repo.seedAsset(modelID, AssetTypeCarousel, 1, AssetStatusActive)

	require.NoError(t, uc.UpdateAssetOrder(ctx, a.ID, 7))
	assert.Equal(t, 7, env.repo.assets[a.ID].Order)
}

func TestUpdateAssetOrder_SameOrderIsNoop(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()
	modelID := uuid.New()

	a := env.repo.seedAsset(modelID, AssetTypeCarousel, 2, AssetStatusActive)
	before := env.repo.assets[a.ID].UpdatedAt

	require.NoError(t, uc.UpdateAssetOrder(ctx, a.ID, 2))
	assert.Equal(t, before, env.repo.assets[a.ID].UpdatedAt, "no write when nothing moves")
}

func TestUpdateAssetOrder_NegativeOrderRejected(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()
	a := env.repo.seedAsset(uuid.New(), AssetTypeCarousel, 1, AssetStatusActive)

	err := uc.UpdateAssetOrder(ctx, a.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 1, env.repo.assets[a.ID].Order)
}

func TestUpdateAssetOrder_UnknownAsset(t *testing.T) {
	uc, _ := newTestUsecase(t)

	err := uc.UpdateAssetOrder(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBulkUpdateAssetOrders_OverwritesWithoutSwapping(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()
	modelID := uuid.New()

	a := env.repo.seedAsset(modelID, AssetTypeCarousel, 1, AssetStatusActive)
	b := env.repo.seedAsset(modelID, AssetTypeCarousel, 2, AssetStatusActive)
	c := env.repo.seedAsset(modelID, AssetTypeCarousel, 3, AssetStatusActive)

	require.NoError(t, uc.BulkUpdateAssetOrders(ctx, []AssetOrderUpdate{
		{ID: a.ID, Order: 3},
		{ID: b.ID, Order: 1},
		{ID: c.ID, Order: 2},
	}))

	got := env.repo.assets
	assert.Equal(t, 3, got[a.ID].Order)
	assert.Equal(t, 1, got[b.ID].Order)
	assert.Equal(t, 2, got[c.ID].Order)
}

func TestBulkUpdateAssetOrders_EmptyRejected(t *testing.T) {
	uc, _ := newTestUsecase(t)

	err := uc.BulkUpdateAssetOrders(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBulkUpdateAssetOrders_StopsAtFirstMissing(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()
	modelID := uuid.New()

	a := env.repo.seedAsset(modelID, AssetTypeCarousel, 1, AssetStatusActive)
	b := env.repo.seedAsset(modelID, AssetTypeCarousel, 2, AssetStatusActive)
	missing := uuid.New()

	err := uc.BulkUpdateAssetOrders(ctx, []AssetOrderUpdate{
		{ID: a.ID, Order: 10},
		{ID: missing, Order: 11},
		{ID: b.ID, Order: 12},
	})

	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), missing.String(), "error names the offending id")

	// Earlier updates stay applied, later ones never run.
	assert.Equal(t, 10, env.repo.assets[a.ID].Order)
	assert.Equal(t, 2, env.repo.assets[b.ID].Order)
}

func TestCreateAsset_OrderDefaultsToNextInPartition(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()
	modelID := uuid.New()

	env.repo.seedAsset(modelID, AssetTypeCarousel, 1, AssetStatusActive)
	env.repo.seedAsset(modelID, AssetTypeCarousel, 4, AssetStatusActive)
	// A different partition's max must not leak in.
	env.repo.seedAsset(modelID, AssetTypePolaroid, 9, AssetStatusActive)

	a, err := uc.CreateAsset(ctx, CreateAssetOption{
		ModelID:     modelID,
		Type:        AssetTypeCarousel,
		Image:       []byte("img"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, a.Order)
}

func TestCreateAsset_FirstInEmptyPartitionGetsOne(t *testing.T) {
	uc, _ := newTestUsecase(t)

	a, err := uc.CreateAsset(context.Background(), CreateAssetOption{
		ModelID:     uuid.New(),
		Type:        AssetTypePolaroid,
		Image:       []byte("img"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Order)
}

func TestCreateAsset_ExplicitOrderKept(t *testing.T) {
	uc, env := newTestUsecase(t)
	modelID := uuid.New()
	env.repo.seedAsset(modelID, AssetTypeCarousel, 1, AssetStatusActive)

	a, err := uc.CreateAsset(context.Background(), CreateAssetOption{
		ModelID:     modelID,
		Type:        AssetTypeCarousel,
		Order:       42,
		Image:       []byte("img"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, a.Order)
}
