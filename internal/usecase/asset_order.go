package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type AssetOrderUpdate struct {
	ID    uuid.UUID
	Order int
}

// nextAssetOrder returns the order a new asset should take within its
// (model, type) partition: one past the current maximum, 1 when empty.
func (u Usecase) nextAssetOrder(ctx context.Context, modelID uuid.UUID, t AssetType) (int, error) {
	max, err := u.repo.GetMaxAssetOrder(ctx, modelID, &t)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// UpdateAssetOrder moves one asset to the requested order. When a sibling
// in the same (model, type) partition already holds that order the two
// assets trade places, keeping the listing dense without renumbering
// everything in between. The trade is a single transaction; readers never
// observe one half of it.
func (u Usecase) UpdateAssetOrder(ctx context.Context, id uuid.UUID, order int) error {
	if order < 0 {
		return fmt.Errorf("%w: order must be a non-negative number", ErrInvalidArgument)
	}

	asset, err := u.repo.GetAssetByID(ctx, id)
	if err != nil {
		return err
	}

	holder, err := u.repo.FindAssetByOrder(ctx, asset.ModelID, asset.Type, order)
	switch {
	case err == nil && holder.ID == asset.ID:
		// Already in place.
		return nil
	case err == nil:
		return u.repo.UpdateAssetOrders(ctx, []AssetOrderUpdate{
			{ID: asset.ID, Order: order},
			{ID: holder.ID, Order: asset.Order},
		})
	case errors.Is(err, ErrNotFound):
		return u.repo.UpdateAssetOrder(ctx, asset.ID, order)
	default:
		return err
	}
}

// BulkUpdateAssetOrders overwrites orders item by item with no conflict
// resolution: callers submit the complete new ordering for a set. The
// batch is not transactional — a missing id stops processing and is
// reported, but earlier updates stay applied.
func (u Usecase) BulkUpdateAssetOrders(ctx context.Context, items []AssetOrderUpdate) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: expected a non-empty list of assets with id and order", ErrInvalidArgument)
	}

	for _, it := range items {
		if err := u.repo.UpdateAssetOrder(ctx, it.ID, it.Order); err != nil {
			return fmt.Errorf("asset %s: %w", it.ID, err)
		}
	}
	return nil
}
