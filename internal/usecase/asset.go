package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"time"

	"github.com/cenkalti/dominantcolor"
	"github.com/google/uuid"
)

// AssetType tags an asset with its presentation bucket. The set is open:
// unknown values are stored as-is and simply left out of the grouped output.
type AssetType string

const (
	AssetTypeCarousel    AssetType = "carousel"
	AssetTypePolaroid    AssetType = "polaroid"
	AssetTypeInstagram   AssetType = "instagram"
	AssetTypeLandingPage AssetType = "landingpage"
)

type AssetStatus string

const (
	AssetStatusActive   AssetStatus = "active"
	AssetStatusInactive AssetStatus = "inactive"
)

func ParseAssetStatus(s string) (AssetStatus, error) {
	switch AssetStatus(s) {
	case AssetStatusActive, AssetStatusInactive:
		return AssetStatus(s), nil
	}
	return "", fmt.Errorf("%w: status must be 'active' or 'inactive', got %q", ErrInvalidArgument, s)
}

// Asset is one media item of a model. Order is only meaningful relative
// to siblings sharing the same ModelID and Type.
type Asset struct {
	ID          uuid.UUID
	ModelID     uuid.UUID
	Type        AssetType
	Order       int
	Orientation string
	Status      AssetStatus
	Likes       int
	Comments    int
	Redirect    string
	ImgURL      string
	Colors      []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateAssetOption struct {
	ModelID     uuid.UUID
	Type        AssetType
	Order       int
	Orientation string
	Status      AssetStatus
	Image       []byte
	ContentType string
}

func (u Usecase) CreateAsset(ctx context.Context, opt CreateAssetOption) (Asset, error) {
	if opt.ModelID == uuid.Nil {
		return Asset{}, fmt.Errorf("%w: model_id is required", ErrInvalidArgument)
	}
	if len(opt.Image) == 0 {
		return Asset{}, fmt.Errorf("%w: image file is required", ErrInvalidArgument)
	}

	if opt.Orientation == "" {
		opt.Orientation = "portrait"
	}
	if opt.Status == "" {
		opt.Status = AssetStatusActive
	}

	order := opt.Order
	if order == 0 {
		next, err := u.nextAssetOrder(ctx, opt.ModelID, opt.Type)
		if err != nil {
			return Asset{}, err
		}
		order = next
	}

	// Upload before any database write; a failed upload must leave no row behind.
	name := fmt.Sprintf("models/%s/%s-%d", opt.ModelID, opt.Type, time.Now().UnixNano())
	url, err := u.imageStorage.UploadImage(ctx, name, opt.Image, opt.ContentType)
	if err != nil {
		return Asset{}, fmt.Errorf("%w: image upload: %v", ErrUpstream, err)
	}

	colors, err := ExtractColors(opt.Image)
	if err != nil {
		u.logger.WarnContext(ctx, "asset_extract_colors",
			slog.String("model_id", opt.ModelID.String()),
			slog.String("err", err.Error()))
		colors = nil
	}

	return u.repo.CreateAsset(ctx, Asset{
		ModelID:     opt.ModelID,
		Type:        opt.Type,
		Order:       order,
		Orientation: opt.Orientation,
		Status:      opt.Status,
		ImgURL:      url,
		Colors:      colors,
	})
}

type UpdateAssetOption struct {
	Orientation string
	Type        AssetType

	// Image replaces the stored binary when non-empty.
	Image       []byte
	ContentType string
}

func (u Usecase) UpdateAsset(ctx context.Context, id uuid.UUID, opt UpdateAssetOption) (Asset, error) {
	asset, err := u.repo.GetAssetByID(ctx, id)
	if err != nil {
		return Asset{}, err
	}

	if opt.Orientation != "" {
		asset.Orientation = opt.Orientation
	}
	if opt.Type != "" {
		asset.Type = opt.Type
	}

	if len(opt.Image) > 0 {
		name := fmt.Sprintf("models/%s/%s-%d", asset.ModelID, asset.Type, time.Now().UnixNano())
		url, err := u.imageStorage.UploadImage(ctx, name, opt.Image, opt.ContentType)
		if err != nil {
			return Asset{}, fmt.Errorf("%w: image upload: %v", ErrUpstream, err)
		}
		if old := asset.ImgURL; old != "" {
			if err := u.imageStorage.DeleteImage(ctx, old); err != nil {
				u.logger.WarnContext(ctx, "asset_delete_replaced_image",
					slog.String("url", old), slog.String("err", err.Error()))
			}
		}
		asset.ImgURL = url
		if colors, err := ExtractColors(opt.Image); err == nil {
			asset.Colors = colors
		}
	}

	return u.repo.UpdateAsset(ctx, asset)
}

// UpdateAssetStatus flips an asset between active and inactive. Deactivating
// pushes the asset behind everything else the model owns, across all types,
// so it drops to the tail of every listing.
func (u Usecase) UpdateAssetStatus(ctx context.Context, id uuid.UUID, status string) (Asset, error) {
	st, err := ParseAssetStatus(status)
	if err != nil {
		return Asset{}, err
	}

	asset, err := u.repo.GetAssetByID(ctx, id)
	if err != nil {
		return Asset{}, err
	}

	asset.Status = st
	if st == AssetStatusInactive {
		max, err := u.repo.GetMaxAssetOrder(ctx, asset.ModelID, nil)
		if err != nil {
			return Asset{}, err
		}
		asset.Order = max + 1
	}

	return u.repo.UpdateAsset(ctx, asset)
}

func (u Usecase) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	asset, err := u.repo.GetAssetByID(ctx, id)
	if err != nil {
		return err
	}

	// Losing the stored binary is recoverable, losing consistency with the
	// admin UI is not: the row goes away even if the image store errors.
	if err := u.imageStorage.DeleteImage(ctx, asset.ImgURL); err != nil {
		u.logger.WarnContext(ctx, "asset_delete_image",
			slog.String("asset_id", id.String()),
			slog.String("url", asset.ImgURL),
			slog.String("err", err.Error()))
	}

	return u.repo.DeleteAsset(ctx, id)
}

type ListModelAssetsOption struct {
	ModelID uuid.UUID
	Status  string
}

// ListModelAssets returns the model's assets grouped into presentation
// buckets. A bad status filter fails before anything is fetched.
func (u Usecase) ListModelAssets(ctx context.Context, opt ListModelAssetsOption) (GroupedAssets, error) {
	if opt.ModelID == uuid.Nil {
		return GroupedAssets{}, fmt.Errorf("%w: model_id is required", ErrInvalidArgument)
	}

	var status AssetStatus
	if opt.Status != "" {
		st, err := ParseAssetStatus(opt.Status)
		if err != nil {
			return GroupedAssets{}, err
		}
		status = st
	}

	assets, err := u.repo.ListAssets(ctx, ListAssetsOption{
		ModelID: opt.ModelID,
		Status:  status,
	})
	if err != nil {
		return GroupedAssets{}, err
	}

	return groupAssets(assets), nil
}

// LandingPageCover returns the active landing-page asset with the lowest
// order, most recently updated winning ties.
func (u Usecase) LandingPageCover(ctx context.Context) (Asset, error) {
	assets, err := u.repo.ListAssets(ctx, ListAssetsOption{
		Type:   AssetTypeLandingPage,
		Status: AssetStatusActive,
	})
	if err != nil {
		return Asset{}, err
	}
	if len(assets) == 0 {
		return Asset{}, fmt.Errorf("%w: no landing page cover", ErrNotFound)
	}
	sortAssets(assets)
	return assets[0], nil
}

type ListAssetsOption struct {
	ModelID uuid.UUID
	Type    AssetType
	Status  AssetStatus
}

// ExtractColors decodes the image and returns the four dominant colors as
// a JSON-encoded map of RGBA values.
func ExtractColors(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	colors := make(map[int][4]uint8)
	for i, c := range dominantcolor.FindN(img, 4) {
		colors[i] = [4]uint8{c.R, c.G, c.B, c.A}
	}

	return json.Marshal(colors)
}
