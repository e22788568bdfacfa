package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/reignagency/reign/internal/usecase"
)

type Asset struct {
	ID          uuid.UUID       `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	ModelID     uuid.UUID       `gorm:"column:model_id;type:uuid;not null;index:idx_model_type"`
	Type        string          `gorm:"column:type;type:varchar(50);not null;index:idx_model_type"`
	Order       int             `gorm:"column:order;type:int;default:0"`
	Orientation string          `gorm:"column:orientation;type:varchar(50);default:portrait"`
	Status      string          `gorm:"column:status;type:varchar(20);default:active;index"`
	Likes       int             `gorm:"column:likes;type:int;default:0"`
	Comments    int             `gorm:"column:comments;type:int;default:0"`
	Redirect    string          `gorm:"column:redirect;type:varchar(512)"`
	ImgURL      string          `gorm:"column:img_url;type:varchar(512);not null"`
	Colors      datatypes.JSON  `gorm:"column:colors"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	DeletedAt   *gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (Asset) TableName() string {
	return "assets"
}

func (s *service) CreateAsset(ctx context.Context, asset usecase.Asset) (usecase.Asset, error) {
	a := Asset{
		ModelID:     asset.ModelID,
		Type:        string(asset.Type),
		Order:       asset.Order,
		Orientation: asset.Orientation,
		Status:      string(asset.Status),
		Likes:       asset.Likes,
		Comments:    asset.Comments,
		Redirect:    asset.Redirect,
		ImgURL:      asset.ImgURL,
		Colors:      datatypes.JSON(asset.Colors),
	}

	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return usecase.Asset{}, err
	}
	return a.ConvertToUsecase(), nil
}

func (s *service) GetAssetByID(ctx context.Context, id uuid.UUID) (usecase.Asset, error) {
	var a Asset
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return usecase.Asset{}, convertError(err)
	}
	return a.ConvertToUsecase(), nil
}

func (s *service) ListAssets(ctx context.Context, opt usecase.ListAssetsOption) ([]usecase.Asset, error) {
	var assets []Asset

	db := s.db.Model([]Asset{}).WithContext(ctx)

	if opt.ModelID != uuid.Nil {
		db = db.Where("model_id = ?", opt.ModelID)
	}
	if opt.Type != "" {
		db = db.Where("type = ?", string(opt.Type))
	}
	if opt.Status != "" {
		db = db.Where("status = ?", string(opt.Status))
	}

	if err := db.Find(&assets).Error; err != nil {
		return nil, err
	}

	list := make([]usecase.Asset, 0, len(assets))
	for _, a := range assets {
		list = append(list, a.ConvertToUsecase())
	}
	return list, nil
}

func (s *service) FindAssetByOrder(ctx context.Context, modelID uuid.UUID, t usecase.AssetType, order int) (usecase.Asset, error) {
	var a Asset
	err := s.db.WithContext(ctx).
		Where("model_id = ? AND type = ? AND \"order\" = ?", modelID, string(t), order).
		First(&a).Error
	if err != nil {
		return usecase.Asset{}, convertError(err)
	}
	return a.ConvertToUsecase(), nil
}

// GetMaxAssetOrder returns the highest order in the model's partition,
// 0 when empty. A nil type spans every partition the model owns.
func (s *service) GetMaxAssetOrder(ctx context.Context, modelID uuid.UUID, t *usecase.AssetType) (int, error) {
	db := s.db.Model([]Asset{}).WithContext(ctx).Where("model_id = ?", modelID)
	if t != nil {
		db = db.Where("type = ?", string(*t))
	}

	var max int
	err := db.Select(`COALESCE(MAX("order"), 0)`).Scan(&max).Error
	return max, err
}

func (s *service) UpdateAsset(ctx context.Context, asset usecase.Asset) (usecase.Asset, error) {
	updates := map[string]any{
		"type":        string(asset.Type),
		"order":       asset.Order,
		"orientation": asset.Orientation,
		"status":      string(asset.Status),
		"likes":       asset.Likes,
		"comments":    asset.Comments,
		"redirect":    asset.Redirect,
		"img_url":     asset.ImgURL,
	}
	if asset.Colors != nil {
		updates["colors"] = datatypes.JSON(asset.Colors)
	}

	res := s.db.WithContext(ctx).Model(&Asset{}).Where("id = ?", asset.ID).Updates(updates)
	if res.Error != nil {
		return usecase.Asset{}, res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.Asset{}, fmt.Errorf("%w: asset %s", usecase.ErrNotFound, asset.ID)
	}

	return s.GetAssetByID(ctx, asset.ID)
}

func (s *service) UpdateAssetOrder(ctx context.Context, id uuid.UUID, order int) error {
	res := s.db.WithContext(ctx).Model(&Asset{}).Where("id = ?", id).Update("order", order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: asset %s", usecase.ErrNotFound, id)
	}
	return nil
}

// UpdateAssetOrders applies all updates in one transaction; readers see
// either none or all of them.
func (s *service) UpdateAssetOrders(ctx context.Context, updates []usecase.AssetOrderUpdate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, up := range updates {
			res := tx.Model(&Asset{}).Where("id = ?", up.ID).Update("order", up.Order)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: asset %s", usecase.ErrNotFound, up.ID)
			}
		}
		return nil
	})
}

func (s *service) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Asset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: asset %s", usecase.ErrNotFound, id)
	}
	return nil
}

func (s *service) BulkCreateAssets(ctx context.Context, assets []usecase.Asset) error {
	rows := make([]Asset, 0, len(assets))
	for _, asset := range assets {
		rows = append(rows, Asset{
			ModelID:     asset.ModelID,
			Type:        string(asset.Type),
			Order:       asset.Order,
			Orientation: asset.Orientation,
			Status:      string(asset.Status),
			Likes:       asset.Likes,
			Comments:    asset.Comments,
			Redirect:    asset.Redirect,
			ImgURL:      asset.ImgURL,
			Colors:      datatypes.JSON(asset.Colors),
		})
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *service) DeleteAssetsByType(ctx context.Context, modelID uuid.UUID, t usecase.AssetType) error {
	return s.db.WithContext(ctx).
		Where("model_id = ? AND type = ?", modelID, string(t)).
		Delete(&Asset{}).Error
}

// Convert core model to Usecase
func (a Asset) ConvertToUsecase() usecase.Asset {
	return usecase.Asset{
		ID:          a.ID,
		ModelID:     a.ModelID,
		Type:        usecase.AssetType(a.Type),
		Order:       a.Order,
		Orientation: a.Orientation,
		Status:      usecase.AssetStatus(a.Status),
		Likes:       a.Likes,
		Comments:    a.Comments,
		Redirect:    a.Redirect,
		ImgURL:      a.ImgURL,
		Colors:      []byte(a.Colors),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
