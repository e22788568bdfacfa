package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// InstagramPost is one scraped post, already reduced to what the
// instagram bucket needs.
type InstagramPost struct {
	URL        string
	DisplayURL string
	Likes      int
	Comments   int
	TakenAt    time.Time
}

const instagramSyncLimit = 12

// SyncModelInstagram replaces the model's instagram-type assets with the
// latest scraped posts. The fetch happens before anything is removed, so
// a scrape failure leaves the current set untouched. Order follows the
// fetch position.
func (u Usecase) SyncModelInstagram(ctx context.Context, modelID uuid.UUID) error {
	m, err := u.repo.GetModelByID(ctx, modelID)
	if err != nil {
		return err
	}
	if m.IGUsername == "" {
		return fmt.Errorf("%w: model %s has no instagram username", ErrInvalidArgument, modelID)
	}

	posts, err := u.instagram.FetchPosts(ctx, m.IGUsername, instagramSyncLimit)
	if err != nil {
		return fmt.Errorf("%w: instagram fetch for %q: %v", ErrUpstream, m.IGUsername, err)
	}

	assets := make([]Asset, 0, len(posts))
	for i, p := range posts {
		assets = append(assets, Asset{
			ModelID:     m.ID,
			Type:        AssetTypeInstagram,
			Order:       i + 1,
			Orientation: "portrait",
			Status:      AssetStatusActive,
			Likes:       p.Likes,
			Comments:    p.Comments,
			Redirect:    p.URL,
			ImgURL:      p.DisplayURL,
		})
	}

	if err := u.repo.DeleteAssetsByType(ctx, m.ID, AssetTypeInstagram); err != nil {
		return err
	}
	if len(assets) == 0 {
		return nil
	}
	return u.repo.BulkCreateAssets(ctx, assets)
}

// SyncAllInstagram walks every model with an instagram username. One bad
// account doesn't stop the rest.
func (u Usecase) SyncAllInstagram(ctx context.Context) error {
	models, _, err := u.repo.ListModels(ctx, ListModelsOption{})
	if err != nil {
		return err
	}

	var failed int
	for _, m := range models {
		if m.IGUsername == "" {
			continue
		}
		if err := u.SyncModelInstagram(ctx, m.ID); err != nil {
			failed++
			u.logger.ErrorContext(ctx, "instagram_sync_model",
				slog.String("model_id", m.ID.String()),
				slog.String("ig_username", m.IGUsername),
				slog.String("err", err.Error()))
		}
	}

	if failed > 0 {
		return fmt.Errorf("instagram sync: %d model(s) failed", failed)
	}
	return nil
}
