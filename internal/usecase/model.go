package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"golang.org/x/sync/errgroup"

	"github.com/reignagency/reign/internal/config"
)

// Model is an artist represented by the agency.
type Model struct {
	ID         uuid.UUID
	Name       string
	Slug       string
	IGUsername string
	Gender     string
	Height     int
	Bust       int
	Waist      int
	Hips       int
	ShoeSize   int
	Hair       string
	Eyes       string
	CoverImg   string
	Status     string
	UserID     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time

	Assets []Asset
}

type ListModelsOption struct {
	Skip   int
	Limit  int
	Status string
}

func (u Usecase) ListModels(ctx context.Context, opt ListModelsOption) ([]Model, int, error) {
	return u.repo.ListModels(ctx, opt)
}

// ModelProfile is the public profile payload: the model's data plus its
// assets grouped into presentation buckets and a comp-card QR code
// linking back to the profile page.
type ModelProfile struct {
	Model  Model
	Assets GroupedAssets
	QRCode string
}

func (u Usecase) GetModelProfile(ctx context.Context, slug string) (ModelProfile, error) {
	if slug == "" {
		return ModelProfile{}, fmt.Errorf("%w: slug is required", ErrInvalidArgument)
	}

	m, err := u.repo.GetModelBySlug(ctx, slug)
	if err != nil {
		return ModelProfile{}, err
	}

	assets, err := u.repo.ListAssets(ctx, ListAssetsOption{
		ModelID: m.ID,
		Status:  AssetStatusActive,
	})
	if err != nil {
		return ModelProfile{}, err
	}

	profile := ModelProfile{
		Model:  m,
		Assets: groupAssets(assets),
	}

	if site := os.Getenv(config.ENV_KEY_PUBLIC_SITE_URL); site != "" {
		png, err := qrcode.Encode(fmt.Sprintf("%s/models/%s", site, m.Slug), qrcode.Low, 128)
		if err == nil {
			profile.QRCode = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
		}
	}

	return profile, nil
}

type CreateModelOption struct {
	Model

	// Cover replaces/sets the cover image when non-empty.
	Cover            []byte
	CoverContentType string
}

func (u Usecase) CreateModel(ctx context.Context, opt CreateModelOption) (Model, error) {
	if opt.Name == "" {
		return Model{}, fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}

	m := opt.Model
	if m.Slug == "" {
		m.Slug = slugify(m.Name)
	}
	if len(opt.Cover) > 0 {
		name := fmt.Sprintf("covers/%s-%d", m.Slug, time.Now().UnixNano())
		url, err := u.imageStorage.UploadImage(ctx, name, opt.Cover, opt.CoverContentType)
		if err != nil {
			return Model{}, fmt.Errorf("%w: cover upload: %v", ErrUpstream, err)
		}
		m.CoverImg = url
	}

	return u.repo.CreateModel(ctx, m)
}

func (u Usecase) UpdateModel(ctx context.Context, id uuid.UUID, opt CreateModelOption) (Model, error) {
	existing, err := u.repo.GetModelByID(ctx, id)
	if err != nil {
		return Model{}, err
	}

	m := opt.Model
	m.ID = existing.ID
	if len(opt.Cover) > 0 {
		name := fmt.Sprintf("covers/%s-%d", existing.Slug, time.Now().UnixNano())
		url, err := u.imageStorage.UploadImage(ctx, name, opt.Cover, opt.CoverContentType)
		if err != nil {
			return Model{}, fmt.Errorf("%w: cover upload: %v", ErrUpstream, err)
		}
		m.CoverImg = url
	} else {
		m.CoverImg = existing.CoverImg
	}

	return u.repo.UpdateModel(ctx, m)
}

// DeleteModel removes the model, its assets and their stored images.
// Image-store failures are logged, not fatal: rows go away regardless.
func (u Usecase) DeleteModel(ctx context.Context, id uuid.UUID) error {
	m, err := u.repo.GetModelByID(ctx, id)
	if err != nil {
		return err
	}

	assets, err := u.repo.ListAssets(ctx, ListAssetsOption{ModelID: m.ID})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, a := range assets {
		g.Go(func() error {
			if err := u.imageStorage.DeleteImage(gctx, a.ImgURL); err != nil {
				u.logger.WarnContext(gctx, "model_delete_asset_image",
					slog.String("asset_id", a.ID.String()),
					slog.String("err", err.Error()))
			}
			return nil
		})
	}
	if m.CoverImg != "" {
		g.Go(func() error {
			if err := u.imageStorage.DeleteImage(gctx, m.CoverImg); err != nil {
				u.logger.WarnContext(gctx, "model_delete_cover_image",
					slog.String("model_id", m.ID.String()),
					slog.String("err", err.Error()))
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, a := range assets {
		if err := u.repo.DeleteAsset(ctx, a.ID); err != nil {
			return err
		}
	}

	return u.repo.DeleteModel(ctx, m.ID)
}

// slugify lowercases and reduces anything non-alphanumeric to single
// dashes. "Naomi W." becomes "naomi-w".
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
