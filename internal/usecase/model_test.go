package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reignagency/reign/internal/config"
)

func TestCreateModel_SlugDerivedFromName(t *testing.T) {
	uc, _ := newTestUsecase(t)

	m, err := uc.CreateModel(context.Background(), CreateModelOption{
		Model: Model{Name: "Naomi W."},
	})
	require.NoError(t, err)
	assert.Equal(t, "naomi-w", m.Slug)
}

func TestCreateModel_CoverUploadFailureAborts(t *testing.T) {
	uc, env := newTestUsecase(t)
	env.storage.uploadErr = errBoom

	_, err := uc.CreateModel(context.Background(), CreateModelOption{
		Model:            Model{Name: "Naomi"},
		Cover:            []byte("img"),
		CoverContentType: "image/jpeg",
	})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Empty(t, env.repo.models)
}

func TestGetModelProfile_GroupsActiveAssetsOnly(t *testing.T) {
	t.Setenv(config.ENV_KEY_PUBLIC_SITE_URL, "https://reignagency.com")
	uc, env := newTestUsecase(t)
	ctx := context.Background()

	m := seedModel(env.repo, "naomi")
	env.repo.seedAsset(m.ID, AssetTypeCarousel, 1, AssetStatusActive)
	env.repo.seedAsset(m.ID, AssetTypeCarousel, 2, AssetStatusInactive)
	env.repo.seedAsset(m.ID, AssetTypePolaroid, 1, AssetStatusActive)

	profile, err := uc.GetModelProfile(ctx, m.Slug)
	require.NoError(t, err)

	assert.Equal(t, m.ID, profile.Model.ID)
	assert.Len(t, profile.Assets.Carousel, 1, "inactive assets stay off the public profile")
	assert.Len(t, profile.Assets.Polaroid, 1)
	assert.True(t, strings.HasPrefix(profile.QRCode, "data:image/png;base64,"))
}

func TestGetModelProfile_UnknownSlug(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.GetModelProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteModel_RemovesAssetsAndImages(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()

	m := seedModel(env.repo, "naomi")
	a := env.repo.seedAsset(m.ID, AssetTypeCarousel, 1, AssetStatusActive)
	b := env.repo.seedAsset(m.ID, AssetTypePolaroid, 1, AssetStatusActive)

	require.NoError(t, uc.DeleteModel(ctx, m.ID))

	assert.NotContains(t, env.repo.models, m.ID)
	assert.NotContains(t, env.repo.assets, a.ID)
	assert.NotContains(t, env.repo.assets, b.ID)
	assert.Len(t, env.storage.deletes, 2)
}

func TestDeleteModel_ImageFailuresDoNotBlock(t *testing.T) {
	uc, env := newTestUsecase(t)
	env.storage.deleteErr = errBoom

	m := seedModel(env.repo, "naomi")
	env.repo.seedAsset(m.ID, AssetTypeCarousel, 1, AssetStatusActive)

	require.NoError(t, uc.DeleteModel(context.Background(), m.ID))
	assert.Empty(t, env.repo.models)
	assert.Empty(t, env.repo.assets)
}
