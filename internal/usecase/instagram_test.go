package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedModel(r *fakeRepo, igUsername string) Model {
	m := Model{
		ID:         uuid.New(),
		Name:       "Test Model",
		Slug:       "test-model-" + uuid.NewString()[:8],
		IGUsername: igUsername,
		Status:     "active",
	}
	r.models[m.ID] = m
	return m
}

func TestSyncModelInstagram_ReplacesBucket(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()
	m := seedModel(env.repo, "testmodel")

	// Stale posts from a previous sync plus an unrelated carousel asset.
	stale := env.repo.seedAsset(m.ID, AssetTypeInstagram, 1, AssetStatusActive)
	keep := env.repo.seedAsset(m.ID, AssetTypeCarousel, 1, AssetStatusActive)

	env.instagram.posts["testmodel"] = []InstagramPost{
		{URL: "https://instagram.com/p/1", DisplayURL: "https://img/1", Likes: 10, Comments: 2},
		{URL: "https://instagram.com/p/2", DisplayURL: "https://img/2", Likes: 20, Comments: 4},
	}

	require.NoError(t, uc.SyncModelInstagram(ctx, m.ID))

	assert.NotContains(t, env.repo.assets, stale.ID)
	assert.Contains(t, env.repo.assets, keep.ID, "other buckets untouched")

	igAssets, err := env.repo.ListAssets(ctx, ListAssetsOption{ModelID: m.ID, Type: AssetTypeInstagram})
	require.NoError(t, err)
	require.Len(t, igAssets, 2)

	sortAssets(igAssets)
	assert.Equal(t, 1, igAssets[0].Order, "order follows fetch position")
	assert.Equal(t, "https://instagram.com/p/1", igAssets[0].Redirect)
	assert.Equal(t, 10, igAssets[0].Likes)
	assert.Equal(t, 2, igAssets[1].Order)
}

func TestSyncModelInstagram_FetchFailureKeepsExisting(t *testing.T) {
	uc, env := newTestUsecase(t)
	m := seedModel(env.repo, "testmodel")
	existing := env.repo.seedAsset(m.ID, AssetTypeInstagram, 1, AssetStatusActive)

	env.instagram.err = errBoom

	err := uc.SyncModelInstagram(context.Background(), m.ID)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, env.repo.assets, existing.ID, "fetch happens before anything is removed")
}

func TestSyncModelInstagram_NoUsername(t *testing.T) {
	uc, env := newTestUsecase(t)
	m := seedModel(env.repo, "")

	err := uc.SyncModelInstagram(context.Background(), m.ID)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSyncAllInstagram_ContinuesPastFailures(t *testing.T) {
	uc, env := newTestUsecase(t)
	ctx := context.Background()

	good := seedModel(env.repo, "good")
	seedModel(env.repo, "") // skipped, no username
	bad := seedModel(env.repo, "bad")
	badStale := env.repo.seedAsset(bad.ID, AssetTypeInstagram, 1, AssetStatusActive)

	env.instagram.posts["good"] = []InstagramPost{
		{URL: "https://instagram.com/p/1", DisplayURL: "https://img/1"},
	}
	env.instagram.errFor = map[string]error{"bad": errBoom}

	err := uc.SyncAllInstagram(ctx)
	require.Error(t, err, "summary error reports the failed account")

	igAssets, err := env.repo.ListAssets(ctx, ListAssetsOption{ModelID: good.ID, Type: AssetTypeInstagram})
	require.NoError(t, err)
	assert.Len(t, igAssets, 1, "healthy accounts still synced")
	assert.Contains(t, env.repo.assets, badStale.ID, "failed account keeps its current set")
}
