package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository. Write helpers mirror the real
// store closely enough for ordering semantics: UpdateAssetOrders is
// all-or-nothing, single updates bump UpdatedAt.
type fakeRepo struct {
	assets   map[uuid.UUID]Asset
	models   map[uuid.UUID]Model
	bookings map[uuid.UUID]Booking
	users    map[uuid.UUID]User
	sessions map[string]Session

	now time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		assets:   map[uuid.UUID]Asset{},
		models:   map[uuid.UUID]Model{},
		bookings: map[uuid.UUID]Booking{},
		users:    map[uuid.UUID]User{},
		sessions: map[string]Session{},
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tick advances the fake clock so successive writes get distinct
// UpdatedAt values.
func (r *fakeRepo) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *fakeRepo) Health() map[string]string { return map[string]string{"status": "up"} }
func (r *fakeRepo) Close() error              { return nil }

func (r *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (User, error) {
	u, ok := r.users[id]
	if !ok {
		return User{}, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return u, nil
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("%w: user %s", ErrNotFound, email)
}

func (r *fakeRepo) CreateUser(_ context.Context, u User) (User, error) {
	u.ID = uuid.New()
	u.CreatedAt = r.tick()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeRepo) CreateSession(_ context.Context, s Session) (Session, error) {
	s.ID = uuid.New()
	s.CreatedAt = r.tick()
	r.sessions[s.Token] = s
	return s, nil
}

func (r *fakeRepo) GetSessionByToken(_ context.Context, token string) (Session, error) {
	s, ok := r.sessions[token]
	if !ok {
		return Session{}, fmt.Errorf("%w: session", ErrNotFound)
	}
	return s, nil
}

func (r *fakeRepo) DeleteSession(_ context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *fakeRepo) ListModels(_ context.Context, opt ListModelsOption) ([]Model, int, error) {
	var list []Model
	for _, m := range r.models {
		if opt.Status != "" && m.Status != opt.Status {
			continue
		}
		list = append(list, m)
	}
	return list, len(list), nil
}

func (r *fakeRepo) GetModelByID(_ context.Context, id uuid.UUID) (Model, error) {
	m, ok := r.models[id]
	if !ok {
		return Model{}, fmt.Errorf("%w: model %s", ErrNotFound, id)
	}
	return m, nil
}

func (r *fakeRepo) GetModelBySlug(_ context.Context, slug string) (Model, error) {
	for _, m := range r.models {
		if m.Slug == slug {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("%w: model %s", ErrNotFound, slug)
}

func (r *fakeRepo) CreateModel(_ context.Context, m Model) (Model, error) {
	m.ID = uuid.New()
	m.CreatedAt = r.tick()
	m.UpdatedAt = m.CreatedAt
	r.models[m.ID] = m
	return m, nil
}

func (r *fakeRepo) UpdateModel(_ context.Context, m Model) (Model, error) {
	if _, ok := r.models[m.ID]; !ok {
		return Model{}, fmt.Errorf("%w: model %s", ErrNotFound, m.ID)
	}
	m.UpdatedAt = r.tick()
	r.models[m.ID] = m
	return m, nil
}

func (r *fakeRepo) DeleteModel(_ context.Context, id uuid.UUID) error {
	if _, ok := r.models[id]; !ok {
		return fmt.Errorf("%w: model %s", ErrNotFound, id)
	}
	delete(r.models, id)
	return nil
}

func (r *fakeRepo) CreateAsset(_ context.Context, a Asset) (Asset, error) {
	a.ID = uuid.New()
	a.CreatedAt = r.tick()
	a.UpdatedAt = a.CreatedAt
	r.assets[a.ID] = a
	return a, nil
}

func (r *fakeRepo) GetAssetByID(_ context.Context, id uuid.UUID) (Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return Asset{}, fmt.Errorf("%w: asset %s", ErrNotFound, id)
	}
	return a, nil
}

func (r *fakeRepo) ListAssets(_ context.Context, opt ListAssetsOption) ([]Asset, error) {
	var list []Asset
	for _, a := range r.assets {
		if opt.ModelID != uuid.Nil && a.ModelID != opt.ModelID {
			continue
		}
		if opt.Type != "" && a.Type != opt.Type {
			continue
		}
		if opt.Status != "" && a.Status != opt.Status {
			continue
		}
		list = append(list, a)
	}
	return list, nil
}

func (r *fakeRepo) FindAssetByOrder(_ context.Context, modelID uuid.UUID, t AssetType, order int) (Asset, error) {
	for _, a := range r.assets {
		if a.ModelID == modelID && a.Type == t && a.Order == order {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("%w: no asset at order %d", ErrNotFound, order)
}

func (r *fakeRepo) GetMaxAssetOrder(_ context.Context, modelID uuid.UUID, t *AssetType) (int, error) {
	var max int
	for _, a := range r.assets {
		if a.ModelID != modelID {
			continue
		}
		if t != nil && a.Type != *t {
			continue
		}
		if a.Order > max {
			max = a.Order
		}
	}
	return max, nil
}

func (r *fakeRepo) UpdateAsset(_ context.Context, a Asset) (Asset, error) {
	if _, ok := r.assets[a.ID]; !ok {
		return Asset{}, fmt.Errorf("%w: asset %s", ErrNotFound, a.ID)
	}
	a.UpdatedAt = r.tick()
	r.assets[a.ID] = a
	return a, nil
}

func (r *fakeRepo) UpdateAssetOrder(_ context.Context, id uuid.UUID, order int) error {
	a, ok := r.assets[id]
	if !ok {
		return fmt.Errorf("%w: asset %s", ErrNotFound, id)
	}
	a.Order = order
	a.UpdatedAt = r.tick()
	r.assets[id] = a
	return nil
}

func (r *fakeRepo) UpdateAssetOrders(ctx context.Context, updates []AssetOrderUpdate) error {
	for _, up := range updates {
		if _, ok := r.assets[up.ID]; !ok {
			return fmt.Errorf("%w: asset %s", ErrNotFound, up.ID)
		}
	}
	for _, up := range updates {
		if err := r.UpdateAssetOrder(ctx, up.ID, up.Order); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRepo) DeleteAsset(_ context.Context, id uuid.UUID) error {
	if _, ok := r.assets[id]; !ok {
		return fmt.Errorf("%w: asset %s", ErrNotFound, id)
	}
	delete(r.assets, id)
	return nil
}

func (r *fakeRepo) BulkCreateAssets(ctx context.Context, assets []Asset) error {
	for _, a := range assets {
		if _, err := r.CreateAsset(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRepo) DeleteAssetsByType(_ context.Context, modelID uuid.UUID, t AssetType) error {
	for id, a := range r.assets {
		if a.ModelID == modelID && a.Type == t {
			delete(r.assets, id)
		}
	}
	return nil
}

func (r *fakeRepo) ListBookings(_ context.Context, opt ListBookingsOption) ([]Booking, int, error) {
	var list []Booking
	for _, b := range r.bookings {
		if opt.Status != "" && b.Status != opt.Status {
			continue
		}
		list = append(list, b)
	}
	return list, len(list), nil
}

func (r *fakeRepo) GetBookingByID(_ context.Context, id uuid.UUID) (Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return Booking{}, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	return b, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b Booking) (Booking, error) {
	b.ID = uuid.New()
	b.CreatedAt = r.tick()
	b.UpdatedAt = b.CreatedAt
	r.bookings[b.ID] = b
	return b, nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b Booking) (Booking, error) {
	if _, ok := r.bookings[b.ID]; !ok {
		return Booking{}, fmt.Errorf("%w: booking %s", ErrNotFound, b.ID)
	}
	b.UpdatedAt = r.tick()
	r.bookings[b.ID] = b
	return b, nil
}

func (r *fakeRepo) DeleteBooking(_ context.Context, id uuid.UUID) error {
	if _, ok := r.bookings[id]; !ok {
		return fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	delete(r.bookings, id)
	return nil
}

// fakeStorage is safe for concurrent use; DeleteModel fans image
// deletes out over a worker group.
type fakeStorage struct {
	mu        sync.Mutex
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func (f *fakeStorage) UploadImage(_ context.Context, name string, _ []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	url := "https://cdn.test/" + name
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeStorage) DeleteImage(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, url)
	return nil
}

type fakeMailer struct {
	sent []Email
	err  error
}

func (f *fakeMailer) SendEmail(_ context.Context, e Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}

type fakeInstagram struct {
	posts  map[string][]InstagramPost
	err    error
	errFor map[string]error
}

func (f *fakeInstagram) FetchPosts(_ context.Context, username string, limit int) ([]InstagramPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := f.errFor[username]; err != nil {
		return nil, err
	}
	posts := f.posts[username]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

type fakeBroker struct {
	published []BookingEvent
	err       error
}

func (f *fakeBroker) PublishBookingEvent(_ context.Context, e BookingEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, e)
	return nil
}

func (f *fakeBroker) SubscribeBookingEvents(ctx context.Context) (<-chan BookingEvent, func(), error) {
	ch := make(chan BookingEvent)
	return ch, func() { close(ch) }, nil
}

type fakeTasks struct {
	bookingNotifies []uuid.UUID
	instagramSyncs  []uuid.UUID
	err             error
}

func (f *fakeTasks) EnqueueBookingNotify(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.bookingNotifies = append(f.bookingNotifies, id)
	return nil
}

func (f *fakeTasks) EnqueueInstagramSync(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.instagramSyncs = append(f.instagramSyncs, id)
	return nil
}

type testEnv struct {
	repo      *fakeRepo
	storage   *fakeStorage
	mailer    *fakeMailer
	instagram *fakeInstagram
	broker    *fakeBroker
	tasks     *fakeTasks
}

func newTestUsecase(t *testing.T) (Usecase, *testEnv) {
	t.Helper()
	env := &testEnv{
		repo:      newFakeRepo(),
		storage:   &fakeStorage{},
		mailer:    &fakeMailer{},
		instagram: &fakeInstagram{posts: map[string][]InstagramPost{}},
		broker:    &fakeBroker{},
		tasks:     &fakeTasks{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := New(env.repo, env.storage, env.mailer, env.instagram, env.broker, env.tasks, logger)
	return uc, env
}

// seedAsset inserts directly, bypassing the create flow.
func (r *fakeRepo) seedAsset(modelID uuid.UUID, t AssetType, order int, status AssetStatus) Asset {
	a := Asset{
		ID:          uuid.New(),
		ModelID:     modelID,
		Type:        t,
		Order:       order,
		Orientation: "portrait",
		Status:      status,
		ImgURL:      fmt.Sprintf("https://cdn.test/seed-%d", order),
		CreatedAt:   r.tick(),
	}
	a.UpdatedAt = a.CreatedAt
	r.assets[a.ID] = a
	return a
}

var errBoom = errors.New("boom")
