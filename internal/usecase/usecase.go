package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

func New(
	repo Repository,
	fsp ImageStorage,
	mp Mailer,
	ig InstagramProvider,
	eb EventBroker,
	qc TaskClient,
	logger *slog.Logger,
) Usecase {
	return Usecase{
		repo:         repo,
		imageStorage: fsp,
		mailer:       mp,
		instagram:    ig,
		events:       eb,
		tasks:        qc,
		logger:       logger,
	}
}

type Repository interface {
	Health() map[string]string
	Close() error

	GetUserByID(context.Context, uuid.UUID) (User, error)
	GetUserByEmail(context.Context, string) (User, error)
	CreateUser(context.Context, User) (User, error)

	CreateSession(context.Context, Session) (Session, error)
	GetSessionByToken(context.Context, string) (Session, error)
	DeleteSession(context.Context, string) error

	ListModels(context.Context, ListModelsOption) ([]Model, int, error)
	GetModelByID(context.Context, uuid.UUID) (Model, error)
	GetModelBySlug(context.Context, string) (Model, error)
	CreateModel(context.Context, Model) (Model, error)
	UpdateModel(context.Context, Model) (Model, error)
	DeleteModel(context.Context, uuid.UUID) error

	CreateAsset(context.Context, Asset) (Asset, error)
	GetAssetByID(context.Context, uuid.UUID) (Asset, error)
	ListAssets(context.Context, ListAssetsOption) ([]Asset, error)
	FindAssetByOrder(ctx context.Context, modelID uuid.UUID, t AssetType, order int) (Asset, error)
	GetMaxAssetOrder(ctx context.Context, modelID uuid.UUID, t *AssetType) (int, error)
	UpdateAsset(context.Context, Asset) (Asset, error)
	UpdateAssetOrder(ctx context.Context, id uuid.UUID, order int) error
	UpdateAssetOrders(context.Context, []AssetOrderUpdate) error
	DeleteAsset(context.Context, uuid.UUID) error
	BulkCreateAssets(context.Context, []Asset) error
	DeleteAssetsByType(ctx context.Context, modelID uuid.UUID, t AssetType) error

	ListBookings(context.Context, ListBookingsOption) ([]Booking, int, error)
	GetBookingByID(context.Context, uuid.UUID) (Booking, error)
	CreateBooking(context.Context, Booking) (Booking, error)
	UpdateBooking(context.Context, Booking) (Booking, error)
	DeleteBooking(context.Context, uuid.UUID) error
}

// ImageStorage stores uploaded binaries and returns a stable public URL.
type ImageStorage interface {
	UploadImage(ctx context.Context, name string, data []byte, contentType string) (string, error)
	DeleteImage(ctx context.Context, url string) error
}

type Mailer interface {
	SendEmail(ctx context.Context, email Email) error
}

type InstagramProvider interface {
	FetchPosts(ctx context.Context, username string, limit int) ([]InstagramPost, error)
}

type EventBroker interface {
	PublishBookingEvent(ctx context.Context, e BookingEvent) error
	SubscribeBookingEvents(ctx context.Context) (<-chan BookingEvent, func(), error)
}

type TaskClient interface {
	EnqueueBookingNotify(ctx context.Context, bookingID uuid.UUID) error
	EnqueueInstagramSync(ctx context.Context, modelID uuid.UUID) error
}

type Usecase struct {
	repo         Repository
	imageStorage ImageStorage
	mailer       Mailer
	instagram    InstagramProvider
	events       EventBroker
	tasks        TaskClient
	logger       *slog.Logger
}

func (u Usecase) Health() map[string]string {
	return u.repo.Health()
}

func (u Usecase) Close() error {
	return u.repo.Close()
}
