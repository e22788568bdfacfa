package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/reignagency/reign/internal/config"
	"github.com/reignagency/reign/internal/database"
	"github.com/reignagency/reign/internal/email"
	"github.com/reignagency/reign/internal/events"
	"github.com/reignagency/reign/internal/filestorage"
	"github.com/reignagency/reign/internal/instagram"
	"github.com/reignagency/reign/internal/queue"
	"github.com/reignagency/reign/internal/usecase"
)

// Service is everything the HTTP layer needs from the core.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// Close terminates the database connection.
	Close() error

	RegisterUser(context.Context, usecase.RegisterUser) (usecase.User, error)
	SignIn(ctx context.Context, email, password string) (usecase.AuthResult, error)
	RefreshSession(ctx context.Context, refreshToken string) (usecase.AuthResult, error)
	SignOut(ctx context.Context, refreshToken string) error
	VerifyAccessToken(ctx context.Context, token string) (usecase.Claims, error)

	ListModels(context.Context, usecase.ListModelsOption) ([]usecase.Model, int, error)
	GetModelProfile(ctx context.Context, slug string) (usecase.ModelProfile, error)
	CreateModel(context.Context, usecase.CreateModelOption) (usecase.Model, error)
	UpdateModel(context.Context, uuid.UUID, usecase.CreateModelOption) (usecase.Model, error)
	DeleteModel(context.Context, uuid.UUID) error
	SyncModelInstagram(context.Context, uuid.UUID) error

	CreateAsset(context.Context, usecase.CreateAssetOption) (usecase.Asset, error)
	UpdateAsset(context.Context, uuid.UUID, usecase.UpdateAssetOption) (usecase.Asset, error)
	UpdateAssetStatus(ctx context.Context, id uuid.UUID, status string) (usecase.Asset, error)
	UpdateAssetOrder(ctx context.Context, id uuid.UUID, order int) error
	BulkUpdateAssetOrders(context.Context, []usecase.AssetOrderUpdate) error
	DeleteAsset(context.Context, uuid.UUID) error
	ListModelAssets(context.Context, usecase.ListModelAssetsOption) (usecase.GroupedAssets, error)
	LandingPageCover(context.Context) (usecase.Asset, error)

	ListBookings(context.Context, usecase.ListBookingsOption) ([]usecase.Booking, int, error)
	CreateBooking(context.Context, usecase.Booking) (usecase.Booking, error)
	UpdateBooking(context.Context, uuid.UUID, usecase.Booking) (usecase.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status string) (usecase.Booking, error)
	DeleteBooking(context.Context, uuid.UUID) error
	SubscribeBookingEvents(context.Context) (<-chan usecase.BookingEvent, func(), error)
}

type Server struct {
	port int

	server    Service
	validator *validator.Validate
	logger    *slog.Logger
}

// App owns the HTTP server and every connection the API process holds.
type App struct {
	httpServer  *http.Server
	repo        usecase.Repository
	queueClient *queue.Client
	broker      *events.RedisBroker
}

// NewApp wires the full API process: repository, providers, queue client,
// usecase and the echo router on top.
func NewApp(logger *slog.Logger) (*App, error) {
	repo, err := database.New(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	fsp := filestorage.NewMinIOStorage(
		os.Getenv(config.ENV_KEY_MINIO_BUCKET),
		os.Getenv(config.ENV_KEY_MINIO_PUBLIC_PATH),
		os.Getenv(config.ENV_KEY_MINIO_ENDPOINT),
		os.Getenv(config.ENV_KEY_MINIO_ACCESS_KEY),
		os.Getenv(config.ENV_KEY_MINIO_SECRET_KEY),
	)

	mp := email.NewEmailProvider(
		os.Getenv(config.ENV_KEY_SMTP_HOST),
		os.Getenv(config.ENV_KEY_SMTP_USERNAME),
		os.Getenv(config.ENV_KEY_SMTP_PASSWORD),
		os.Getenv(config.ENV_KEY_SMTP_PORT),
		logger,
	)

	ig := instagram.NewApifyProvider(
		os.Getenv(config.ENV_KEY_APIFY_TOKEN),
		os.Getenv(config.ENV_KEY_APIFY_ACTOR_ID),
	)

	redisAddr := fmt.Sprintf("%s:%s",
		os.Getenv(config.ENV_KEY_REDIS_HOST),
		os.Getenv(config.ENV_KEY_REDIS_PORT),
	)
	redisPassword := os.Getenv(config.ENV_KEY_REDIS_PASSWORD)

	eb := events.NewRedisBroker(redisAddr, redisPassword, logger)
	qc := queue.NewClient(redisAddr, redisPassword)

	uc := usecase.New(repo, fsp, mp, ig, eb, qc, logger)

	port, _ := strconv.Atoi(os.Getenv(config.ENV_KEY_PORT))
	s := &Server{
		port:      port,
		server:    uc,
		validator: validator.New(),
		logger:    logger,
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(logger),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return &App{
		httpServer:  httpServer,
		repo:        repo,
		queueClient: qc,
		broker:      eb,
	}, nil
}

func (a *App) Addr() string {
	return a.httpServer.Addr
}

func (a *App) ListenAndServe() error {
	return a.httpServer.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	return errors.Join(
		a.httpServer.Shutdown(ctx),
		a.queueClient.Close(),
		a.broker.Close(),
		a.repo.Close(),
	)
}
