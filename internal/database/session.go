package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/reignagency/reign/internal/usecase"
)

type Session struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Token     string    `gorm:"column:token;type:varchar(512);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *service) CreateSession(ctx context.Context, session usecase.Session) (usecase.Session, error) {
	row := Session{
		UserID: session.UserID,
		Token:  session.Token,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return usecase.Session{}, err
	}
	return row.ConvertToUsecase(), nil
}

func (s *service) GetSessionByToken(ctx context.Context, token string) (usecase.Session, error) {
	var row Session
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&row).Error; err != nil {
		return usecase.Session{}, convertError(err)
	}
	return row.ConvertToUsecase(), nil
}

func (s *service) DeleteSession(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&Session{}).Error
}

// Convert core model to Usecase
func (s Session) ConvertToUsecase() usecase.Session {
	return usecase.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		Token:     s.Token,
		CreatedAt: s.CreatedAt,
	}
}
