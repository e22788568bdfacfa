package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reignagency/reign/internal/usecase"
)

type User struct {
	ID          uuid.UUID       `gorm:"column:id;primaryKey;type:uuid;default:uuid_generate_v4()"`
	FullName    string          `gorm:"column:full_name;type:varchar(255);not null"`
	Email       string          `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password    string          `gorm:"column:password;type:varchar(255);not null"`
	Role        string          `gorm:"column:role;type:varchar(20);not null;default:user"`
	PhoneNumber string          `gorm:"column:phone_number;type:varchar(50)"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	DeletedAt   *gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (User) TableName() string {
	return "users"
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (usecase.User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return usecase.User{}, convertError(err)
	}
	return u.ConvertToUsecase(), nil
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (usecase.User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return usecase.User{}, convertError(err)
	}
	return u.ConvertToUsecase(), nil
}

func (s *service) CreateUser(ctx context.Context, user usecase.User) (usecase.User, error) {
	u := User{
		FullName:    user.FullName,
		Email:       user.Email,
		Password:    user.Password,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
	}

	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return usecase.User{}, err
	}
	return u.ConvertToUsecase(), nil
}

// Convert core model to Usecase
func (u User) ConvertToUsecase() usecase.User {
	return usecase.User{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		Password:    u.Password,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
