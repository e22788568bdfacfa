package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID          uuid.UUID
	FullName    string
	Email       string
	Password    string // bcrypt hash, never the plaintext
	Role        string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RegisterUser struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
}

func (u Usecase) RegisterUser(ctx context.Context, ru RegisterUser) (User, error) {
	if ru.Email == "" || ru.Password == "" {
		return User{}, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(ru.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return u.repo.CreateUser(ctx, User{
		FullName:    ru.FullName,
		Email:       ru.Email,
		Password:    string(hash),
		Role:        "user",
		PhoneNumber: ru.PhoneNumber,
	})
}
