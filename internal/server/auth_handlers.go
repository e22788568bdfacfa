package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reignagency/reign/internal/usecase"
)

type User struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number,omitzero"`
	CreatedAt   string `json:"created_at,omitzero"`
	UpdatedAt   string `json:"updated_at,omitzero"`
}

func toUser(u usecase.User) User {
	return User{
		ID:          u.ID.String(),
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.Format(time.RFC3339),
	}
}

const refreshCookieName = "refresh_token"

func setRefreshCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/v1/auth",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
	})
}

type RegisterUserRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number"`
}

func (s *Server) RegisterUser(ctx echo.Context) error {
	var req RegisterUserRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	u, err := s.server.RegisterUser(ctx.Request().Context(), usecase.RegisterUser{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toUser(u)})
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignInResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

func (s *Server) SignIn(ctx echo.Context) error {
	var req SignInRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	res, err := s.server.SignIn(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errJSON(ctx, err)
	}

	setRefreshCookie(ctx, res.RefreshToken)

	return ctx.JSON(200, Res{Data: SignInResponse{
		AccessToken: res.AccessToken,
		User:        toUser(res.User),
	}})
}

func (s *Server) RefreshSession(ctx echo.Context) error {
	cookie, err := ctx.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return ctx.JSON(401, map[string]string{"error": "refresh token is required"})
	}

	res, err := s.server.RefreshSession(ctx.Request().Context(), cookie.Value)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: SignInResponse{
		AccessToken: res.AccessToken,
		User:        toUser(res.User),
	}})
}

func (s *Server) SignOut(ctx echo.Context) error {
	cookie, err := ctx.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return ctx.JSON(401, map[string]string{"error": "refresh token is required"})
	}

	if err := s.server.SignOut(ctx.Request().Context(), cookie.Value); err != nil {
		return errJSON(ctx, err)
	}

	// Expire the cookie client-side too.
	ctx.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})

	return ctx.JSON(200, Res{Message: "signed out"})
}
