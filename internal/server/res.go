package server

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/reignagency/reign/internal/usecase"
)

type Meta struct {
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

type Res struct {
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// errJSON translates core errors to status codes in one place so the
// handlers stay flat.
func errJSON(ctx echo.Context, err error) error {
	status := 500
	switch {
	case errors.Is(err, usecase.ErrInvalidArgument):
		status = 400
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status = 401
	case errors.Is(err, usecase.ErrNotFound):
		status = 404
	case errors.Is(err, usecase.ErrUpstream):
		status = 502
	}
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}
