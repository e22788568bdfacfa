package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/reignagency/reign/internal/usecase"
)

type Booking struct {
	ID           string `json:"id"`
	BrandName    string `json:"brand_name"`
	ContactName  string `json:"contact_name"`
	ShootDate    string `json:"shoot_date"`
	BookingHour  string `json:"booking_hour,omitzero"`
	WANumber     string `json:"wa_number,omitzero"`
	Email        string `json:"email,omitzero"`
	DesiredModel string `json:"desired_model,omitzero"`
	Usages       string `json:"usages,omitzero"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at,omitzero"`
	UpdatedAt    string `json:"updated_at,omitzero"`
	User         *User  `json:"user,omitempty"`
}

func toBooking(b usecase.Booking) Booking {
	out := Booking{
		ID:           b.ID.String(),
		BrandName:    b.BrandName,
		ContactName:  b.ContactName,
		ShootDate:    b.ShootDate.Format(time.RFC3339),
		BookingHour:  b.BookingHour,
		WANumber:     b.WANumber,
		Email:        b.Email,
		DesiredModel: b.DesiredModel,
		Usages:       b.Usages,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    b.UpdatedAt.Format(time.RFC3339),
	}
	if b.User != nil {
		u := toUser(*b.User)
		out.User = &u
	}
	return out
}

type ListBookingsRequest struct {
	Skip   int    `query:"skip"`
	Limit  int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
	Status string `query:"status" validate:"omitempty,oneof=ongoing confirmed completed cancelled"`
}

func (s *Server) ListBookings(ctx echo.Context) error {
	var req = ListBookingsRequest{Limit: 20}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	list, total, err := s.server.ListBookings(ctx.Request().Context(), usecase.ListBookingsOption{
		Skip:   req.Skip,
		Limit:  req.Limit,
		Status: req.Status,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	bookings := make([]Booking, 0, len(list))
	for _, b := range list {
		bookings = append(bookings, toBooking(b))
	}

	return ctx.JSON(200, Res{
		Data: bookings,
		Meta: &Meta{
			Total: total,
			Skip:  req.Skip,
			Limit: req.Limit,
		},
	})
}

type CreateBookingRequest struct {
	BrandName    string `json:"brand_name" validate:"required"`
	ContactName  string `json:"contact_name" validate:"required"`
	ShootDate    string `json:"shoot_date" validate:"required"`
	BookingHour  string `json:"booking_hour"`
	WANumber     string `json:"wa_number"`
	Email        string `json:"email" validate:"omitempty,email"`
	DesiredModel string `json:"desired_model"`
	Usages       string `json:"usages"`
}

func (s *Server) CreateBooking(ctx echo.Context) error {
	var req CreateBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	shootDate, err := time.Parse(time.RFC3339, req.ShootDate)
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "shoot_date must be RFC3339"})
	}

	b, err := s.server.CreateBooking(ctx.Request().Context(), usecase.Booking{
		BrandName:    req.BrandName,
		ContactName:  req.ContactName,
		ShootDate:    shootDate,
		BookingHour:  req.BookingHour,
		WANumber:     req.WANumber,
		Email:        req.Email,
		DesiredModel: req.DesiredModel,
		Usages:       req.Usages,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toBooking(b)})
}

func (s *Server) UpdateBooking(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	var req CreateBookingRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	shootDate, err := time.Parse(time.RFC3339, req.ShootDate)
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "shoot_date must be RFC3339"})
	}

	b, err := s.server.UpdateBooking(ctx.Request().Context(), id, usecase.Booking{
		BrandName:    req.BrandName,
		ContactName:  req.ContactName,
		ShootDate:    shootDate,
		BookingHour:  req.BookingHour,
		WANumber:     req.WANumber,
		Email:        req.Email,
		DesiredModel: req.DesiredModel,
		Usages:       req.Usages,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toBooking(b)})
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ongoing confirmed completed cancelled"`
}

func (s *Server) UpdateBookingStatus(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	var req UpdateBookingStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	b, err := s.server.UpdateBookingStatus(ctx.Request().Context(), id, req.Status)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toBooking(b)})
}

func (s *Server) DeleteBooking(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	if err := s.server.DeleteBooking(ctx.Request().Context(), id); err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "booking deleted"})
}
