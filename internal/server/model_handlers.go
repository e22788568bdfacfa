package server

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/reignagency/reign/internal/usecase"
)

type Model struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	IGUsername string `json:"ig_username,omitzero"`
	Gender     string `json:"gender,omitzero"`
	Height     int    `json:"height,omitzero"`
	Bust       int    `json:"bust,omitzero"`
	Waist      int    `json:"waist,omitzero"`
	Hips       int    `json:"hips,omitzero"`
	ShoeSize   int    `json:"shoe_size,omitzero"`
	Hair       string `json:"hair,omitzero"`
	Eyes       string `json:"eyes,omitzero"`
	CoverImg   string `json:"cover_img,omitzero"`
	Status     string `json:"status,omitzero"`
	CreatedAt  string `json:"created_at,omitzero"`
	UpdatedAt  string `json:"updated_at,omitzero"`
}

func toModel(m usecase.Model) Model {
	return Model{
		ID:         m.ID.String(),
		Name:       m.Name,
		Slug:       m.Slug,
		IGUsername: m.IGUsername,
		Gender:     m.Gender,
		Height:     m.Height,
		Bust:       m.Bust,
		Waist:      m.Waist,
		Hips:       m.Hips,
		ShoeSize:   m.ShoeSize,
		Hair:       m.Hair,
		Eyes:       m.Eyes,
		CoverImg:   m.CoverImg,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  m.UpdatedAt.Format(time.RFC3339),
	}
}

type ListModelsRequest struct {
	Skip   int    `query:"skip"`
	Limit  int    `query:"limit" validate:"omitempty,gte=1,lte=100"`
	Status string `query:"status" validate:"omitempty,oneof=active inactive"`
}

func (s *Server) ListModels(ctx echo.Context) error {
	var req = ListModelsRequest{Limit: 20}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	list, total, err := s.server.ListModels(ctx.Request().Context(), usecase.ListModelsOption{
		Skip:   req.Skip,
		Limit:  req.Limit,
		Status: req.Status,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	models := make([]Model, 0, len(list))
	for _, m := range list {
		models = append(models, toModel(m))
	}

	return ctx.JSON(200, Res{
		Data: models,
		Meta: &Meta{
			Total: total,
			Skip:  req.Skip,
			Limit: req.Limit,
		},
	})
}

type ModelProfile struct {
	Model  Model         `json:"model"`
	Assets GroupedAssets `json:"assets"`
	QRCode string        `json:"qr_code,omitzero"`
}

func (s *Server) GetModelProfile(ctx echo.Context) error {
	slug := ctx.Param("slug")

	profile, err := s.server.GetModelProfile(ctx.Request().Context(), slug)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: ModelProfile{
		Model:  toModel(profile.Model),
		Assets: toGroupedAssets(profile.Assets),
		QRCode: profile.QRCode,
	}})
}

type CreateModelRequest struct {
	Name       string `form:"name" validate:"required"`
	Slug       string `form:"slug" validate:"omitempty"`
	IGUsername string `form:"ig_username"`
	Gender     string `form:"gender" validate:"omitempty,oneof=female male"`
	Height     int    `form:"height" validate:"omitempty,gte=0"`
	Bust       int    `form:"bust" validate:"omitempty,gte=0"`
	Waist      int    `form:"waist" validate:"omitempty,gte=0"`
	Hips       int    `form:"hips" validate:"omitempty,gte=0"`
	ShoeSize   int    `form:"shoe_size" validate:"omitempty,gte=0"`
	Hair       string `form:"hair"`
	Eyes       string `form:"eyes"`
	Status     string `form:"status" validate:"omitempty,oneof=active inactive"`
}

func (s *Server) CreateModel(ctx echo.Context) error {
	var req CreateModelRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	opt := usecase.CreateModelOption{
		Model: usecase.Model{
			Name:       req.Name,
			Slug:       req.Slug,
			IGUsername: req.IGUsername,
			Gender:     req.Gender,
			Height:     req.Height,
			Bust:       req.Bust,
			Waist:      req.Waist,
			Hips:       req.Hips,
			ShoeSize:   req.ShoeSize,
			Hair:       req.Hair,
			Eyes:       req.Eyes,
			Status:     req.Status,
		},
	}

	if fh, err := ctx.FormFile("cover"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return ctx.JSON(400, map[string]string{"error": err.Error()})
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return ctx.JSON(400, map[string]string{"error": err.Error()})
		}
		opt.Cover = data
		opt.CoverContentType = fh.Header.Get("Content-Type")
	}

	m, err := s.server.CreateModel(ctx.Request().Context(), opt)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toModel(m)})
}

func (s *Server) UpdateModel(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	var req CreateModelRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	opt := usecase.CreateModelOption{
		Model: usecase.Model{
			Name:       req.Name,
			Slug:       req.Slug,
			IGUsername: req.IGUsername,
			Gender:     req.Gender,
			Height:     req.Height,
			Bust:       req.Bust,
			Waist:      req.Waist,
			Hips:       req.Hips,
			ShoeSize:   req.ShoeSize,
			Hair:       req.Hair,
			Eyes:       req.Eyes,
			Status:     req.Status,
		},
	}

	if fh, err := ctx.FormFile("cover"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return ctx.JSON(400, map[string]string{"error": err.Error()})
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return ctx.JSON(400, map[string]string{"error": err.Error()})
		}
		opt.Cover = data
		opt.CoverContentType = fh.Header.Get("Content-Type")
	}

	m, err := s.server.UpdateModel(ctx.Request().Context(), id, opt)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toModel(m)})
}

func (s *Server) DeleteModel(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	if err := s.server.DeleteModel(ctx.Request().Context(), id); err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "model deleted"})
}

func (s *Server) SyncModelInstagram(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	if err := s.server.SyncModelInstagram(ctx.Request().Context(), id); err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "instagram synced"})
}
