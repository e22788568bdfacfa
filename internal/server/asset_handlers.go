package server

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/reignagency/reign/internal/usecase"
)

type Asset struct {
	ID          string           `json:"id"`
	ModelID     string           `json:"model_id,omitzero"`
	Type        string           `json:"type"`
	Order       int              `json:"order"`
	Orientation string           `json:"orientation"`
	Status      string           `json:"status"`
	Likes       int              `json:"likes,omitzero"`
	Comments    int              `json:"comments,omitzero"`
	Redirect    string           `json:"redirect,omitzero"`
	ImgURL      string           `json:"img_url"`
	Colors      map[int][4]uint8 `json:"colors,omitempty"`
	CreatedAt   string           `json:"created_at,omitzero"`
	UpdatedAt   string           `json:"updated_at,omitzero"`
}

func toAsset(a usecase.Asset) Asset {
	var colors map[int][4]uint8
	if len(a.Colors) > 0 {
		_ = json.Unmarshal(a.Colors, &colors)
	}
	return Asset{
		ID:          a.ID.String(),
		ModelID:     a.ModelID.String(),
		Type:        string(a.Type),
		Order:       a.Order,
		Orientation: a.Orientation,
		Status:      string(a.Status),
		Likes:       a.Likes,
		Comments:    a.Comments,
		Redirect:    a.Redirect,
		ImgURL:      a.ImgURL,
		Colors:      colors,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
}

// BucketAsset is the trimmed projection for the carousel and polaroid
// buckets on public pages.
type BucketAsset struct {
	ID          string `json:"id"`
	ImgURL      string `json:"img_url"`
	Orientation string `json:"orientation"`
	Order       int    `json:"order"`
}

// InstagramBucketAsset additionally carries the post metadata.
type InstagramBucketAsset struct {
	ID          string `json:"id"`
	ImgURL      string `json:"img_url"`
	Orientation string `json:"orientation"`
	Order       int    `json:"order"`
	Redirect    string `json:"redirect"`
	Likes       int    `json:"likes"`
	Comments    int    `json:"comments"`
}

type GroupedAssets struct {
	Carousel  []BucketAsset          `json:"carousel"`
	Polaroid  []BucketAsset          `json:"polaroid"`
	Instagram []InstagramBucketAsset `json:"instagram"`
}

func toGroupedAssets(g usecase.GroupedAssets) GroupedAssets {
	out := GroupedAssets{
		Carousel:  make([]BucketAsset, 0, len(g.Carousel)),
		Polaroid:  make([]BucketAsset, 0, len(g.Polaroid)),
		Instagram: make([]InstagramBucketAsset, 0, len(g.Instagram)),
	}
	for _, a := range g.Carousel {
		out.Carousel = append(out.Carousel, BucketAsset{
			ID:          a.ID.String(),
			ImgURL:      a.ImgURL,
			Orientation: a.Orientation,
			Order:       a.Order,
		})
	}
	for _, a := range g.Polaroid {
		out.Polaroid = append(out.Polaroid, BucketAsset{
			ID:          a.ID.String(),
			ImgURL:      a.ImgURL,
			Orientation: a.Orientation,
			Order:       a.Order,
		})
	}
	for _, a := range g.Instagram {
		out.Instagram = append(out.Instagram, InstagramBucketAsset{
			ID:          a.ID.String(),
			ImgURL:      a.ImgURL,
			Orientation: a.Orientation,
			Order:       a.Order,
			Redirect:    a.Redirect,
			Likes:       a.Likes,
			Comments:    a.Comments,
		})
	}
	return out
}

type CreateAssetRequest struct {
	ModelID     string `form:"model_id" validate:"required,uuid"`
	Type        string `form:"type" validate:"required"`
	Orientation string `form:"orientation" validate:"omitempty,oneof=portrait landscape"`
	Status      string `form:"status" validate:"omitempty,oneof=active inactive"`
	Order       int    `form:"order" validate:"omitempty,gte=0"`
}

func (s *Server) CreateAsset(ctx echo.Context) error {
	var req CreateAssetRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	fh, err := ctx.FormFile("image_file")
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "image_file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}

	modelID, _ := uuid.Parse(req.ModelID)

	asset, err := s.server.CreateAsset(ctx.Request().Context(), usecase.CreateAssetOption{
		ModelID:     modelID,
		Type:        usecase.AssetType(req.Type),
		Order:       req.Order,
		Orientation: req.Orientation,
		Status:      usecase.AssetStatus(req.Status),
		Image:       data,
		ContentType: fh.Header.Get("Content-Type"),
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(201, Res{Data: toAsset(asset)})
}

type ListModelAssetsRequest struct {
	ModelID string `query:"model_id" validate:"required,uuid"`
	Status  string `query:"status" validate:"omitempty"`
}

func (s *Server) ListModelAssets(ctx echo.Context) error {
	var req ListModelAssetsRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	modelID, _ := uuid.Parse(req.ModelID)

	grouped, err := s.server.ListModelAssets(ctx.Request().Context(), usecase.ListModelAssetsOption{
		ModelID: modelID,
		Status:  req.Status,
	})
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toGroupedAssets(grouped)})
}

func (s *Server) LandingPageCover(ctx echo.Context) error {
	asset, err := s.server.LandingPageCover(ctx.Request().Context())
	if err != nil {
		return errJSON(ctx, err)
	}
	return ctx.JSON(200, Res{Data: toAsset(asset)})
}

type UpdateAssetRequest struct {
	Type        string `form:"type" validate:"omitempty"`
	Orientation string `form:"orientation" validate:"omitempty,oneof=portrait landscape"`
}

func (s *Server) UpdateAsset(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	var req UpdateAssetRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	opt := usecase.UpdateAssetOption{
		Type:        usecase.AssetType(req.Type),
		Orientation: req.Orientation,
	}

	// Replacement image is optional on update.
	if fh, err := ctx.FormFile("image_file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return ctx.JSON(400, map[string]string{"error": err.Error()})
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return ctx.JSON(400, map[string]string{"error": err.Error()})
		}
		opt.Image = data
		opt.ContentType = fh.Header.Get("Content-Type")
	}

	asset, err := s.server.UpdateAsset(ctx.Request().Context(), id, opt)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toAsset(asset)})
}

type UpdateAssetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (s *Server) UpdateAssetStatus(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	var req UpdateAssetStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	asset, err := s.server.UpdateAssetStatus(ctx.Request().Context(), id, req.Status)
	if err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Data: toAsset(asset)})
}

type UpdateAssetOrderRequest struct {
	Order int `json:"order" validate:"gte=0"`
}

func (s *Server) UpdateAssetOrder(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	var req UpdateAssetOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	if err := s.server.UpdateAssetOrder(ctx.Request().Context(), id, req.Order); err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "order updated"})
}

type BulkAssetOrderItem struct {
	ID    string `json:"id" validate:"required,uuid"`
	Order int    `json:"order" validate:"gte=0"`
}

type BulkUpdateAssetOrdersRequest struct {
	Items []BulkAssetOrderItem `json:"items" validate:"required,min=1,dive"`
}

func (s *Server) BulkUpdateAssetOrders(ctx echo.Context) error {
	var req BulkUpdateAssetOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	items := make([]usecase.AssetOrderUpdate, 0, len(req.Items))
	for _, it := range req.Items {
		id, _ := uuid.Parse(it.ID)
		items = append(items, usecase.AssetOrderUpdate{ID: id, Order: it.Order})
	}

	if err := s.server.BulkUpdateAssetOrders(ctx.Request().Context(), items); err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "orders updated"})
}

func (s *Server) DeleteAsset(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": "invalid id"})
	}

	if err := s.server.DeleteAsset(ctx.Request().Context(), id); err != nil {
		return errJSON(ctx, err)
	}

	return ctx.JSON(200, Res{Message: "asset deleted"})
}
