package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reignagency/reign/internal/usecase"
)

// stubService panics on anything a test does not stub explicitly.
type stubService struct {
	Service

	updateOrder func(ctx context.Context, id uuid.UUID, order int) error
	bulkOrders  func(ctx context.Context, items []usecase.AssetOrderUpdate) error
	listAssets  func(ctx context.Context, opt usecase.ListModelAssetsOption) (usecase.GroupedAssets, error)
}

func (s *stubService) UpdateAssetOrder(ctx context.Context, id uuid.UUID, order int) error {
	return s.updateOrder(ctx, id, order)
}

func (s *stubService) BulkUpdateAssetOrders(ctx context.Context, items []usecase.AssetOrderUpdate) error {
	return s.bulkOrders(ctx, items)
}

func (s *stubService) ListModelAssets(ctx context.Context, opt usecase.ListModelAssetsOption) (usecase.GroupedAssets, error) {
	return s.listAssets(ctx, opt)
}

func newTestServer(svc Service) *Server {
	return &Server{
		server:    svc,
		validator: validator.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestUpdateAssetOrderHandler(t *testing.T) {
	id := uuid.New()
	var gotID uuid.UUID
	var gotOrder int

	s := newTestServer(&stubService{
		updateOrder: func(_ context.Context, id uuid.UUID, order int) error {
			gotID, gotOrder = id, order
			return nil
		},
	})

	e := echo.New()
	req, rec := jsonRequest(http.MethodPatch, "/", `{"order": 3}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, s.UpdateAssetOrder(c))
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, id, gotID)
	assert.Equal(t, 3, gotOrder)
}

func TestUpdateAssetOrderHandler_NegativeOrder(t *testing.T) {
	s := newTestServer(&stubService{
		updateOrder: func(context.Context, uuid.UUID, int) error {
			t.Fatal("service must not be called")
			return nil
		},
	})

	e := echo.New()
	req, rec := jsonRequest(http.MethodPatch, "/", `{"order": -2}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	require.NoError(t, s.UpdateAssetOrder(c))
	assert.Equal(t, 422, rec.Code)
}

func TestUpdateAssetOrderHandler_NotFound(t *testing.T) {
	s := newTestServer(&stubService{
		updateOrder: func(context.Context, uuid.UUID, int) error {
			return fmt.Errorf("%w: asset", usecase.ErrNotFound)
		},
	})

	e := echo.New()
	req, rec := jsonRequest(http.MethodPatch, "/", `{"order": 1}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	require.NoError(t, s.UpdateAssetOrder(c))
	assert.Equal(t, 404, rec.Code)
}

func TestUpdateAssetOrderHandler_BadID(t *testing.T) {
	s := newTestServer(&stubService{})

	e := echo.New()
	req, rec := jsonRequest(http.MethodPatch, "/", `{"order": 1}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, s.UpdateAssetOrder(c))
	assert.Equal(t, 400, rec.Code)
}

func TestBulkUpdateAssetOrdersHandler(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	var got []usecase.AssetOrderUpdate

	s := newTestServer(&stubService{
		bulkOrders: func(_ context.Context, items []usecase.AssetOrderUpdate) error {
			got = items
			return nil
		},
	})

	body := fmt.Sprintf(`{"items":[{"id":%q,"order":2},{"id":%q,"order":1}]}`, a, b)

	e := echo.New()
	req, rec := jsonRequest(http.MethodPatch, "/", body)
	c := e.NewContext(req, rec)

	require.NoError(t, s.BulkUpdateAssetOrders(c))
	assert.Equal(t, 200, rec.Code)
	require.Len(t, got, 2)
	assert.Equal(t, usecase.AssetOrderUpdate{ID: a, Order: 2}, got[0])
	assert.Equal(t, usecase.AssetOrderUpdate{ID: b, Order: 1}, got[1])
}

func TestBulkUpdateAssetOrdersHandler_EmptyItems(t *testing.T) {
	s := newTestServer(&stubService{
		bulkOrders: func(context.Context, []usecase.AssetOrderUpdate) error {
			t.Fatal("service must not be called")
			return nil
		},
	})

	e := echo.New()
	req, rec := jsonRequest(http.MethodPatch, "/", `{"items":[]}`)
	c := e.NewContext(req, rec)

	require.NoError(t, s.BulkUpdateAssetOrders(c))
	assert.Equal(t, 422, rec.Code)
}

func TestListModelAssetsHandler_ProjectsBuckets(t *testing.T) {
	modelID := uuid.New()
	carousel := usecase.Asset{
		ID: uuid.New(), ModelID: modelID, Type: usecase.AssetTypeCarousel,
		Order: 1, Orientation: "portrait", ImgURL: "https://cdn/c1",
	}
	insta := usecase.Asset{
		ID: uuid.New(), ModelID: modelID, Type: usecase.AssetTypeInstagram,
		Order: 1, Orientation: "portrait", ImgURL: "https://cdn/i1",
		Redirect: "https://instagram.com/p/1", Likes: 12, Comments: 3,
	}

	s := newTestServer(&stubService{
		listAssets: func(_ context.Context, opt usecase.ListModelAssetsOption) (usecase.GroupedAssets, error) {
			assert.Equal(t, modelID, opt.ModelID)
			return usecase.GroupedAssets{
				Carousel:  []usecase.Asset{carousel},
				Polaroid:  []usecase.Asset{},
				Instagram: []usecase.Asset{insta},
			}, nil
		},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?model_id="+modelID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, s.ListModelAssets(c))
	assert.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"polaroid":[]`, "empty buckets serialize as arrays")
	assert.Contains(t, body, `"redirect":"https://instagram.com/p/1"`)
	assert.Contains(t, body, `"likes":12`)
	assert.NotContains(t, body, `"colors"`, "bucket projection stays trimmed")
}
