package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit-io/shopkit-api/internal/middleware"
	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
	"github.com/shopkit-io/shopkit-api/pkg/response"
)

type categoryServiceMock struct {
	lastCaller  pipeline.Caller
	lastPayload json.RawMessage
	category    *models.Category
	err         error
}

func (m *categoryServiceMock) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, *models.Pagination, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return []models.Category{*m.category}, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, nil
}

func (m *categoryServiceMock) Get(ctx context.Context, shopID, id string) (*models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.category, nil
}

func (m *categoryServiceMock) Create(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Category, error) {
	m.lastCaller = caller
	m.lastPayload = payload
	if m.err != nil {
		return nil, m.err
	}
	return m.category, nil
}

func (m *categoryServiceMock) Update(ctx context.Context, caller pipeline.Caller, id string, payload json.RawMessage) (*models.Category, error) {
	m.lastCaller = caller
	m.lastPayload = payload
	if m.err != nil {
		return nil, m.err
	}
	return m.category, nil
}

func (m *categoryServiceMock) Delete(ctx context.Context, caller pipeline.Caller, id, shopID string) (*models.Category, error) {
	m.lastCaller = caller
	if m.err != nil {
		return nil, m.err
	}
	return m.category, nil
}

func buildCategoryRouter(svc categoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-Test-User"); userID != "" {
			c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: userID})
		}
		c.Next()
	})

	h := NewCategoryHandler(svc)
	router.GET("/categories", h.List)
	router.GET("/categories/:id", h.Get)
	router.POST("/categories", h.Create)
	router.PUT("/categories/:id", h.Update)
	router.DELETE("/categories/:id", h.Delete)
	return router
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	return env
}

func TestCategoryHandlerCreate(t *testing.T) {
	svc := &categoryServiceMock{category: &models.Category{ID: "cat-1", ShopID: "shop-1", Name: "Shoes", Slug: "shoes"}}
	router := buildCategoryRouter(svc)

	body := []byte(`{"shopId":"shop-1","name":"Shoes","slug":"shoes"}`)
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", "owner-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, pipeline.Caller{UserID: "owner-1"}, svc.lastCaller)
	assert.JSONEq(t, string(body), string(svc.lastPayload), "raw body reaches the service untouched")

	env := decodeEnvelope(t, resp)
	require.NotNil(t, env.Data)
	assert.Nil(t, env.Error)
}

func TestCategoryHandlerCreateAnonymousCaller(t *testing.T) {
	svc := &categoryServiceMock{err: appErrors.ErrUnauthenticated}
	router := buildCategoryRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader([]byte(`{"shopId":"shop-1","name":"Shoes","slug":"shoes"}`)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.True(t, svc.lastCaller.Anonymous(), "missing token reaches the service as an anonymous caller")

	env := decodeEnvelope(t, resp)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, env.Error.Code)
}

func TestCategoryHandlerErrorEnvelope(t *testing.T) {
	cases := map[string]struct {
		err    *appErrors.Error
		status int
	}{
		"forbidden":  {appErrors.ErrForbidden, http.StatusForbidden},
		"not found":  {appErrors.ErrNotFound, http.StatusNotFound},
		"conflict":   {appErrors.ErrConflict, http.StatusConflict},
		"validation": {appErrors.WithDetails(appErrors.ErrValidation, []appErrors.FieldError{{Field: "name", Rule: "required", Message: "name is required"}}), http.StatusUnprocessableEntity},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &categoryServiceMock{err: tc.err}
			router := buildCategoryRouter(svc)

			req := httptest.NewRequest(http.MethodPut, "/categories/cat-1", bytes.NewReader([]byte(`{"shopId":"shop-1"}`)))
			req.Header.Set("X-Test-User", "owner-1")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			require.Equal(t, tc.status, resp.Code)
			env := decodeEnvelope(t, resp)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.err.Code, env.Error.Code)
		})
	}
}

func TestCategoryHandlerValidationDetailsOnWire(t *testing.T) {
	svc := &categoryServiceMock{err: appErrors.WithDetails(appErrors.ErrValidation, []appErrors.FieldError{
		{Field: "name", Rule: "required", Message: "name is required"},
		{Field: "slug", Rule: "slug", Message: "slug must be lowercase"},
	})}
	router := buildCategoryRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader([]byte(`{"shopId":"shop-1"}`)))
	req.Header.Set("X-Test-User", "owner-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	env := decodeEnvelope(t, resp)
	require.NotNil(t, env.Error)
	assert.Len(t, env.Error.Details, 2, "every failing field is reported in one response")
}

func TestCategoryHandlerListRequiresShopID(t *testing.T) {
	svc := &categoryServiceMock{category: &models.Category{ID: "cat-1"}}
	router := buildCategoryRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestCategoryHandlerList(t *testing.T) {
	svc := &categoryServiceMock{category: &models.Category{ID: "cat-1", ShopID: "shop-1", Name: "Shoes"}}
	router := buildCategoryRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/categories?shopId=shop-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	env := decodeEnvelope(t, resp)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalCount)
}

func TestCategoryHandlerDelete(t *testing.T) {
	svc := &categoryServiceMock{category: &models.Category{ID: "cat-1", ShopID: "shop-1", Name: "Shoes"}}
	router := buildCategoryRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/categories/cat-1?shopId=shop-1", nil)
	req.Header.Set("X-Test-User", "owner-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	env := decodeEnvelope(t, resp)
	assert.NotNil(t, env.Data, "delete answers with the removed entity")
}
