package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	"github.com/shopkit-io/shopkit-api/internal/repository"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
)

type categoryRepoStub struct {
	items       map[string]models.Category
	listErr     error
	createCalls int
}

func (s *categoryRepoStub) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, int, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	result := []models.Category{}
	for _, c := range s.items {
		if c.ShopID == filter.ShopID {
			result = append(result, c)
		}
	}
	return result, len(result), nil
}

func (s *categoryRepoStub) FindByID(ctx context.Context, shopID, id string) (*models.Category, error) {
	if c, ok := s.items[id]; ok && c.ShopID == shopID {
		return &c, nil
	}
	return nil, repository.ErrNotFound
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	s.createCalls++
	if s.items == nil {
		s.items = make(map[string]models.Category)
	}
	for _, existing := range s.items {
		if existing.ShopID == category.ShopID && existing.Slug == category.Slug {
			return repository.ErrConflict
		}
	}
	if category.ID == "" {
		category.ID = "cat-1"
	}
	s.items[category.ID] = *category
	return nil
}

func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	if _, ok := s.items[category.ID]; !ok {
		return repository.ErrNotFound
	}
	s.items[category.ID] = *category
	return nil
}

func (s *categoryRepoStub) Delete(ctx context.Context, shopID, id string) (*models.Category, error) {
	c, ok := s.items[id]
	if !ok || c.ShopID != shopID {
		return nil, repository.ErrNotFound
	}
	delete(s.items, id)
	return &c, nil
}

type ownershipStub struct {
	owners map[string]string
	calls  int
}

func (s *ownershipStub) IsOwner(ctx context.Context, shopID, userID string) (bool, error) {
	s.calls++
	return s.owners[shopID] == userID, nil
}

func newCategoryFixture() (*CategoryService, *categoryRepoStub, *ownershipStub) {
	repo := &categoryRepoStub{}
	shops := &ownershipStub{owners: map[string]string{"shop-1": "owner-1"}}
	svc := NewCategoryService(repo, shops, pipeline.New(nil), nil, nil, nil)
	return svc, repo, shops
}

func TestCategoryCreate(t *testing.T) {
	svc, repo, _ := newCategoryFixture()

	payload := json.RawMessage(`{"shopId":"shop-1","name":"  Shoes  ","slug":"shoes"}`)
	category, err := svc.Create(context.Background(), pipeline.Caller{UserID: "owner-1"}, payload)

	require.NoError(t, err)
	assert.Equal(t, "Shoes", category.Name, "name is trimmed before storage")
	assert.Equal(t, "shoes", category.Slug)
	assert.Equal(t, "owner-1", category.CreatorID)
	assert.Equal(t, 1, repo.createCalls)
}

func TestCategoryCreateAnonymous(t *testing.T) {
	svc, repo, shops := newCategoryFixture()

	_, err := svc.Create(context.Background(), pipeline.Caller{}, json.RawMessage(`{"shopId":"shop-1","name":"Shoes","slug":"shoes"}`))

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
	assert.Zero(t, shops.calls)
	assert.Zero(t, repo.createCalls)
}

func TestCategoryCreateNonOwner(t *testing.T) {
	svc, repo, _ := newCategoryFixture()

	_, err := svc.Create(context.Background(), pipeline.Caller{UserID: "someone-else"}, json.RawMessage(`{"shopId":"shop-1","name":"Shoes","slug":"shoes"}`))

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
	assert.Equal(t, 403, appErr.Status)
	assert.Zero(t, repo.createCalls)
}

func TestCategoryCreateInvalidSlug(t *testing.T) {
	svc, _, shops := newCategoryFixture()

	_, err := svc.Create(context.Background(), pipeline.Caller{UserID: "owner-1"}, json.RawMessage(`{"shopId":"shop-1","name":"Shoes","slug":"Bad Slug!"}`))

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "slug", appErr.Details[0].Field)
	assert.Zero(t, shops.calls, "ownership is not checked for invalid payloads")
}

func TestCategoryCreateDuplicateSlug(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	payload := json.RawMessage(`{"shopId":"shop-1","name":"Shoes","slug":"shoes"}`)

	_, err := svc.Create(context.Background(), pipeline.Caller{UserID: "owner-1"}, payload)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), pipeline.Caller{UserID: "owner-1"}, payload)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestCategoryUpdatePartial(t *testing.T) {
	svc, repo, _ := newCategoryFixture()
	repo.items = map[string]models.Category{
		"cat-1": {ID: "cat-1", ShopID: "shop-1", Name: "Shoes", Slug: "shoes"},
	}

	payload := json.RawMessage(`{"shopId":"shop-1","name":"Sneakers"}`)
	category, err := svc.Update(context.Background(), pipeline.Caller{UserID: "owner-1"}, "cat-1", payload)

	require.NoError(t, err)
	assert.Equal(t, "Sneakers", category.Name)
	assert.Equal(t, "shoes", category.Slug, "absent fields keep their stored values")
}

func TestCategoryUpdateBlankName(t *testing.T) {
	svc, repo, _ := newCategoryFixture()
	repo.items = map[string]models.Category{
		"cat-1": {ID: "cat-1", ShopID: "shop-1", Name: "Shoes", Slug: "shoes"},
	}

	_, err := svc.Update(context.Background(), pipeline.Caller{UserID: "owner-1"}, "cat-1", json.RawMessage(`{"shopId":"shop-1","name":"   "}`))

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, 422, appErr.Status)
	assert.Equal(t, "Shoes", repo.items["cat-1"].Name, "store is untouched")
}

func TestCategoryUpdateMissing(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	_, err := svc.Update(context.Background(), pipeline.Caller{UserID: "owner-1"}, "ghost", json.RawMessage(`{"shopId":"shop-1","name":"Sneakers"}`))

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCategoryDeleteReturnsPriorState(t *testing.T) {
	svc, repo, _ := newCategoryFixture()
	repo.items = map[string]models.Category{
		"cat-1": {ID: "cat-1", ShopID: "shop-1", Name: "Shoes", Slug: "shoes"},
	}

	category, err := svc.Delete(context.Background(), pipeline.Caller{UserID: "owner-1"}, "cat-1", "shop-1")
	require.NoError(t, err)
	assert.Equal(t, "Shoes", category.Name)
	assert.Empty(t, repo.items)

	_, err = svc.Delete(context.Background(), pipeline.Caller{UserID: "owner-1"}, "cat-1", "shop-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCategoryDeleteNonOwner(t *testing.T) {
	svc, repo, _ := newCategoryFixture()
	repo.items = map[string]models.Category{
		"cat-1": {ID: "cat-1", ShopID: "shop-1", Name: "Shoes", Slug: "shoes"},
	}

	_, err := svc.Delete(context.Background(), pipeline.Caller{UserID: "intruder"}, "cat-1", "shop-1")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.items, 1, "nothing is deleted for a non-owner")
}

func TestCategoryList(t *testing.T) {
	svc, repo, _ := newCategoryFixture()
	repo.items = map[string]models.Category{
		"cat-1": {ID: "cat-1", ShopID: "shop-1", Name: "Shoes"},
		"cat-2": {ID: "cat-2", ShopID: "shop-2", Name: "Hats"},
	}

	categories, pagination, err := svc.List(context.Background(), models.CategoryFilter{ShopID: "shop-1", Page: 1, PageSize: 20})

	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Shoes", categories[0].Name)
	require.NotNil(t, pagination)
	assert.Equal(t, 1, pagination.TotalCount)
}
