package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shopkit-io/shopkit-api/internal/dto"
	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	"github.com/shopkit-io/shopkit-api/internal/validation"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
)

type categoryRepository interface {
	List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, int, error)
	FindByID(ctx context.Context, shopID, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, shopID, id string) (*models.Category, error)
}

type shopOwnership interface {
	IsOwner(ctx context.Context, shopID, userID string) (bool, error)
}

// CategoryService handles category workflows. All mutations run through
// the shared authorization pipeline.
type CategoryService struct {
	repo   categoryRepository
	shops  shopOwnership
	pipe   *pipeline.Pipeline
	cache  *ListCache
	logger *zap.Logger

	createSchema *pipeline.Schema[dto.CreateCategoryRequest]
	updateSchema *pipeline.Schema[dto.UpdateCategoryRequest]
	deleteSchema *pipeline.Schema[dto.DeleteCategoryRequest]
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo categoryRepository, shops shopOwnership, pipe *pipeline.Pipeline, validate *validator.Validate, cache *ListCache, logger *zap.Logger) *CategoryService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{
		repo:   repo,
		shops:  shops,
		pipe:   pipe,
		cache:  cache,
		logger: logger,
		createSchema: pipeline.NewSchema(validate, func(req dto.CreateCategoryRequest) []appErrors.FieldError {
			return checkNotBlank("name", req.Name)
		}),
		updateSchema: pipeline.NewSchema(validate, func(req dto.UpdateCategoryRequest) []appErrors.FieldError {
			if req.Name == nil {
				return nil
			}
			return checkNotBlank("name", *req.Name)
		}),
		deleteSchema: pipeline.NewSchema[dto.DeleteCategoryRequest](validate, nil),
	}
}

// List returns paginated categories for a shop.
func (s *CategoryService) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, *models.Pagination, error) {
	type cached struct {
		Categories []models.Category  `json:"categories"`
		Pagination *models.Pagination `json:"pagination"`
	}
	key := s.cache.Key(ctx, "categories", filter.ShopID, fmt.Sprintf("%d:%d:%s:%s:%s", filter.Page, filter.PageSize, filter.Search, filter.SortBy, filter.SortOrder))
	var hit cached
	if s.cache.Get(ctx, key, &hit) {
		return hit.Categories, hit.Pagination, nil
	}

	categories, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list categories")
	}

	pagination := paginationFor(filter.Page, filter.PageSize, total)
	s.cache.Set(ctx, key, cached{Categories: categories, Pagination: pagination})
	return categories, pagination, nil
}

// Get returns a category by identifier.
func (s *CategoryService) Get(ctx context.Context, shopID, id string) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, mapReadError(err, "category not found", "failed to load category")
	}
	return category, nil
}

// Create adds a new category through the authorization pipeline.
func (s *CategoryService) Create(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Category, error) {
	req := pipeline.Request{Operation: pipeline.OpCreate, Resource: "category", Payload: payload}
	category, err := pipeline.Run(ctx, s.pipe, caller, req, s.createSchema, s.shops.IsOwner, s.insertCategory)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, "categories", category.ShopID)
	return category, nil
}

// Update modifies an existing category through the authorization pipeline.
func (s *CategoryService) Update(ctx context.Context, caller pipeline.Caller, id string, payload json.RawMessage) (*models.Category, error) {
	req := pipeline.Request{Operation: pipeline.OpUpdate, Resource: "category", Payload: payload}
	category, err := pipeline.Run(ctx, s.pipe, caller, req, s.updateSchema, s.shops.IsOwner, s.applyCategoryUpdate(id))
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, "categories", category.ShopID)
	return category, nil
}

// Delete removes a category through the authorization pipeline and
// returns its prior state.
func (s *CategoryService) Delete(ctx context.Context, caller pipeline.Caller, id, shopID string) (*models.Category, error) {
	payload, err := json.Marshal(dto.DeleteCategoryRequest{ID: id, ShopID: shopID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode delete request")
	}
	req := pipeline.Request{Operation: pipeline.OpDelete, Resource: "category", Payload: payload}
	category, pErr := pipeline.Run(ctx, s.pipe, caller, req, s.deleteSchema, s.shops.IsOwner, s.removeCategory)
	if pErr != nil {
		return nil, pErr
	}
	s.cache.Invalidate(ctx, "categories", category.ShopID)
	return category, nil
}

func (s *CategoryService) insertCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*models.Category, error) {
	category := &models.Category{
		ShopID:    req.ShopID,
		CreatorID: userID,
		Name:      strings.TrimSpace(req.Name),
		Slug:      req.Slug,
		Images:    models.StringList(req.Images),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) applyCategoryUpdate(id string) pipeline.MutateFunc[dto.UpdateCategoryRequest, *models.Category] {
	return func(ctx context.Context, req dto.UpdateCategoryRequest, userID string) (*models.Category, error) {
		category, err := s.repo.FindByID(ctx, req.ShopID, id)
		if err != nil {
			return nil, err
		}
		if req.Name != nil {
			category.Name = strings.TrimSpace(*req.Name)
		}
		if req.Slug != nil {
			category.Slug = *req.Slug
		}
		if req.Images != nil {
			category.Images = models.StringList(*req.Images)
		}
		if err := s.repo.Update(ctx, category); err != nil {
			return nil, err
		}
		return category, nil
	}
}

func (s *CategoryService) removeCategory(ctx context.Context, req dto.DeleteCategoryRequest, userID string) (*models.Category, error) {
	return s.repo.Delete(ctx, req.ShopID, req.ID)
}
