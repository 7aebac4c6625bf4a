package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shopkit-io/shopkit-api/internal/dto"
	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	"github.com/shopkit-io/shopkit-api/internal/validation"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
)

type shopRepository interface {
	IsOwner(ctx context.Context, shopID, userID string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Shop, error)
	FindByID(ctx context.Context, id string) (*models.Shop, error)
	Create(ctx context.Context, shop *models.Shop) error
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id string) (*models.Shop, error)
}

// ShopService handles tenant lifecycle. Creating a shop establishes
// ownership; updating or deleting one requires it.
type ShopService struct {
	repo   shopRepository
	pipe   *pipeline.Pipeline
	logger *zap.Logger

	createSchema *pipeline.Schema[dto.CreateShopRequest]
	updateSchema *pipeline.Schema[dto.UpdateShopRequest]
	deleteSchema *pipeline.Schema[dto.DeleteShopRequest]
}

// NewShopService creates a new shop service.
func NewShopService(repo shopRepository, pipe *pipeline.Pipeline, validate *validator.Validate, logger *zap.Logger) *ShopService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShopService{
		repo:   repo,
		pipe:   pipe,
		logger: logger,
		createSchema: pipeline.NewSchema(validate, func(req dto.CreateShopRequest) []appErrors.FieldError {
			return checkNotBlank("name", req.Name)
		}),
		updateSchema: pipeline.NewSchema(validate, func(req dto.UpdateShopRequest) []appErrors.FieldError {
			if req.Name == nil {
				return nil
			}
			return checkNotBlank("name", *req.Name)
		}),
		deleteSchema: pipeline.NewSchema[dto.DeleteShopRequest](validate, nil),
	}
}

// ListOwn returns the caller's shops.
func (s *ShopService) ListOwn(ctx context.Context, userID string) ([]models.Shop, error) {
	shops, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shops")
	}
	return shops, nil
}

// Get returns a shop by identifier.
func (s *ShopService) Get(ctx context.Context, id string) (*models.Shop, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapReadError(err, "shop not found", "failed to load shop")
	}
	return shop, nil
}

// Create registers a new shop owned by the caller. The pipeline still
// authenticates and validates; ownership of a shop that does not exist
// yet is granted to the creator.
func (s *ShopService) Create(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Shop, error) {
	req := pipeline.Request{Operation: pipeline.OpCreate, Resource: "shop", Payload: payload}
	return pipeline.Run(ctx, s.pipe, caller, req, s.createSchema, s.selfOwned, s.insertShop)
}

// Update renames a shop through the authorization pipeline. The mutation
// acts on the validated payload's shop id, the same id ownership was
// verified against; the handler rejects a path/payload mismatch upfront.
func (s *ShopService) Update(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Shop, error) {
	req := pipeline.Request{Operation: pipeline.OpUpdate, Resource: "shop", Payload: payload}
	return pipeline.Run(ctx, s.pipe, caller, req, s.updateSchema, s.repo.IsOwner, s.applyShopUpdate)
}

// Delete removes a shop through the authorization pipeline and returns
// its prior state.
func (s *ShopService) Delete(ctx context.Context, caller pipeline.Caller, id string) (*models.Shop, error) {
	payload, err := json.Marshal(dto.DeleteShopRequest{ShopID: id})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode delete request")
	}
	req := pipeline.Request{Operation: pipeline.OpDelete, Resource: "shop", Payload: payload}
	return pipeline.Run(ctx, s.pipe, caller, req, s.deleteSchema, s.repo.IsOwner, s.removeShop)
}

// selfOwned is the ownership rule for creation: the tenant does not exist
// yet, so any authenticated caller may create one for themselves.
func (s *ShopService) selfOwned(ctx context.Context, shopID, userID string) (bool, error) {
	return userID != "", nil
}

func (s *ShopService) insertShop(ctx context.Context, req dto.CreateShopRequest, userID string) (*models.Shop, error) {
	shop := &models.Shop{
		OwnerID: userID,
		Name:    strings.TrimSpace(req.Name),
		Slug:    req.Slug,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *ShopService) applyShopUpdate(ctx context.Context, req dto.UpdateShopRequest, userID string) (*models.Shop, error) {
	shop, err := s.repo.FindByID(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		shop.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		shop.Slug = *req.Slug
	}
	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *ShopService) removeShop(ctx context.Context, req dto.DeleteShopRequest, userID string) (*models.Shop, error) {
	return s.repo.Delete(ctx, req.ShopID)
}
