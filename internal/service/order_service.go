package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shopkit-io/shopkit-api/internal/dto"
	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	"github.com/shopkit-io/shopkit-api/internal/validation"
	"github.com/shopkit-io/shopkit-api/pkg/export"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
)

type orderRepository interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error)
	ListAll(ctx context.Context, shopID string) ([]models.Order, error)
	FindByID(ctx context.Context, shopID, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, shopID, id string, status models.OrderStatus) error
	Delete(ctx context.Context, shopID, id string) (*models.Order, error)
}

type productReader interface {
	FindByID(ctx context.Context, shopID, id string) (*models.Product, error)
}

type shopReader interface {
	FindByID(ctx context.Context, id string) (*models.Shop, error)
}

// OrderService handles order workflows, CSV exports and PDF invoices.
type OrderService struct {
	repo     orderRepository
	products productReader
	shops    shopOwnership
	shopInfo shopReader
	pipe     *pipeline.Pipeline
	csv      *export.CSVExporter
	invoices *export.InvoiceRenderer
	seller   string
	logger   *zap.Logger

	createSchema *pipeline.Schema[dto.CreateOrderRequest]
	updateSchema *pipeline.Schema[dto.UpdateOrderRequest]
	deleteSchema *pipeline.Schema[dto.DeleteOrderRequest]
}

// NewOrderService creates a new order service. invoices may be nil when
// invoice rendering is disabled.
func NewOrderService(repo orderRepository, products productReader, shops shopOwnership, shopInfo shopReader, pipe *pipeline.Pipeline, validate *validator.Validate, invoices *export.InvoiceRenderer, seller string, logger *zap.Logger) *OrderService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		repo:     repo,
		products: products,
		shops:    shops,
		shopInfo: shopInfo,
		pipe:     pipe,
		csv:      export.NewCSVExporter(),
		invoices: invoices,
		seller:   seller,
		logger:   logger,
		createSchema: pipeline.NewSchema(validate, func(req dto.CreateOrderRequest) []appErrors.FieldError {
			return checkNotBlank("customerName", req.CustomerName)
		}),
		updateSchema: pipeline.NewSchema(validate, func(req dto.UpdateOrderRequest) []appErrors.FieldError {
			if req.Status.Valid() {
				return nil
			}
			return []appErrors.FieldError{{Field: "status", Rule: "oneof", Message: "status must be one of PENDING, PAID, SHIPPED, CANCELLED"}}
		}),
		deleteSchema: pipeline.NewSchema[dto.DeleteOrderRequest](validate, nil),
	}
}

// List returns paginated orders for a shop.
func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, *models.Pagination, error) {
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list orders")
	}
	return orders, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Get returns an order by identifier.
func (s *OrderService) Get(ctx context.Context, shopID, id string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, mapReadError(err, "order not found", "failed to load order")
	}
	return order, nil
}

// Create records a new order through the authorization pipeline. Lines
// are denormalised from the current product rows so later product edits
// do not rewrite order history.
func (s *OrderService) Create(ctx context.Context, caller pipeline.Caller, payload json.RawMessage) (*models.Order, error) {
	req := pipeline.Request{Operation: pipeline.OpCreate, Resource: "order", Payload: payload}
	return pipeline.Run(ctx, s.pipe, caller, req, s.createSchema, s.shops.IsOwner, s.insertOrder)
}

// Update transitions an order's status through the authorization pipeline.
func (s *OrderService) Update(ctx context.Context, caller pipeline.Caller, id string, payload json.RawMessage) (*models.Order, error) {
	req := pipeline.Request{Operation: pipeline.OpUpdate, Resource: "order", Payload: payload}
	return pipeline.Run(ctx, s.pipe, caller, req, s.updateSchema, s.shops.IsOwner, s.applyOrderUpdate(id))
}

// Delete removes an order through the authorization pipeline and returns
// its prior state.
func (s *OrderService) Delete(ctx context.Context, caller pipeline.Caller, id, shopID string) (*models.Order, error) {
	payload, err := json.Marshal(dto.DeleteOrderRequest{ID: id, ShopID: shopID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode delete request")
	}
	req := pipeline.Request{Operation: pipeline.OpDelete, Resource: "order", Payload: payload}
	return pipeline.Run(ctx, s.pipe, caller, req, s.deleteSchema, s.shops.IsOwner, s.removeOrder)
}

// ExportCSV renders every order of a shop as CSV. The caller must own
// the shop; the read does not mutate, so the check runs inline.
func (s *OrderService) ExportCSV(ctx context.Context, caller pipeline.Caller, shopID string) ([]byte, error) {
	if caller.Anonymous() {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "")
	}
	allowed, err := s.shops.IsOwner(ctx, shopID, caller.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "could not verify shop ownership")
	}
	if !allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}

	orders, err := s.repo.ListAll(ctx, shopID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load orders")
	}

	data := export.Dataset{Headers: []string{"id", "customer", "email", "status", "total", "created_at"}}
	for _, o := range orders {
		data.Rows = append(data.Rows, map[string]string{
			"id":         o.ID,
			"customer":   o.CustomerName,
			"email":      o.CustomerEmail,
			"status":     string(o.Status),
			"total":      fmt.Sprintf("%d.%02d", o.TotalCents/100, o.TotalCents%100),
			"created_at": o.CreatedAt.Format(time.RFC3339),
		})
	}

	out, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return out, nil
}

// Invoice renders a PDF invoice for one order. Owner only.
func (s *OrderService) Invoice(ctx context.Context, caller pipeline.Caller, shopID, orderID string) ([]byte, error) {
	if s.invoices == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "invoices are not enabled")
	}
	if caller.Anonymous() {
		return nil, appErrors.Clone(appErrors.ErrUnauthenticated, "")
	}
	allowed, err := s.shops.IsOwner(ctx, shopID, caller.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "could not verify shop ownership")
	}
	if !allowed {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}

	order, err := s.repo.FindByID(ctx, shopID, orderID)
	if err != nil {
		return nil, mapReadError(err, "order not found", "failed to load order")
	}
	shop, err := s.shopInfo.FindByID(ctx, shopID)
	if err != nil {
		return nil, mapReadError(err, "shop not found", "failed to load shop")
	}

	number := order.ID
	if len(number) > 8 {
		number = number[:8]
	}
	inv := export.Invoice{
		Number:        strings.ToUpper(number),
		Seller:        s.seller,
		ShopName:      shop.Name,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		IssuedAt:      order.CreatedAt,
		TotalCents:    order.TotalCents,
	}
	for _, item := range order.Items {
		inv.Lines = append(inv.Lines, export.InvoiceLine{
			Description: item.Name,
			Quantity:    item.Quantity,
			UnitCents:   item.UnitCents,
		})
	}

	out, err := s.invoices.Render(inv)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render invoice")
	}
	return out, nil
}

func (s *OrderService) insertOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*models.Order, error) {
	order := &models.Order{
		ShopID:        req.ShopID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		Status:        models.OrderPending,
	}

	for _, line := range req.Items {
		product, err := s.products.FindByID(ctx, req.ShopID, line.ProductID)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitCents: product.PriceCents,
		})
		order.TotalCents += int64(line.Quantity) * product.PriceCents
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) applyOrderUpdate(id string) pipeline.MutateFunc[dto.UpdateOrderRequest, *models.Order] {
	return func(ctx context.Context, req dto.UpdateOrderRequest, userID string) (*models.Order, error) {
		if err := s.repo.UpdateStatus(ctx, req.ShopID, id, req.Status); err != nil {
			return nil, err
		}
		return s.repo.FindByID(ctx, req.ShopID, id)
	}
}

func (s *OrderService) removeOrder(ctx context.Context, req dto.DeleteOrderRequest, userID string) (*models.Order, error) {
	return s.repo.Delete(ctx, req.ShopID, req.ID)
}
