package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit-io/shopkit-api/internal/models"
	"github.com/shopkit-io/shopkit-api/internal/pipeline"
	"github.com/shopkit-io/shopkit-api/internal/repository"
	appErrors "github.com/shopkit-io/shopkit-api/pkg/errors"
	"github.com/shopkit-io/shopkit-api/pkg/export"
)

type orderRepoStub struct {
	orders map[string]models.Order
}

func newOrderRepoStub() *orderRepoStub {
	return &orderRepoStub{orders: map[string]models.Order{}}
}

func (s *orderRepoStub) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	result := []models.Order{}
	for _, o := range s.orders {
		if o.ShopID == filter.ShopID {
			result = append(result, o)
		}
	}
	return result, len(result), nil
}

func (s *orderRepoStub) ListAll(ctx context.Context, shopID string) ([]models.Order, error) {
	result := []models.Order{}
	for _, o := range s.orders {
		if o.ShopID == shopID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (s *orderRepoStub) FindByID(ctx context.Context, shopID, id string) (*models.Order, error) {
	if o, ok := s.orders[id]; ok && o.ShopID == shopID {
		return &o, nil
	}
	return nil, repository.ErrNotFound
}

func (s *orderRepoStub) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = "order-1"
	}
	order.CreatedAt = time.Now().UTC()
	s.orders[order.ID] = *order
	return nil
}

func (s *orderRepoStub) UpdateStatus(ctx context.Context, shopID, id string, status models.OrderStatus) error {
	o, ok := s.orders[id]
	if !ok || o.ShopID != shopID {
		return repository.ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return nil
}

func (s *orderRepoStub) Delete(ctx context.Context, shopID, id string) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok || o.ShopID != shopID {
		return nil, repository.ErrNotFound
	}
	delete(s.orders, id)
	return &o, nil
}

type productReaderStub struct {
	products map[string]models.Product
}

func (s productReaderStub) FindByID(ctx context.Context, shopID, id string) (*models.Product, error) {
	if p, ok := s.products[id]; ok && p.ShopID == shopID {
		return &p, nil
	}
	return nil, repository.ErrNotFound
}

type shopReaderStub struct{}

func (shopReaderStub) FindByID(ctx context.Context, id string) (*models.Shop, error) {
	return &models.Shop{ID: id, Name: "Corner Store", Slug: "corner-store"}, nil
}

func newOrderFixture() (*OrderService, *orderRepoStub) {
	repo := newOrderRepoStub()
	products := productReaderStub{products: map[string]models.Product{
		"prod-1": {ID: "prod-1", ShopID: "shop-1", Name: "Mug", PriceCents: 1250},
		"prod-2": {ID: "prod-2", ShopID: "shop-1", Name: "Poster", PriceCents: 800},
	}}
	shops := &ownershipStub{owners: map[string]string{"shop-1": "owner-1"}}
	svc := NewOrderService(repo, products, shops, shopReaderStub{}, pipeline.New(nil), nil, export.NewInvoiceRenderer(), "ShopKit Test Ltd", nil)
	return svc, repo
}

func TestOrderCreateDenormalisesLines(t *testing.T) {
	svc, repo := newOrderFixture()

	payload := json.RawMessage(`{"shopId":"shop-1","customerName":"Bob","customerEmail":"Bob@Example.com","items":[{"productId":"prod-1","quantity":2},{"productId":"prod-2","quantity":1}]}`)
	order, err := svc.Create(context.Background(), pipeline.Caller{UserID: "owner-1"}, payload)

	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "bob@example.com", order.CustomerEmail)
	assert.Equal(t, int64(2*1250+800), order.TotalCents)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Mug", order.Items[0].Name, "line carries the product name at order time")
	assert.Equal(t, int64(1250), order.Items[0].UnitCents)
	assert.Len(t, repo.orders, 1)
}

func TestOrderCreateUnknownProduct(t *testing.T) {
	svc, repo := newOrderFixture()

	payload := json.RawMessage(`{"shopId":"shop-1","customerName":"Bob","customerEmail":"bob@example.com","items":[{"productId":"ghost","quantity":1}]}`)
	_, err := svc.Create(context.Background(), pipeline.Caller{UserID: "owner-1"}, payload)

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.orders, "no partial order is persisted")
}

func TestOrderCreateEmptyItems(t *testing.T) {
	svc, _ := newOrderFixture()

	payload := json.RawMessage(`{"shopId":"shop-1","customerName":"Bob","customerEmail":"bob@example.com","items":[]}`)
	_, err := svc.Create(context.Background(), pipeline.Caller{UserID: "owner-1"}, payload)

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestOrderUpdateStatus(t *testing.T) {
	svc, repo := newOrderFixture()
	repo.orders["order-1"] = models.Order{ID: "order-1", ShopID: "shop-1", Status: models.OrderPending}

	payload := json.RawMessage(`{"shopId":"shop-1","status":"PAID"}`)
	order, err := svc.Update(context.Background(), pipeline.Caller{UserID: "owner-1"}, "order-1", payload)

	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, order.Status)
}

func TestOrderUpdateUnknownStatus(t *testing.T) {
	svc, repo := newOrderFixture()
	repo.orders["order-1"] = models.Order{ID: "order-1", ShopID: "shop-1", Status: models.OrderPending}

	payload := json.RawMessage(`{"shopId":"shop-1","status":"TELEPORTED"}`)
	_, err := svc.Update(context.Background(), pipeline.Caller{UserID: "owner-1"}, "order-1", payload)

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, models.OrderPending, repo.orders["order-1"].Status, "store is untouched")
}

func TestOrderDeleteNonOwner(t *testing.T) {
	svc, repo := newOrderFixture()
	repo.orders["order-1"] = models.Order{ID: "order-1", ShopID: "shop-1"}

	_, err := svc.Delete(context.Background(), pipeline.Caller{UserID: "intruder"}, "order-1", "shop-1")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.orders, 1)
}

func TestOrderExportCSV(t *testing.T) {
	svc, repo := newOrderFixture()
	repo.orders["order-1"] = models.Order{
		ID: "order-1", ShopID: "shop-1", CustomerName: "Bob", CustomerEmail: "bob@example.com",
		Status: models.OrderPaid, TotalCents: 3300, CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	out, err := svc.ExportCSV(context.Background(), pipeline.Caller{UserID: "owner-1"}, "shop-1")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,customer,email,status,total,created_at", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "33.00")
	assert.Contains(t, lines[1], "PAID")
}

func TestOrderExportCSVRequiresOwnership(t *testing.T) {
	svc, _ := newOrderFixture()

	_, err := svc.ExportCSV(context.Background(), pipeline.Caller{UserID: "intruder"}, "shop-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = svc.ExportCSV(context.Background(), pipeline.Caller{}, "shop-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestOrderInvoice(t *testing.T) {
	svc, repo := newOrderFixture()
	repo.orders["order-1"] = models.Order{
		ID: "order-1", ShopID: "shop-1", CustomerName: "Bob", CustomerEmail: "bob@example.com",
		Status: models.OrderPaid, TotalCents: 2500,
		Items:     models.OrderItems{{ProductID: "prod-1", Name: "Mug", Quantity: 2, UnitCents: 1250}},
		CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	out, err := svc.Invoice(context.Background(), pipeline.Caller{UserID: "owner-1"}, "shop-1", "order-1")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output is a PDF document")
}

func TestOrderInvoiceDisabled(t *testing.T) {
	repo := newOrderRepoStub()
	shops := &ownershipStub{owners: map[string]string{"shop-1": "owner-1"}}
	svc := NewOrderService(repo, productReaderStub{}, shops, shopReaderStub{}, pipeline.New(nil), nil, nil, "", nil)

	_, err := svc.Invoice(context.Background(), pipeline.Caller{UserID: "owner-1"}, "shop-1", "order-1")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
