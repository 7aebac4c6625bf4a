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

type shopRepoStub struct {
	shops map[string]models.Shop
}

func newShopRepoStub() *shopRepoStub {
	return &shopRepoStub{shops: map[string]models.Shop{}}
}

func (s *shopRepoStub) IsOwner(ctx context.Context, shopID, userID string) (bool, error) {
	if shop, ok := s.shops[shopID]; ok {
		return shop.OwnerID == userID, nil
	}
	return false, nil
}

func (s *shopRepoStub) ListByOwner(ctx context.Context, ownerID string) ([]models.Shop, error) {
	result := []models.Shop{}
	for _, shop := range s.shops {
		if shop.OwnerID == ownerID {
			result = append(result, shop)
		}
	}
	return result, nil
}

func (s *shopRepoStub) FindByID(ctx context.Context, id string) (*models.Shop, error) {
	if shop, ok := s.shops[id]; ok {
		return &shop, nil
	}
	return nil, repository.ErrNotFound
}

func (s *shopRepoStub) Create(ctx context.Context, shop *models.Shop) error {
	for _, existing := range s.shops {
		if existing.Slug == shop.Slug {
			return repository.ErrConflict
		}
	}
	if shop.ID == "" {
		shop.ID = "shop-1"
	}
	s.shops[shop.ID] = *shop
	return nil
}

func (s *shopRepoStub) Update(ctx context.Context, shop *models.Shop) error {
	if _, ok := s.shops[shop.ID]; !ok {
		return repository.ErrNotFound
	}
	s.shops[shop.ID] = *shop
	return nil
}

func (s *shopRepoStub) Delete(ctx context.Context, id string) (*models.Shop, error) {
	shop, ok := s.shops[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.shops, id)
	return &shop, nil
}

func newShopFixture() (*ShopService, *shopRepoStub) {
	repo := newShopRepoStub()
	return NewShopService(repo, pipeline.New(nil), nil, nil), repo
}

func TestShopCreateEstablishesOwnership(t *testing.T) {
	svc, repo := newShopFixture()

	shop, err := svc.Create(context.Background(), pipeline.Caller{UserID: "alice"}, json.RawMessage(`{"name":"Corner Store","slug":"corner-store"}`))

	require.NoError(t, err)
	assert.Equal(t, "alice", shop.OwnerID, "the creator becomes the owner")

	owned, err := repo.IsOwner(context.Background(), shop.ID, "alice")
	require.NoError(t, err)
	assert.True(t, owned)
}

func TestShopCreateAnonymous(t *testing.T) {
	svc, repo := newShopFixture()

	_, err := svc.Create(context.Background(), pipeline.Caller{}, json.RawMessage(`{"name":"Corner Store","slug":"corner-store"}`))

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.shops)
}

func TestShopUpdateActsOnValidatedTenant(t *testing.T) {
	svc, repo := newShopFixture()
	repo.shops["shop-a"] = models.Shop{ID: "shop-a", OwnerID: "alice", Name: "Alice's", Slug: "alices"}
	repo.shops["shop-b"] = models.Shop{ID: "shop-b", OwnerID: "bob", Name: "Bob's", Slug: "bobs"}

	// Alice names shop-b in the payload. Ownership is verified against
	// that same id, so the request is forbidden and shop-b untouched.
	_, err := svc.Update(context.Background(), pipeline.Caller{UserID: "alice"}, json.RawMessage(`{"shopId":"shop-b","name":"Hijacked"}`))

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "Bob's", repo.shops["shop-b"].Name)
}

func TestShopUpdate(t *testing.T) {
	svc, repo := newShopFixture()
	repo.shops["shop-a"] = models.Shop{ID: "shop-a", OwnerID: "alice", Name: "Alice's", Slug: "alices"}

	shop, err := svc.Update(context.Background(), pipeline.Caller{UserID: "alice"}, json.RawMessage(`{"shopId":"shop-a","name":"Alice's Emporium"}`))

	require.NoError(t, err)
	assert.Equal(t, "Alice's Emporium", shop.Name)
	assert.Equal(t, "alices", shop.Slug, "absent fields keep their stored values")
}

func TestShopDeleteReturnsPriorState(t *testing.T) {
	svc, repo := newShopFixture()
	repo.shops["shop-a"] = models.Shop{ID: "shop-a", OwnerID: "alice", Name: "Alice's", Slug: "alices"}

	shop, err := svc.Delete(context.Background(), pipeline.Caller{UserID: "alice"}, "shop-a")

	require.NoError(t, err)
	assert.Equal(t, "Alice's", shop.Name)
	assert.Empty(t, repo.shops)
}

func TestShopDeleteMissingForbidden(t *testing.T) {
	svc, _ := newShopFixture()

	// A shop that does not exist reads as "not owner": the caller cannot
	// probe which ids exist.
	_, err := svc.Delete(context.Background(), pipeline.Caller{UserID: "alice"}, "ghost")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestShopListOwn(t *testing.T) {
	svc, repo := newShopFixture()
	repo.shops["shop-a"] = models.Shop{ID: "shop-a", OwnerID: "alice"}
	repo.shops["shop-b"] = models.Shop{ID: "shop-b", OwnerID: "bob"}

	shops, err := svc.ListOwn(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "shop-a", shops[0].ID)
}
