package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/shopkit-io/shopkit-api/internal/models"
)

func newShopRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestShopRepositoryIsOwner(t *testing.T) {
	db, mock, cleanup := newShopRepoMock(t)
	defer cleanup()

	repo := NewShopRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT owner_id FROM shops WHERE id = $1")).
		WithArgs("shop-1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner-1"))
	ok, err := repo.IsOwner(context.Background(), "shop-1", "owner-1")
	require.NoError(t, err)
	require.True(t, ok)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT owner_id FROM shops WHERE id = $1")).
		WithArgs("shop-1").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner-1"))
	ok, err = repo.IsOwner(context.Background(), "shop-1", "intruder")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepositoryIsOwnerMissingShop(t *testing.T) {
	db, mock, cleanup := newShopRepoMock(t)
	defer cleanup()

	repo := NewShopRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT owner_id FROM shops WHERE id = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))

	ok, err := repo.IsOwner(context.Background(), "ghost", "owner-1")
	require.NoError(t, err, "a missing shop reads as not-owner, never as an error")
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepositoryIsOwnerEmptyIDs(t *testing.T) {
	db, mock, cleanup := newShopRepoMock(t)
	defer cleanup()

	repo := NewShopRepository(db)

	// Empty ids never hit the database.
	ok, err := repo.IsOwner(context.Background(), "", "owner-1")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = repo.IsOwner(context.Background(), "shop-1", "")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepositoryCreateSlugConflict(t *testing.T) {
	db, mock, cleanup := newShopRepoMock(t)
	defer cleanup()

	repo := NewShopRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shops")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Shop{OwnerID: "owner-1", Name: "Corner", Slug: "corner"})
	require.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newShopRepoMock(t)
	defer cleanup()

	repo := NewShopRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE shops SET name = $1, slug = $2")).
		WithArgs("Corner", "corner", sqlmock.AnyArg(), "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Shop{ID: "ghost", Name: "Corner", Slug: "corner"})
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShopRepositoryDeleteReturnsPriorState(t *testing.T) {
	db, mock, cleanup := newShopRepoMock(t)
	defer cleanup()

	repo := NewShopRepository(db)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "slug", "created_at", "updated_at"}).
		AddRow("shop-1", "owner-1", "Corner", "corner", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM shops WHERE id = $1 RETURNING")).
		WithArgs("shop-1").
		WillReturnRows(rows)

	shop, err := repo.Delete(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Equal(t, "Corner", shop.Name)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM shops WHERE id = $1 RETURNING")).
		WithArgs("shop-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "slug", "created_at", "updated_at"}))

	_, err = repo.Delete(context.Background(), "shop-1")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateUnknownError(t *testing.T) {
	boom := errors.New("boom")
	require.ErrorIs(t, translate(boom), boom)
}
