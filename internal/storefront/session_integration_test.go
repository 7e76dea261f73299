package storefront_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/client"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/order"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/storefront"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, auth config.AuthConfig) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	trees := repository.NewInMemoryTreeRepository()
	orders := repository.NewInMemoryOrderRepository()

	srv := httptest.NewServer(handlers.NewRouter(auth, handlers.Dependencies{
		Health: handlers.NewHealthHandler(trees, log),
		Trees:  handlers.NewTreeHandler(service.NewTreeService(trees), log),
		Orders: handlers.NewOrderHandler(service.NewOrderService(trees, orders), log),
	}, log))
	t.Cleanup(srv.Close)
	return srv
}

func newSession(t *testing.T, backendURL, apiKey string) *storefront.Session {
	t.Helper()
	session, err := storefront.NewFromConfig(config.ClientConfig{
		BackendURL:       backendURL,
		RequestTimeout:   5 * time.Second,
		APIKey:           apiKey,
		ShippingFlatRate: 10,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return session
}

func findByName(items []catalog.Item, name string) (catalog.Item, bool) {
	for _, it := range items {
		if it.Name == name {
			return it, true
		}
	}
	return catalog.Item{}, false
}

func TestStorefront_BrowseAndCheckout(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t, config.AuthConfig{})
	session := newSession(t, srv.URL, "")

	require.NoError(t, session.Refresh(ctx))
	status, _ := session.Status()
	assert.Equal(t, storefront.StatusLoaded, status)
	assert.Empty(t, session.Catalog())

	require.NoError(t, session.Seed(ctx))
	assert.Len(t, session.Catalog(), len(repository.DemoTrees()))
	assert.False(t, session.Seeding())

	session.SetSize(catalog.SizeSmall)
	require.NoError(t, session.Refresh(ctx))
	assert.Len(t, session.Catalog(), 2)

	session.SetQuery("potted")
	visible := session.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Tabletop Norway Spruce", visible[0].Name)

	session.Cart().Add(visible[0])
	require.NoError(t, session.Cart().SetQuantityText(visible[0].ID, "2"))

	totals := session.Totals()
	assert.True(t, decimal.RequireFromString("49").Equal(totals.Subtotal), totals.Subtotal.String())
	assert.True(t, decimal.RequireFromString("59").Equal(totals.Total), totals.Total.String())

	result, err := session.Checkout(ctx, order.GuestCustomer())
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Len(t, result.ConfirmationCode(), 6)
	assert.True(t, totals.Total.Equal(result.Total), result.Total.String())
	assert.True(t, session.Cart().IsEmpty())
}

func TestStorefront_SeedTwiceKeepsCatalogStable(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t, config.AuthConfig{})
	session := newSession(t, srv.URL, "")

	require.NoError(t, session.Seed(ctx))
	first := session.Catalog()
	require.NoError(t, session.Seed(ctx))

	assert.Equal(t, first, session.Catalog())
}

func TestStorefront_CheckoutRejectedKeepsCart(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t, config.AuthConfig{})
	session := newSession(t, srv.URL, "")

	require.NoError(t, session.Seed(ctx))
	fir, ok := findByName(session.Catalog(), "Fraser Fir")
	require.True(t, ok)
	session.Cart().Add(fir)

	_, err := session.Checkout(ctx, order.Customer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, storefront.ErrCheckout)

	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)

	line, ok := session.Cart().Line(fir.ID)
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
}

func TestStorefront_SeedWithAdminKey(t *testing.T) {
	ctx := context.Background()
	srv := newBackend(t, config.AuthConfig{AdminAPIKeys: []string{"elf"}})

	anonymous := newSession(t, srv.URL, "")
	err := anonymous.Seed(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, storefront.ErrSeed)
	var statusErr *client.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)

	admin := newSession(t, srv.URL, "elf")
	require.NoError(t, admin.Seed(ctx))
	assert.Len(t, admin.Catalog(), len(repository.DemoTrees()))
}
