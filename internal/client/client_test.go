package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/order"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("localhost:8000")
	assert.Error(t, err)

	_, err = New("ftp://example.com")
	assert.Error(t, err)
}

func TestFetchTrees(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/trees", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items":[
			{"_id":"1","name":"Fresh Douglas Fir","size":"Medium","price":59.99,"height_ft":6,"tags":["fresh"],"in_stock":true},
			{"id":"2","name":"Blue Spruce","size":"Large","price":80,"image":"spruce.jpg"}
		]}`))
	})

	items, err := c.FetchTrees(context.Background(), catalog.Criteria{Size: catalog.SizeMedium, Query: "fir"})

	require.NoError(t, err)
	assert.Equal(t, "size=Medium", gotQuery)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, catalog.SizeMedium, items[0].Size)
	assert.True(t, decimal.RequireFromString("59.99").Equal(items[0].Price))
	require.NotNil(t, items[0].HeightFt)
	assert.True(t, items[0].InStock)
	assert.Equal(t, "2", items[1].ID)
	assert.Equal(t, "spruce.jpg", items[1].ImageURL)
}

func TestFetchTrees_AllSizesSendsNoQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	items, err := c.FetchTrees(context.Background(), catalog.NewCriteria())

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, gotQuery)
}

func TestFetchTrees_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantDecode bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"database down"}`, wantStatus: 500},
		{name: "not found", status: http.StatusNotFound, body: "nope", wantStatus: 404},
		{name: "malformed json", status: http.StatusOK, body: `{"items":[`, wantDecode: true},
		{name: "missing id", status: http.StatusOK, body: `{"items":[{"name":"x","price":1}]}`, wantDecode: true},
		{name: "negative price", status: http.StatusOK, body: `{"items":[{"_id":"1","price":-1}]}`, wantDecode: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			items, err := c.FetchTrees(context.Background(), catalog.NewCriteria())

			require.Error(t, err)
			assert.Nil(t, items)
			if tt.wantDecode {
				assert.ErrorIs(t, err, ErrDecode)
				return
			}
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
		})
	}
}

func TestStatusError_Message(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
	})

	_, err := c.FetchTrees(context.Background(), catalog.NewCriteria())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestSeed(t *testing.T) {
	var got models.SeedRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/seed", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("api_key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"inserted":6}`))
	}, WithAPIKey("secret"))

	inserted, err := c.Seed(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, 6, inserted)
	assert.False(t, got.Overwrite)
}

func TestSeed_EmptyResponseBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	inserted, err := c.Seed(context.Background(), true)

	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestSeed_MalformedResponseBody(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`seeded!`))
	}, WithLogger(log))

	inserted, err := c.Seed(context.Background(), false)

	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Contains(t, logs.String(), "could not decode seed response")
}

func TestSubmitOrder(t *testing.T) {
	var (
		got models.OrderRequest
		key string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		key = r.Header.Get(IdempotencyHeader)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"order-0001-abcdef","total":90}`))
	})

	lines := []cart.Line{{ItemID: "a", Name: "Fraser Fir", UnitPrice: decimal.NewFromInt(40), Quantity: 2}}
	payload := order.Compose(order.GuestCustomer(), lines, order.FlatRate(decimal.NewFromInt(10)))

	result, err := c.SubmitOrder(context.Background(), payload)

	require.NoError(t, err)
	assert.Equal(t, "order-0001-abcdef", result.ID)
	assert.True(t, decimal.NewFromInt(90).Equal(result.Total))
	assert.NotEmpty(t, key)

	assert.Equal(t, "Guest", got.CustomerName)
	assert.Equal(t, "00000", got.Zip)
	require.Len(t, got.Items, 1)
	assert.Equal(t, models.OrderItem{ProductID: "a", Name: "Fraser Fir", Quantity: 2, Price: 40}, got.Items[0])
	assert.InDelta(t, 90, got.Total, 0.0001)
}

func TestSubmitOrder_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Order must contain at least one item"}`))
	})

	result, err := c.SubmitOrder(context.Background(), order.Payload{})

	assert.Nil(t, result)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "Order must contain at least one item", statusErr.Message)
}

func TestCircuitBreaker_OpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for i := 0; i < 5; i++ {
		_, err := c.FetchTrees(context.Background(), catalog.NewCriteria())
		require.Error(t, err)
	}

	_, err := c.FetchTrees(context.Background(), catalog.NewCriteria())

	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(5), calls.Load())
}

func TestCircuitBreaker_IgnoresClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	for i := 0; i < 8; i++ {
		_, err := c.FetchTrees(context.Background(), catalog.NewCriteria())
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
	}

	assert.Equal(t, int32(8), calls.Load())
}
