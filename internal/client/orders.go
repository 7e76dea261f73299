package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ordersPath = "/api/orders"

	// IdempotencyHeader carries a per-attempt key so the backend can drop replays
	IdempotencyHeader = "Idempotency-Key"
)

// SubmitOrder posts the order and returns the backend confirmation
func (c *Client) SubmitOrder(ctx context.Context, p order.Payload) (*order.Result, error) {
	header := http.Header{}
	header.Set(IdempotencyHeader, uuid.NewString())

	data, err := c.do(ctx, http.MethodPost, ordersPath, nil, toOrderRequest(p), header)
	if err != nil {
		return nil, err
	}

	var placed models.Order
	if err := json.Unmarshal(data, &placed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if placed.ID == "" {
		return nil, fmt.Errorf("%w: order has no id", ErrDecode)
	}

	return &order.Result{
		ID:    placed.ID,
		Total: decimal.NewFromFloat(placed.Total),
	}, nil
}

func toOrderRequest(p order.Payload) models.OrderRequest {
	items := make([]models.OrderItem, len(p.Items))
	for i, l := range p.Items {
		items[i] = models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Price:     l.Price.InexactFloat64(),
		}
	}
	return models.OrderRequest{
		CustomerName: p.Customer.Name,
		Email:        p.Customer.Email,
		Address:      p.Customer.Address,
		City:         p.Customer.City,
		Zip:          p.Customer.Zip,
		Items:        items,
		Total:        p.Totals.Total.InexactFloat64(),
	}
}
