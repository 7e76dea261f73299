package storefront

import (
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/client"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/order"
	"github.com/shopspring/decimal"
)

// NewFromConfig builds a session backed by the HTTP client
func NewFromConfig(cfg config.ClientConfig, log *slog.Logger) (*Session, error) {
	backend, err := client.New(cfg.BackendURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithAPIKey(cfg.APIKey),
		client.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	return NewSession(backend,
		WithLogger(log),
		WithShipping(ShippingFromConfig(cfg)),
	), nil
}

// ShippingFromConfig picks free-over-threshold shipping when a threshold is set, flat rate otherwise
func ShippingFromConfig(cfg config.ClientConfig) order.ShippingPolicy {
	fee := decimal.NewFromFloat(cfg.ShippingFlatRate)
	if cfg.FreeShippingOver > 0 {
		return order.FreeOver(decimal.NewFromFloat(cfg.FreeShippingOver), fee)
	}
	return order.FlatRate(fee)
}
