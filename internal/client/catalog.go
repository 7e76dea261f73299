package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/shopspring/decimal"
)

const seedPath = "/api/admin/seed"

// FetchTrees requests the catalog slice matching the criteria size
func (c *Client) FetchTrees(ctx context.Context, criteria catalog.Criteria) ([]catalog.Item, error) {
	data, err := c.do(ctx, http.MethodGet, catalog.TreesPath, catalog.Query(criteria), nil, nil)
	if err != nil {
		return nil, err
	}

	var list models.TreeList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	items := make([]catalog.Item, 0, len(list.Items))
	for _, t := range list.Items {
		item, err := toItem(t)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Seed asks the backend to populate demo trees. The response body is optional.
func (c *Client) Seed(ctx context.Context, overwrite bool) (int, error) {
	data, err := c.do(ctx, http.MethodPost, seedPath, nil, models.SeedRequest{Overwrite: overwrite}, nil)
	if err != nil {
		return 0, err
	}

	var resp models.SeedResponse
	if len(data) > 0 {
		// the seed already happened, an unreadable count is not worth failing over
		if err := json.Unmarshal(data, &resp); err != nil {
			c.log.Debug("could not decode seed response", "error", err)
		}
	}
	return resp.Inserted, nil
}

func toItem(t models.Tree) (catalog.Item, error) {
	if t.ID == "" {
		return catalog.Item{}, fmt.Errorf("%w: tree %q has no id", ErrDecode, t.Name)
	}
	if t.Price < 0 {
		return catalog.Item{}, fmt.Errorf("%w: tree %q has negative price", ErrDecode, t.ID)
	}

	size, err := catalog.ParseSize(t.Size)
	if err != nil {
		// unknown sizes are kept verbatim so they only match "All"
		size = catalog.Size(t.Size)
	}

	return catalog.Item{
		ID:          t.ID,
		Name:        t.Name,
		Size:        size,
		Price:       decimal.NewFromFloat(t.Price),
		HeightFt:    t.HeightFt,
		ImageURL:    t.ImageURL,
		Description: t.Description,
		Tags:        t.Tags,
		InStock:     t.InStock,
	}, nil
}
