package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrMissingCustomer = errors.New("customer name and email are required")
	ErrTotalMismatch   = errors.New("order total is less than the item subtotal")
)

// TreeLookup is the part of the tree repository the order service needs
type TreeLookup interface {
	GetByID(ctx context.Context, id string) (*models.Tree, error)
}

// OrderService handles order business logic
type OrderService struct {
	trees  TreeLookup
	orders repository.OrderRepository
	now    func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(trees TreeLookup, orders repository.OrderRepository) *OrderService {
	return &OrderService{
		trees:  trees,
		orders: orders,
		now:    time.Now,
	}
}

// CreateOrder validates and stores an order. A repeated idempotency key
// returns the order created by the first request.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest, idempotencyKey string) (*models.Order, error) {
	if existing, ok := s.orders.FindByIdempotencyKey(ctx, idempotencyKey); ok {
		return existing, nil
	}

	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, ErrMissingCustomer
	}

	subtotal := decimal.Zero
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if _, err := s.trees.GetByID(ctx, item.ProductID); err != nil {
			return nil, ErrInvalidProduct
		}
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	total := decimal.NewFromFloat(req.Total)
	if total.Round(2).LessThan(subtotal.Round(2)) {
		return nil, ErrTotalMismatch
	}

	order := &models.Order{
		ID:           generateOrderID(),
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Items:        req.Items,
		Total:        total.Round(2).InexactFloat64(),
		CreatedAt:    s.now().UTC(),
	}

	// a concurrent request with the same key may have won the race
	stored, err := s.orders.Save(ctx, *order, idempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	return &stored, nil
}

// generateOrderID generates a unique order ID using UUID
func generateOrderID() string {
	return uuid.New().String()
}
