package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/order"
	"golang.org/x/sync/singleflight"
)

// Backend is the remote collaborator serving the catalog, seeding and orders
type Backend interface {
	FetchTrees(ctx context.Context, criteria catalog.Criteria) ([]catalog.Item, error)
	Seed(ctx context.Context, overwrite bool) (int, error)
	SubmitOrder(ctx context.Context, p order.Payload) (*order.Result, error)
}

// CatalogStatus describes the last catalog query
type CatalogStatus int

const (
	StatusIdle CatalogStatus = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s CatalogStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is the storefront state for one shopper: catalog snapshot, filter
// criteria and cart, plus the network actions that change them.
//
// Network calls never hold the session lock, so cart edits and filter changes
// stay responsive while a query, seed or checkout is in flight.
type Session struct {
	backend  Backend
	cart     *cart.Store
	shipping order.ShippingPolicy
	log      *slog.Logger
	fetches  singleflight.Group

	mu       sync.RWMutex
	items    []catalog.Item
	status   CatalogStatus
	loadErr  error
	criteria catalog.Criteria
	querySeq uint64

	seeding     atomic.Bool
	checkingOut atomic.Bool
}

type Option func(*Session)

func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithShipping replaces the default flat rate shipping policy
func WithShipping(policy order.ShippingPolicy) Option {
	return func(s *Session) {
		s.shipping = policy
	}
}

// WithCart injects an existing cart store
func WithCart(store *cart.Store) Option {
	return func(s *Session) {
		s.cart = store
	}
}

// NewSession creates a session with an empty cart and no catalog loaded
func NewSession(backend Backend, opts ...Option) *Session {
	s := &Session{
		backend:  backend,
		cart:     cart.NewStore(),
		shipping: order.FlatRate(order.DefaultFlatRate),
		log:      slog.Default(),
		criteria: catalog.NewCriteria(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cart returns the session cart store
func (s *Session) Cart() *cart.Store {
	return s.cart
}

// Criteria returns the current filter criteria
func (s *Session) Criteria() catalog.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// SetQuery changes the free-text filter. It only affects Visible, no query is issued.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Query = q
}

// SetSize changes the size selector. The visible subset updates at once;
// call Refresh to apply it to the backend query.
func (s *Session) SetSize(size catalog.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Size = size
}

// Status returns the catalog status and, when failed, the load error
func (s *Session) Status() (CatalogStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.loadErr
}

// Catalog returns the last fetched catalog
func (s *Session) Catalog() []catalog.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Visible returns the catalog narrowed by the current criteria
func (s *Session) Visible() []catalog.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Filter(s.items, s.criteria)
}

// Refresh re-issues the catalog query for the current criteria.
// If a later query was issued before this one completes, this result is dropped.
// On failure the catalog is emptied and the status becomes StatusFailed.
func (s *Session) Refresh(ctx context.Context) error {
	return s.refresh(ctx, false)
}

// refresh with fresh set never joins a query already in flight
func (s *Session) refresh(ctx context.Context, fresh bool) error {
	s.mu.Lock()
	s.querySeq++
	seq := s.querySeq
	criteria := s.criteria
	s.status = StatusLoading
	s.mu.Unlock()

	key := catalog.Query(criteria).Encode()
	if fresh {
		s.fetches.Forget(key)
	}
	// the fetch is shared with every caller asking for the same criteria,
	// so one caller giving up must not cancel it for the rest
	shared := context.WithoutCancel(ctx)
	ch := s.fetches.DoChan(key, func() (interface{}, error) {
		return s.backend.FetchTrees(shared, criteria)
	})

	var items []catalog.Item
	var err error
	select {
	case res := <-ch:
		err = res.Err
		if err == nil {
			items = res.Val.([]catalog.Item)
		}
	case <-ctx.Done():
		err = ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.querySeq {
		s.log.Debug("discarding stale catalog response", "seq", seq, "latest", s.querySeq)
		return nil
	}

	if err != nil {
		s.items = nil
		s.status = StatusFailed
		s.loadErr = fmt.Errorf("%w: %w", ErrCatalogLoad, err)
		s.log.Error("failed to load trees", "size", criteria.Size, "error", err)
		return s.loadErr
	}

	s.items = items
	s.status = StatusLoaded
	s.loadErr = nil
	s.log.Debug("catalog loaded", "size", criteria.Size, "count", len(s.items))
	return nil
}

// Seeding reports whether a seed request is in flight
func (s *Session) Seeding() bool {
	return s.seeding.Load()
}

// Seed asks the backend to add demo trees without overwriting, then reloads
// the catalog. Concurrent calls are rejected with ErrSeedInProgress.
func (s *Session) Seed(ctx context.Context) error {
	if !s.seeding.CompareAndSwap(false, true) {
		return ErrSeedInProgress
	}
	defer s.seeding.Store(false)

	inserted, err := s.backend.Seed(ctx, false)
	if err != nil {
		s.log.Error("failed to seed demo trees", "error", err)
		return fmt.Errorf("%w: %w", ErrSeed, err)
	}
	s.log.Info("demo trees seeded", "inserted", inserted)

	return s.refresh(ctx, true)
}

// Totals derives subtotal, shipping and total from the current cart
func (s *Session) Totals() order.Totals {
	return order.ComputeTotals(s.cart.Lines(), s.shipping)
}

// CheckingOut reports whether an order submission is in flight
func (s *Session) CheckingOut() bool {
	return s.checkingOut.Load()
}

// Checkout submits the cart as an order. An empty cart returns ErrEmptyCart
// without contacting the backend. On success the cart is cleared; on failure
// it is left exactly as it was. Only one checkout runs at a time.
func (s *Session) Checkout(ctx context.Context, customer order.Customer) (*order.Result, error) {
	if !s.checkingOut.CompareAndSwap(false, true) {
		return nil, ErrCheckoutInProgress
	}
	defer s.checkingOut.Store(false)

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	payload := order.Compose(customer, lines, s.shipping)
	result, err := s.backend.SubmitOrder(ctx, payload)
	if err != nil {
		s.log.Warn("checkout failed", "lines", len(lines), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCheckout, err)
	}

	s.cart.Clear()
	s.log.Info("order placed",
		"order_id", result.ID,
		"confirmation", result.ConfirmationCode(),
		"total", result.Total.StringFixed(2),
	)
	return result, nil
}
