package storefront

import "errors"

var (
	ErrCatalogLoad        = errors.New("failed to load trees")
	ErrSeed               = errors.New("failed to seed demo trees")
	ErrSeedInProgress     = errors.New("seeding already in progress")
	ErrCheckout           = errors.New("checkout failed")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrEmptyCart          = errors.New("cart is empty")
)
