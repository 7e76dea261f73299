// Command storefront drives a storefront session against a running backend:
// it optionally seeds the catalog, lists matching trees and places an order.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/order"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/storefront"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
	"github.com/spf13/pflag"
)

type options struct {
	configFile string
	seed       bool
	size       string
	query      string
	buy        []string
	checkout   bool
}

func main() {
	var opts options
	pflag.StringVarP(&opts.configFile, "config", "c", "", "path to an optional config file")
	pflag.BoolVar(&opts.seed, "seed", false, "seed demo trees before listing")
	pflag.StringVar(&opts.size, "size", "", "size filter: Small, Medium or Large")
	pflag.StringVarP(&opts.query, "query", "q", "", "free-text filter on name and tags")
	pflag.StringSliceVar(&opts.buy, "buy", nil, "tree id to add to the cart, optionally id=quantity (repeatable)")
	pflag.BoolVar(&opts.checkout, "checkout", false, "place an order for the cart as a guest")
	pflag.Parse()

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the listing and the confirmation
	log := logger.NewWithWriter(os.Stderr, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, log); err != nil {
		log.Error("storefront session failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, log *slog.Logger) error {
	size, err := catalog.ParseSize(opts.size)
	if err != nil {
		return err
	}

	session, err := storefront.NewFromConfig(cfg.Client, log)
	if err != nil {
		return err
	}
	session.SetSize(size)
	session.SetQuery(opts.query)

	if opts.seed {
		if err := session.Seed(ctx); err != nil {
			return err
		}
	} else if err := session.Refresh(ctx); err != nil {
		return err
	}

	visible := session.Visible()
	for _, item := range visible {
		fmt.Printf("%-36s  %-28s  %-6s  %8s\n", item.ID, item.Name, item.Size, item.Price.StringFixed(2))
	}
	if len(visible) == 0 {
		fmt.Println("no trees match")
	}

	for _, entry := range opts.buy {
		if err := addToCart(session, entry); err != nil {
			return err
		}
	}

	totals := session.Totals()
	cart := session.Cart()
	if cart.IsEmpty() {
		return nil
	}
	fmt.Printf("cart: %d lines, %d trees, subtotal %s, shipping %s, total %s\n",
		cart.LineCount(), cart.TotalQuantity(),
		totals.Subtotal.StringFixed(2), totals.Shipping.StringFixed(2), totals.Total.StringFixed(2))

	if !opts.checkout {
		return nil
	}
	result, err := session.Checkout(ctx, order.GuestCustomer())
	if err != nil {
		return err
	}
	fmt.Printf("order placed: %s (total %s)\n", result.ConfirmationCode(), result.Total.StringFixed(2))
	return nil
}

var errUnknownTree = errors.New("tree is not in the catalog")

// addToCart accepts "id" or "id=quantity"
func addToCart(session *storefront.Session, entry string) error {
	id, qty, hasQty := strings.Cut(entry, "=")

	var item *catalog.Item
	for _, it := range session.Catalog() {
		if it.ID == id {
			item = &it
			break
		}
	}
	if item == nil {
		return fmt.Errorf("%w: %s", errUnknownTree, id)
	}

	session.Cart().Add(*item)
	if hasQty {
		return session.Cart().SetQuantityText(id, qty)
	}
	return nil
}
