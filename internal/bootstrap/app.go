package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	accountkv "github.com/dwikikusuma/storefront/internal/account/infra/kv"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartkv "github.com/dwikikusuma/storefront/internal/cart/infra/kv"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	notificationapp "github.com/dwikikusuma/storefront/internal/notification/app"
	notificationkv "github.com/dwikikusuma/storefront/internal/notification/infra/kv"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderkv "github.com/dwikikusuma/storefront/internal/order/infra/kv"
	"github.com/dwikikusuma/storefront/pkg/kvstore"
)

// App holds every service wired over one store.
type App struct {
	Cart          *cartapp.Service
	Orders        *orderapp.Ledger
	Notifications *notificationapp.Service
	Account       *accountapp.Service
	Checkout      *checkoutapp.Service
	Catalog       *catalogapp.Service
}

type Options struct {
	StoreName string
	Logger    *slog.Logger
	// Catalog may be nil when no product file is configured.
	Catalog catalogapp.ProductRepo
}

func New(store kvstore.Store, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	cartSvc := cartapp.NewService(cartkv.NewCartRepo(store, log))
	ledger := orderapp.NewLedger(orderkv.NewOrderRepo(store, log), nil, nil)
	notifier := notificationapp.NewService(notificationkv.NewOutboxRepo(store, log),
		notificationapp.WithStoreName(opts.StoreName),
		notificationapp.WithLogger(log))
	accountSvc := accountapp.NewService(accountkv.NewAccountRepo(store))

	app := &App{
		Cart:          cartSvc,
		Orders:        ledger,
		Notifications: notifier,
		Account:       accountSvc,
		Checkout: checkoutapp.NewService(
			checkoutadapter.NewCartServiceReader(cartSvc),
			ledger,
			notifier,
			checkoutadapter.NewAccountProfileReader(accountSvc),
			log,
		),
	}
	if opts.Catalog != nil {
		app.Catalog = catalogapp.NewService(opts.Catalog, 10)
	}
	return app
}

// AddProducts looks the ids up in the catalog and adds each to the cart
// in the given order. Lookups happen before any cart write, so an unknown
// id leaves the cart as it was.
func (a *App) AddProducts(ctx context.Context, ids ...string) error {
	if a.Catalog == nil {
		return errors.New("no catalog configured")
	}
	products, err := a.Catalog.Resolve(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range products {
		if err := a.Cart.Add(ctx, p.ID, p.Name, p.Price, p.Image); err != nil {
			return fmt.Errorf("add %s to cart: %w", p.ID, err)
		}
	}
	return nil
}
