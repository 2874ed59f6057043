package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/jsonfile"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/pkg/kvstore"
)

const products = `{"products":[
	{"id":1,"name":"Keyboard","price":10,"image":"kb.jpg"},
	{"id":2,"name":"Monitor","price":20,"image":"mon.jpg"}
]}`

func newApp(t *testing.T, store kvstore.Store) *App {
	t.Helper()
	repo, err := jsonfile.Parse([]byte(products))
	require.NoError(t, err)
	return New(store, Options{Catalog: repo})
}

func TestEndToEndCheckoutOverSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := kvstore.OpenSQLite(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	defer store.Close()

	app := newApp(t, store)
	require.NoError(t, app.AddProducts(ctx, "1", "1", "2"))

	b, err := app.Cart.Breakdown(ctx)
	require.NoError(t, err)
	assert.Equal(t, "43.20", b.Total.StringFixed(2))

	receipt, err := app.Checkout.PlaceOrder(ctx, checkoutdomain.PlaceOrderRequest{Method: "cod"})
	require.NoError(t, err)
	assert.Contains(t, receipt.Confirmation.Body, "- Keyboard x2 - $20.00")
	assert.Equal(t, "customer@example.com", receipt.Confirmation.To)

	// a fresh wiring over the same file sees the same state
	again := newApp(t, store)
	items, err := again.Cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	orders, err := again.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, receipt.Order.ID, orders[0].ID)
	assert.Equal(t, "43.20", orders[0].Total.StringFixed(2))

	sent, err := again.Notifications.ListFor(ctx, "customer@example.com")
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}

func TestAddProductsUnknownIDLeavesCart(t *testing.T) {
	ctx := context.Background()
	app := newApp(t, kvstore.NewMemoryStore())

	err := app.AddProducts(ctx, "1", "99")
	assert.ErrorIs(t, err, catalogapp.ErrNotFound)

	items, err := app.Cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddProductsWithoutCatalog(t *testing.T) {
	app := New(kvstore.NewMemoryStore(), Options{})
	assert.Error(t, app.AddProducts(context.Background(), "1"))
}
