package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	accountkv "github.com/dwikikusuma/storefront/internal/account/infra/kv"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartkv "github.com/dwikikusuma/storefront/internal/cart/infra/kv"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	notificationdomain "github.com/dwikikusuma/storefront/internal/notification/domain"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	orderkv "github.com/dwikikusuma/storefront/internal/order/infra/kv"
	"github.com/dwikikusuma/storefront/pkg/kvstore"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Record(ctx context.Context, order orderdomain.Order, destination, username string) (notificationdomain.ConfirmationRecord, error) {
	args := m.Called(ctx, order, destination, username)
	return args.Get(0).(notificationdomain.ConfirmationRecord), args.Error(1)
}

type fixture struct {
	svc      *Service
	cart     *cartapp.Service
	ledger   *orderapp.Ledger
	notifier *mockNotifier
	store    kvstore.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := kvstore.NewMemoryStore()

	cart := cartapp.NewService(cartkv.NewCartRepo(store, nil))
	ledger := orderapp.NewLedger(orderkv.NewOrderRepo(store, nil), nil,
		func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) })
	account := accountapp.NewService(accountkv.NewAccountRepo(store))
	notifier := &mockNotifier{}

	svc := NewService(adapter.NewCartServiceReader(cart), ledger, notifier,
		adapter.NewAccountProfileReader(account), nil)

	return fixture{svc: svc, cart: cart, ledger: ledger, notifier: notifier, store: store}
}

func validCard() domain.CardDetails {
	return domain.CardDetails{
		Number:         "4111 1111 1111 1111",
		Expiry:         "12/29",
		CVV:            "123",
		Name:           "Ada Lovelace",
		BillingAddress: "1 Analytical Way",
	}
}

func (f fixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.cart.Add(ctx, "a", "Keyboard", decimal.NewFromInt(10), ""))
	require.NoError(t, f.cart.Increase(ctx, "a"))
	require.NoError(t, f.cart.Add(ctx, "b", "Mouse", decimal.NewFromInt(20), ""))
}

func TestPlaceOrderCashOnDelivery(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fillCart(t)

	f.notifier.On("Record", mock.Anything, mock.AnythingOfType("domain.Order"), "customer@example.com", "Customer").
		Return(notificationdomain.ConfirmationRecord{OrderID: "from-mock", Status: "sent"}, nil).Once()

	receipt, err := f.svc.PlaceOrder(ctx, domain.PlaceOrderRequest{Method: "cod"})
	require.NoError(t, err)
	f.notifier.AssertExpectations(t)

	assert.Equal(t, orderdomain.PaymentCashOnDeliv, receipt.Order.PaymentMethod)
	assert.True(t, receipt.Order.Total.Equal(decimal.RequireFromString("43.20")))
	assert.Equal(t, "from-mock", receipt.Confirmation.OrderID)

	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "cart is cleared after checkout")

	orders, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	if diff := cmp.Diff(receipt.Order, orders[0]); diff != "" {
		t.Fatalf("history differs from receipt:\n%s", diff)
	}
}

func TestPlaceOrderUsesProfileContact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fillCart(t)
	require.NoError(t, f.store.Set(ctx, accountkv.UsernameKey, []byte("ada")))
	require.NoError(t, f.store.Set(ctx, accountkv.EmailKey, []byte("ada@example.org")))

	f.notifier.On("Record", mock.Anything, mock.Anything, "ada@example.org", "ada").
		Return(notificationdomain.ConfirmationRecord{}, nil).Once()

	receipt, err := f.svc.PlaceOrder(ctx, domain.PlaceOrderRequest{Method: "paypal", Card: validCard()})
	require.NoError(t, err)
	assert.Equal(t, orderdomain.PaymentPayPal, receipt.Order.PaymentMethod)
	f.notifier.AssertExpectations(t)
}

func TestPlaceOrderUnknownMethodFallsBackToCard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fillCart(t)
	f.notifier.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(notificationdomain.ConfirmationRecord{}, nil)

	_, err := f.svc.PlaceOrder(ctx, domain.PlaceOrderRequest{Method: "barter"})
	assert.ErrorIs(t, err, ErrInvalidInput, "card details are required for the fallback")

	receipt, err := f.svc.PlaceOrder(ctx, domain.PlaceOrderRequest{Method: "barter", Card: validCard()})
	require.NoError(t, err)
	assert.Equal(t, "Credit/Debit Card", receipt.Order.PaymentMethod.Label())
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.PlaceOrder(ctx, domain.PlaceOrderRequest{Method: "cod"})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.ErrorIs(t, err, orderapp.ErrEmptyCart)

	orders, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	f.notifier.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderCardValidation(t *testing.T) {
	tests := []struct {
		name string
		edit func(*domain.CardDetails)
	}{
		{"short card number", func(c *domain.CardDetails) { c.Number = "4111 1111" }},
		{"letters in card number", func(c *domain.CardDetails) { c.Number = "4111x111111111111" }},
		{"short expiry", func(c *domain.CardDetails) { c.Expiry = "12/" }},
		{"short cvv", func(c *domain.CardDetails) { c.CVV = "12" }},
		{"missing name", func(c *domain.CardDetails) { c.Name = "  " }},
		{"missing billing address", func(c *domain.CardDetails) { c.BillingAddress = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			f.fillCart(t)

			card := validCard()
			tt.edit(&card)

			_, err := f.svc.PlaceOrder(ctx, domain.PlaceOrderRequest{Method: "credit", Card: card})
			assert.ErrorIs(t, err, ErrInvalidInput)

			items, _ := f.cart.Items(ctx)
			assert.Len(t, items, 2, "cart untouched")
			orders, _ := f.ledger.List(ctx)
			assert.Empty(t, orders, "nothing committed")
		})
	}
}

type failingProfile struct{}

func (failingProfile) Contact(context.Context) (string, string, error) {
	return "", "", errors.New("profile store offline")
}

func TestPlaceOrderProfileFailureCommitsNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fillCart(t)
	f.svc.Profile = failingProfile{}

	_, err := f.svc.PlaceOrder(ctx, domain.PlaceOrderRequest{Method: "cod"})
	require.Error(t, err)

	orders, err := f.ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	items, _ := f.cart.Items(ctx)
	assert.Len(t, items, 2)
	f.notifier.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrderNotifierFailureStillClearsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fillCart(t)

	f.notifier.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(notificationdomain.ConfirmationRecord{}, errors.New("outbox unavailable"))

	receipt, err := f.svc.PlaceOrder(ctx, domain.PlaceOrderRequest{Method: "cod"})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Order.ID)
	assert.Empty(t, receipt.Confirmation.OrderID)

	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// retrying finds an empty cart instead of committing the same order twice
	_, err = f.svc.PlaceOrder(ctx, domain.PlaceOrderRequest{Method: "cod"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	orders, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, receipt.Order.ID, orders[0].ID)
}

