package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	notificationdomain "github.com/dwikikusuma/storefront/internal/notification/domain"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

type CartReader interface {
	GetCart(ctx context.Context) (cartdomain.Cart, error)
	Clear(ctx context.Context) error
}

type OrderCommitter interface {
	Commit(ctx context.Context, cart cartdomain.Cart, method orderdomain.PaymentMethod) (orderdomain.Order, error)
}

type Notifier interface {
	Record(ctx context.Context, order orderdomain.Order, destination, username string) (notificationdomain.ConfirmationRecord, error)
}

type ProfileReader interface {
	Contact(ctx context.Context) (email, username string, err error)
}

type Service struct {
	Cart     CartReader
	Orders   OrderCommitter
	Notifier Notifier
	Profile  ProfileReader

	log *slog.Logger
}

func NewService(cart CartReader, orders OrderCommitter, notifier Notifier, profile ProfileReader, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		Cart:     cart,
		Orders:   orders,
		Notifier: notifier,
		Profile:  profile,
		log:      log,
	}
}

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyCart    = orderapp.ErrEmptyCart
)

// PlaceOrder runs the whole checkout: validate payment details, commit the
// cart as an order, record the confirmation and empty the cart. Nothing is
// committed when validation fails, the cart is empty or the profile cannot
// be read. A failed confirmation is logged and leaves Receipt.Confirmation
// empty; the order stands and the cart is still cleared.
func (s *Service) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.Receipt, error) {
	method, known := orderdomain.ParsePaymentMethod(req.Method)
	if !known {
		s.log.Info("unrecognized payment method, using card",
			slog.String("method", req.Method))
	}

	if !method.Deferred() {
		if err := validateCard(req.Card); err != nil {
			return domain.Receipt{}, err
		}
	}

	cart, err := s.Cart.GetCart(ctx)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return domain.Receipt{}, ErrEmptyCart
	}

	email, username, err := s.Profile.Contact(ctx)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("read profile: %w", err)
	}

	order, err := s.Orders.Commit(ctx, cart, method)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("commit order: %w", err)
	}

	// A committed cart is always cleared, confirmation or not.
	conf, err := s.Notifier.Record(ctx, order, email, username)
	if err != nil {
		s.log.Warn("confirmation not recorded",
			slog.String("order_id", order.ID),
			slog.Any("err", err))
		conf = notificationdomain.ConfirmationRecord{}
	}

	if err := s.Cart.Clear(ctx); err != nil {
		return domain.Receipt{Order: order, Confirmation: conf}, fmt.Errorf("clear cart after order %s: %w", order.ID, err)
	}

	s.log.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("payment_method", method.Label()),
		slog.String("total", order.Total.StringFixed(2)))

	return domain.Receipt{Order: order, Confirmation: conf}, nil
}
