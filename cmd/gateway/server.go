package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	accountdomain "github.com/dwikikusuma/storefront/internal/account/domain"
	"github.com/dwikikusuma/storefront/internal/bootstrap"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	notificationdomain "github.com/dwikikusuma/storefront/internal/notification/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/pricing"
)

const maxBodyBytes = 1 << 20

// server exposes the storefront services over JSON. Every handler that
// touches the store runs under mu, so each read-modify-write finishes
// before the next one starts.
type server struct {
	app *bootstrap.App
	log *slog.Logger
	mu  sync.Mutex
}

func newServer(app *bootstrap.App, log *slog.Logger) *server {
	return &server{app: app, log: log}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	mux.HandleFunc("GET /v1/products", s.listProducts)

	mux.Handle("GET /v1/cart", s.locked(s.getCart))
	mux.Handle("POST /v1/cart/items", s.locked(s.addItem))
	mux.Handle("POST /v1/cart/items/{id}/increase", s.locked(s.increaseItem))
	mux.Handle("POST /v1/cart/items/{id}/decrease", s.locked(s.decreaseItem))
	mux.Handle("PUT /v1/cart/items/{id}", s.locked(s.setItemQuantity))
	mux.Handle("DELETE /v1/cart/items/{id}", s.locked(s.removeItem))
	mux.Handle("DELETE /v1/cart", s.locked(s.clearCart))

	mux.Handle("POST /v1/checkout", s.locked(s.checkout))

	mux.Handle("GET /v1/orders", s.locked(s.listOrders))
	mux.Handle("GET /v1/orders/{id}", s.locked(s.getOrder))
	mux.Handle("GET /v1/emails", s.locked(s.listEmails))
	mux.Handle("GET /v1/account", s.locked(s.getAccount))

	return withRequestID(withAccessLog(s.log, mux))
}

func (s *server) locked(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		h(w, r)
	})
}

func (s *server) listProducts(w http.ResponseWriter, r *http.Request) {
	if s.app.Catalog == nil {
		s.writeError(w, r, errCatalogUnavailable)
		return
	}
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("%w: limit %q", errBadRequest, v))
			return
		}
		limit = n
	}
	products, err := s.app.Catalog.ListProducts(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

type cartResponse struct {
	Items        []cartdomain.LineItem `json:"items"`
	Count        int                   `json:"count"`
	Subtotal     string                `json:"subtotal"`
	Shipping     string                `json:"shipping"`
	Tax          string                `json:"tax"`
	Total        string                `json:"total"`
	FreeShipping bool                  `json:"freeShipping"`
}

func (s *server) getCart(w http.ResponseWriter, r *http.Request) {
	s.respondCart(w, r, http.StatusOK)
}

func (s *server) respondCart(w http.ResponseWriter, r *http.Request, status int) {
	cart, err := s.app.Cart.GetCart(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	b := pricing.ComputeBreakdown(cart.Items)
	items := cart.Items
	if items == nil {
		items = []cartdomain.LineItem{}
	}
	rb := b.Rounded()
	writeJSON(w, status, cartResponse{
		Items:        items,
		Count:        cart.ItemCount(),
		Subtotal:     rb.Subtotal.StringFixed(2),
		Shipping:     rb.Shipping.StringFixed(2),
		Tax:          rb.Tax.StringFixed(2),
		Total:        rb.Total.StringFixed(2),
		FreeShipping: b.FreeShipping(),
	})
}

type addItemRequest struct {
	ProductID json.RawMessage `json:"productId"`
}

func (s *server) addItem(w http.ResponseWriter, r *http.Request) {
	if s.app.Catalog == nil {
		s.writeError(w, r, errCatalogUnavailable)
		return
	}
	var req addItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id := rawScalar(req.ProductID)
	if id == "" {
		s.writeError(w, r, fmt.Errorf("%w: productId is required", errBadRequest))
		return
	}
	if err := s.app.AddProducts(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondCart(w, r, http.StatusOK)
}

func (s *server) increaseItem(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Cart.Increase(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondCart(w, r, http.StatusOK)
}

func (s *server) decreaseItem(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Cart.Decrease(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondCart(w, r, http.StatusOK)
}

type setQuantityRequest struct {
	// Quantity is a number or the raw text typed into a quantity field.
	Quantity json.RawMessage `json:"quantity"`
}

func (s *server) setItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.app.Cart.SetQuantity(r.Context(), r.PathValue("id"), rawScalar(req.Quantity)); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondCart(w, r, http.StatusOK)
}

func (s *server) removeItem(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Cart.Remove(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondCart(w, r, http.StatusOK)
}

func (s *server) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Cart.Clear(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondCart(w, r, http.StatusOK)
}

func (s *server) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutdomain.PlaceOrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	receipt, err := s.app.Checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (s *server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.app.Orders.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []orderdomain.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (s *server) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.app.Orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *server) listEmails(w http.ResponseWriter, r *http.Request) {
	var (
		records []notificationdomain.ConfirmationRecord
		err     error
	)
	if to := r.URL.Query().Get("to"); to != "" {
		records, err = s.app.Notifications.ListFor(r.Context(), to)
	} else {
		records, err = s.app.Notifications.List(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []notificationdomain.ConfirmationRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"emails": records})
}

type accountResponse struct {
	accountdomain.Profile
	Preferences accountdomain.Preferences `json:"preferences"`
}

func (s *server) getAccount(w http.ResponseWriter, r *http.Request) {
	p, err := s.app.Account.Profile(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	prefs, err := s.app.Account.Preferences(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accountResponse{Profile: p, Preferences: prefs})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// rawScalar returns a JSON string's contents or a number's literal text.
func rawScalar(raw json.RawMessage) string {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str)
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return num.String()
	}
	return ""
}
