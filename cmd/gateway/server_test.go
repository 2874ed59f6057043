package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dwikikusuma/storefront/internal/bootstrap"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/jsonfile"
	"github.com/dwikikusuma/storefront/pkg/kvstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const catalogJSON = `{"products":[
	{"id":1,"name":"Keyboard","price":10,"image":"kb.jpg"},
	{"id":2,"name":"Monitor","price":20,"image":"mon.jpg"}
]}`

func newTestServer(t *testing.T, withCatalog bool) (http.Handler, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts := bootstrap.Options{Logger: log}
	if withCatalog {
		repo, err := jsonfile.Parse([]byte(catalogJSON))
		require.NoError(t, err)
		opts.Catalog = repo
	}
	return newServer(bootstrap.New(store, opts), log).routes(), store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t, false)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", "").Code)
}

func TestRequestID(t *testing.T) {
	h, _ := newTestServer(t, false)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestProductsRoute(t *testing.T) {
	h, _ := newTestServer(t, true)
	rec := do(t, h, http.MethodGet, "/v1/products?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Products []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"products"`
	}](t, rec)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "Keyboard", body.Products[0].Name)

	rec = do(t, h, http.MethodGet, "/v1/products?limit=lots", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductsWithoutCatalog(t *testing.T) {
	h, _ := newTestServer(t, false)
	rec := do(t, h, http.MethodGet, "/v1/products", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decode[errorBody](t, rec)
	assert.Equal(t, "UNAVAILABLE", body.Error.Code)
	assert.NotEmpty(t, body.Error.RequestID)
}

func TestCartRoutes(t *testing.T) {
	h, _ := newTestServer(t, true)

	cart := decode[cartResponse](t, do(t, h, http.MethodGet, "/v1/cart", ""))
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.Subtotal)
	assert.Equal(t, "5.99", cart.Shipping)
	assert.Equal(t, "0.00", cart.Tax)
	assert.Equal(t, "5.99", cart.Total)
	assert.False(t, cart.FreeShipping)

	for _, body := range []string{`{"productId":1}`, `{"productId":"1"}`, `{"productId":2}`} {
		rec := do(t, h, http.MethodPost, "/v1/cart/items", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	cart = decode[cartResponse](t, do(t, h, http.MethodGet, "/v1/cart", ""))
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.Count)
	assert.Equal(t, "40.00", cart.Subtotal)
	assert.Equal(t, "0.00", cart.Shipping)
	assert.Equal(t, "3.20", cart.Tax)
	assert.Equal(t, "43.20", cart.Total)
	assert.True(t, cart.FreeShipping)

	rec := do(t, h, http.MethodPost, "/v1/cart/items/1/decrease", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodDelete, "/v1/cart/items/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartResponse](t, rec)
	assert.Equal(t, "5.99", cart.Shipping)
	assert.Equal(t, "16.79", cart.Total)
	assert.False(t, cart.FreeShipping)

	rec = do(t, h, http.MethodPut, "/v1/cart/items/1", `{"quantity":"7 boxes"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, decode[cartResponse](t, rec).Items[0].Quantity)

	rec = do(t, h, http.MethodPut, "/v1/cart/items/1", `{"quantity":500}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 99, decode[cartResponse](t, rec).Items[0].Quantity)

	rec = do(t, h, http.MethodPost, "/v1/cart/items/1/increase", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 99, decode[cartResponse](t, rec).Items[0].Quantity)

	rec = do(t, h, http.MethodPut, "/v1/cart/items/1", `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, "/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[cartResponse](t, rec).Items)
}

func TestAddItemErrors(t *testing.T) {
	h, _ := newTestServer(t, true)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/cart/items", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/cart/items", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":42}`).Code)

	cart := decode[cartResponse](t, do(t, h, http.MethodGet, "/v1/cart", ""))
	assert.Empty(t, cart.Items)
}

func TestCheckoutRoute(t *testing.T) {
	h, store := newTestServer(t, true)

	rec := do(t, h, http.MethodPost, "/v1/checkout", `{"paymentMethod":"cod"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "FAILED_PRECONDITION", decode[errorBody](t, rec).Error.Code)

	do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":1}`)
	do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":2}`)
	do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":2}`)

	rec = do(t, h, http.MethodPost, "/v1/checkout", `{"paymentMethod":"credit","card":{"cardNumber":"123"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, ok, err := store.Get(t.Context(), "orders")
	require.NoError(t, err)
	assert.False(t, ok)

	rec = do(t, h, http.MethodPost, "/v1/checkout", `{"paymentMethod":"cod"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var receipt struct {
		Order struct {
			OrderID       string      `json:"orderId"`
			Total         json.Number `json:"total"`
			PaymentMethod string      `json:"paymentMethod"`
			Status        string      `json:"status"`
		} `json:"order"`
		Confirmation struct {
			To      string `json:"to"`
			Subject string `json:"subject"`
		} `json:"confirmation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.True(t, strings.HasPrefix(receipt.Order.OrderID, "ORD-"))
	assert.Equal(t, "54", receipt.Order.Total.String())
	assert.Equal(t, "Cash on Delivery", receipt.Order.PaymentMethod)
	assert.Equal(t, "Order Placed", receipt.Order.Status)
	assert.Equal(t, "customer@example.com", receipt.Confirmation.To)
	assert.Contains(t, receipt.Confirmation.Subject, receipt.Order.OrderID)

	cart := decode[cartResponse](t, do(t, h, http.MethodGet, "/v1/cart", ""))
	assert.Empty(t, cart.Items)

	rec = do(t, h, http.MethodGet, "/v1/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), receipt.Order.OrderID)

	rec = do(t, h, http.MethodGet, "/v1/orders/"+receipt.Order.OrderID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/orders/ORD-0", "").Code)

	rec = do(t, h, http.MethodGet, "/v1/emails?to=CUSTOMER@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	emails := decode[struct {
		Emails []struct {
			OrderID string `json:"orderId"`
			Body    string `json:"body"`
		} `json:"emails"`
	}](t, rec)
	require.Len(t, emails.Emails, 1)
	assert.Equal(t, receipt.Order.OrderID, emails.Emails[0].OrderID)
	assert.Contains(t, emails.Emails[0].Body, "- Monitor x2 - $40.00")
}

func TestAccountRoute(t *testing.T) {
	h, _ := newTestServer(t, false)
	rec := do(t, h, http.MethodGet, "/v1/account", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Customer", body["username"])
	assert.Equal(t, "customer@example.com", body["email"])
	prefs, ok := body["preferences"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "public", prefs["profileVisibility"])
}

func TestConcurrentAddsOverHTTP(t *testing.T) {
	h, _ := newTestServer(t, true)
	srv := httptest.NewServer(h)
	defer srv.Close()

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(srv.URL+"/v1/cart/items", "application/json", bytes.NewBufferString(`{"productId":1}`))
			if err != nil {
				t.Error(err)
				return
			}
			resp.Body.Close()
		}()
	}
	wg.Wait()
	http.DefaultClient.CloseIdleConnections()

	cart := decode[cartResponse](t, do(t, h, http.MethodGet, "/v1/cart", ""))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, n, cart.Items[0].Quantity)
}
