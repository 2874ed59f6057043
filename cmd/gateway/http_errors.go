package main

import (
	"encoding/json"
	"errors"
	"net/http"

	accountapp "github.com/dwikikusuma/storefront/internal/account/app"
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
)

var (
	errBadRequest         = errors.New("malformed request")
	errCatalogUnavailable = errors.New("product catalog unavailable")
)

type errorBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"requestId,omitempty"`
	} `json:"error"`
}

// httpStatusFromErr maps service errors to an HTTP status, a stable code
// and the message safe to show the caller.
func httpStatusFromErr(err error) (int, string, string) {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, checkoutapp.ErrInvalidInput),
		errors.Is(err, accountapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, orderapp.ErrNotFound),
		errors.Is(err, catalogapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, orderapp.ErrEmptyCart):
		return http.StatusConflict, "FAILED_PRECONDITION", err.Error()
	case errors.Is(err, errCatalogUnavailable):
		return http.StatusServiceUnavailable, "UNAVAILABLE", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := httpStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			"err", err,
			"path", r.URL.Path,
			"request_id", requestID(r.Context()))
	}
	var body errorBody
	body.Error.Code = code
	body.Error.Message = msg
	body.Error.RequestID = requestID(r.Context())
	writeJSON(w, status, body)
}
