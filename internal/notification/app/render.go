package app

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"

	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/pricing"
)

const dateLayout = "1/2/2006, 3:04:05 PM"

var bodyTmpl = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"money":    pricing.FormatMoney,
	"shipping": pricing.FormatShipping,
	"line": func(price decimal.Decimal, qty int) string {
		return pricing.FormatMoney(price.Mul(decimal.NewFromInt(int64(qty))))
	},
}).Parse(`Dear {{.Username}},

Thank you for your order!

Order ID: {{.Order.ID}}
Order Date: {{.Date}}
Payment Method: {{.Order.PaymentMethod.Label}}

Order Summary:
{{range .Order.Items}}- {{.Name}} x{{.Quantity}} - {{line .UnitPrice .Quantity}}
{{end}}
Subtotal: {{money .Order.Subtotal}}
Shipping: {{shipping .Order.Shipping}}
Tax: {{money .Order.Tax}}
Total: {{money .Order.Total}}

{{if .Order.PaymentMethod.Deferred}}Your order has been placed successfully! You will pay cash when the order is delivered.{{else}}Your order has been placed successfully and payment has been processed.{{end}}

We'll send you another email when your order ships.

Thank you for shopping with {{.StoreName}}!

Best regards,
{{.StoreName}} Team
`))

type bodyData struct {
	Username  string
	StoreName string
	Date      string
	Order     orderdomain.Order
}

func subject(order orderdomain.Order) string {
	return "Order Confirmation - " + order.ID
}

// renderBody depends only on its inputs; dates are shown in UTC.
func renderBody(order orderdomain.Order, username, storeName string) (string, error) {
	date := "-"
	if !order.OrderDate.IsZero() {
		date = order.OrderDate.UTC().Format(dateLayout)
	}

	var buf bytes.Buffer
	err := bodyTmpl.Execute(&buf, bodyData{
		Username:  username,
		StoreName: storeName,
		Date:      date,
		Order:     order,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
