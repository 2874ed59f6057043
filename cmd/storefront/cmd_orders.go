package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	notificationdomain "github.com/dwikikusuma/storefront/internal/notification/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/dwikikusuma/storefront/internal/pricing"
)

func (c *cli) checkoutCmd() *cobra.Command {
	var req checkoutdomain.PlaceOrderRequest
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart",
		Long: `Commit the cart as an order, record its confirmation email and empty
the cart.

Card payments (credit, paypal, apple, google) need the card flags; cash on
delivery (cod) does not. Unknown payment methods are treated as card.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			receipt, err := c.app.Checkout.PlaceOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if c.asJSON {
				return writeJSON(out, receipt)
			}
			o := receipt.Order
			fmt.Fprintf(out, "Order %s placed (%s)\n", o.ID, o.Status)
			fmt.Fprintf(out, "Payment:  %s\n", o.PaymentMethod.Label())
			writeBreakdown(out, pricing.Breakdown{
				Subtotal: o.Subtotal,
				Shipping: o.Shipping,
				Tax:      o.Tax,
				Total:    o.Total,
			}.Rounded())
			if receipt.Confirmation.To != "" {
				fmt.Fprintf(out, "Confirmation sent to %s\n", receipt.Confirmation.To)
			} else {
				fmt.Fprintln(out, "Confirmation email could not be recorded.")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Method, "payment", string(orderdomain.PaymentCredit), "credit, paypal, apple, google or cod")
	f.StringVar(&req.Card.Number, "card-number", "", "card number, at least 16 digits")
	f.StringVar(&req.Card.Expiry, "expiry", "", "card expiry, MM/YY")
	f.StringVar(&req.Card.CVV, "cvv", "", "card security code")
	f.StringVar(&req.Card.Name, "card-name", "", "name on the card")
	f.StringVar(&req.Card.BillingAddress, "billing-address", "", "billing address")
	return cmd
}

func (c *cli) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders [order-id]",
		Short: "List past orders, newest first, or show one order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				o, err := c.app.Orders.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if c.asJSON {
					return writeJSON(out, o)
				}
				writeOrder(out, o)
				return nil
			}

			orders, err := c.app.Orders.List(ctx)
			if err != nil {
				return err
			}
			if c.asJSON {
				if orders == nil {
					orders = []orderdomain.Order{}
				}
				return writeJSON(out, orders)
			}
			if len(orders) == 0 {
				fmt.Fprintln(out, "No orders yet.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ORDER\tDATE\tITEMS\tTOTAL\tPAYMENT\tSTATUS")
			for _, o := range orders {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
					o.ID, orderDate(o), o.ItemCount(), pricing.FormatMoney(o.Total.Round(2)),
					o.PaymentMethod.Label(), o.Status)
			}
			return tw.Flush()
		},
	}
	return cmd
}

func (c *cli) emailsCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "emails",
		Short: "Show recorded order confirmation emails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc := c.app.Notifications

			var (
				records []notificationdomain.ConfirmationRecord
				err     error
			)
			if to != "" {
				records, err = svc.ListFor(ctx, to)
			} else {
				records, err = svc.List(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.asJSON {
				if records == nil {
					records = []notificationdomain.ConfirmationRecord{}
				}
				return writeJSON(out, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No emails sent.")
				return nil
			}
			for i, r := range records {
				if i > 0 {
					fmt.Fprintln(out, "----")
				}
				fmt.Fprintf(out, "To: %s\nSubject: %s\nStatus: %s\n\n%s\n", r.To, r.Subject, r.Status, r.Body)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "only show emails sent to this address")
	return cmd
}

func writeOrder(out io.Writer, o orderdomain.Order) {
	fmt.Fprintf(out, "Order:    %s\n", o.ID)
	fmt.Fprintf(out, "Date:     %s\n", orderDate(o))
	fmt.Fprintf(out, "Status:   %s\n", o.Status)
	fmt.Fprintf(out, "Payment:  %s\n\n", o.PaymentMethod.Label())
	writeLines(out, o.Items)
	fmt.Fprintln(out)
	writeBreakdown(out, pricing.Breakdown{
		Subtotal: o.Subtotal,
		Shipping: o.Shipping,
		Tax:      o.Tax,
		Total:    o.Total,
	}.Rounded())
}

func orderDate(o orderdomain.Order) string {
	if o.OrderDate.IsZero() {
		return "-"
	}
	return o.OrderDate.Format(orderdomain.DateLayout)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
