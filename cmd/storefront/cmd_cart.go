package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/pricing"
)

var errNoCatalog = errors.New("no product catalog found; pass --catalog or set STOREFRONT_CATALOG_PATH")

func (c *cli) productsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.app.Catalog == nil {
				return errNoCatalog
			}
			products, err := c.app.Catalog.ListProducts(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if c.asJSON {
				return writeJSON(out, products)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE")
			for _, p := range products {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, pricing.FormatMoney(p.Price))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of products to list")
	return cmd
}

func (c *cli) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the shopping cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show cart lines and the price breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.showCart(cmd)
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id>...",
		Short: "Add products from the catalog, one unit per id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.app.Catalog == nil {
				return errNoCatalog
			}
			if err := c.app.AddProducts(cmd.Context(), args...); err != nil {
				return err
			}
			return c.showCart(cmd)
		},
	}

	inc := &cobra.Command{
		Use:   "inc <product-id>",
		Short: "Increase a line's quantity by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Cart.Increase(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.showCart(cmd)
		},
	}

	dec := &cobra.Command{
		Use:   "dec <product-id>",
		Short: "Decrease a line's quantity by one (never below one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Cart.Decrease(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.showCart(cmd)
		},
	}

	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Cart.SetQuantity(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return c.showCart(cmd)
		},
	}

	rm := &cobra.Command{
		Use:     "rm <product-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a line from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Cart.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			return c.showCart(cmd)
		},
	}

	clr := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Cart.Clear(cmd.Context()); err != nil {
				return err
			}
			return c.showCart(cmd)
		},
	}

	cmd.AddCommand(show, add, inc, dec, set, rm, clr)
	return cmd
}

type cartView struct {
	Items    []cartdomain.LineItem `json:"items"`
	Count    int                   `json:"count"`
	Subtotal string                `json:"subtotal"`
	Shipping string                `json:"shipping"`
	Tax      string                `json:"tax"`
	Total    string                `json:"total"`
}

func (c *cli) showCart(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cart, err := c.app.Cart.GetCart(ctx)
	if err != nil {
		return err
	}
	b := pricing.ComputeBreakdown(cart.Items).Rounded()

	out := cmd.OutOrStdout()
	if c.asJSON {
		items := cart.Items
		if items == nil {
			items = []cartdomain.LineItem{}
		}
		return writeJSON(out, cartView{
			Items:    items,
			Count:    cart.ItemCount(),
			Subtotal: b.Subtotal.StringFixed(2),
			Shipping: b.Shipping.StringFixed(2),
			Tax:      b.Tax.StringFixed(2),
			Total:    b.Total.StringFixed(2),
		})
	}

	if cart.IsEmpty() {
		fmt.Fprintln(out, "Your cart is empty.")
		return nil
	}
	writeLines(out, cart.Items)
	fmt.Fprintln(out)
	writeBreakdown(out, b)
	return nil
}

func writeLines(out io.Writer, items []cartdomain.LineItem) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tTOTAL")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			it.ID, it.Name, it.Quantity,
			pricing.FormatMoney(it.UnitPrice), pricing.FormatMoney(it.LineTotal()))
	}
	tw.Flush()
}

func writeBreakdown(out io.Writer, b pricing.Breakdown) {
	fmt.Fprintf(out, "Subtotal: %s\n", pricing.FormatMoney(b.Subtotal))
	fmt.Fprintf(out, "Shipping: %s\n", pricing.FormatShipping(b.Shipping))
	fmt.Fprintf(out, "Tax:      %s\n", pricing.FormatMoney(b.Tax))
	fmt.Fprintf(out, "Total:    %s\n", pricing.FormatMoney(b.Total))
}
