package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dwikikusuma/storefront/internal/bootstrap"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/jsonfile"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/kvstore"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// cli carries flag values and the wired application between the root
// command's pre-run and its subcommands.
type cli struct {
	dbPath      string
	catalogPath string
	storeName   string
	logLevel    string
	asJSON      bool

	log   *slog.Logger
	store *kvstore.SQLiteStore
	app   *bootstrap.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "storefront",
		Short: "Manage the shopping cart, orders and confirmations",
		Long: `storefront keeps a shopping cart, an order history and a log of
order confirmation emails in a local key-value store.

Products are read from a JSON catalog file; everything else lives in the
SQLite database given by --db.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  c.open,
		PersistentPostRunE: c.close,
	}

	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "path to the SQLite store (default from config)")
	root.PersistentFlags().StringVar(&c.catalogPath, "catalog", "", "path to the products JSON file (default from config)")
	root.PersistentFlags().StringVar(&c.storeName, "store-name", "", "store name used in confirmation emails")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(
		c.productsCmd(),
		c.cartCmd(),
		c.checkoutCmd(),
		c.ordersCmd(),
		c.emailsCmd(),
		c.accountCmd(),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.dbPath == "" {
		c.dbPath = cfg.DBPath
	}
	if c.catalogPath == "" {
		c.catalogPath = cfg.CatalogPath
	}
	if c.storeName == "" {
		c.storeName = cfg.StoreName
	}
	if c.logLevel == "" {
		c.logLevel = cfg.LogLevel
	}

	c.log = logger.New(logger.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   c.logLevel,
		Format:  "text",
		Output:  cmd.ErrOrStderr(),
	})

	c.store, err = kvstore.OpenSQLite(c.dbPath)
	if err != nil {
		return err
	}

	opts := bootstrap.Options{StoreName: c.storeName, Logger: c.log}
	catalog, err := jsonfile.Open(c.catalogPath)
	switch {
	case err == nil:
		opts.Catalog = catalog
	case errors.Is(err, os.ErrNotExist):
		c.log.Debug("no catalog file", slog.String("path", c.catalogPath))
	default:
		return err
	}

	c.app = bootstrap.New(c.store, opts)
	return nil
}

func (c *cli) close(*cobra.Command, []string) error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}
