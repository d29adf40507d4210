package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/angelmondragon/novastore/internal/orders"
	product "github.com/angelmondragon/novastore/internal/products"
	"github.com/angelmondragon/novastore/internal/storefront"
	"github.com/angelmondragon/novastore/pkg/config"
	"github.com/angelmondragon/novastore/pkg/enums"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cmd := flag.String("cmd", "status", "command: status|seed|reindex|seller-orders|products")
	seller := flag.String("seller", "", "seller id for -cmd=seller-orders")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
	})

	// seeding and reindexing happen while the app is built. No checkout runs
	// in this process, so checkout metrics stay unregistered.
	app, err := storefront.New(ctx, cfg, storefront.Options{Logger: logg})
	requireResource(ctx, logg, "storefront", err)
	defer func() {
		if err := app.Close(); err != nil {
			logg.Error(ctx, "error closing store", err)
		}
	}()

	var out any
	switch *cmd {
	case "status", "seed":
		out, err = app.Status(ctx)
	case "reindex":
		var sellers int
		sellers, err = app.Orders.RebuildSellerIndex(ctx)
		out = map[string]int{"sellers": sellers}
	case "seller-orders":
		if *seller == "" {
			fmt.Fprintln(os.Stderr, "missing -seller for seller-orders")
			os.Exit(1)
		}
		var subs []orders.SellerSubOrder
		subs, err = app.Orders.ListSellerOrders(ctx, *seller)
		out = renderSubOrders(subs, cfg.Checkout.Currency)
	case "products":
		var list []product.Product
		list, err = app.Catalog.List(ctx, enums.ProductFilterAll, nil)
		out = renderProducts(list, cfg.Checkout.Currency)
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		fail(ctx, logg, "command failed", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logg.Error(ctx, "encode output", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	fail(ctx, logg, fmt.Sprintf("resource not working: %s", resource), err)
}

func fail(ctx context.Context, logg *logger.Logger, msg string, err error) {
	logg.Error(logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), msg, err)
	os.Exit(1)
}
