package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	driverFlag  string
	profileFlag string
	jsonFlag    bool
)

var rootCmd = &cobra.Command{
	Use:           "logimart",
	Short:         "LogiMart storefront CLI",
	Long:          "Browse the catalog, manage the cart, check out and run the seller and admin tools of the LogiMart storefront.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "store driver: memory, disk, redis, sql or mongo (overrides STORE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "cart profile (overrides CART_PROFILE)")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "print JSON instead of tables")

	// Store
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)

	// Session
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(profileCmd)

	// Catalog
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(categoriesCmd)

	// Shopping
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)

	// Orders and admin
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(sellerCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(metricsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
