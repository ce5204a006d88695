package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/collection"
	"github.com/logimart/storefront/pkg/metrics"
	"github.com/logimart/storefront/pkg/rbac"
)

var (
	orderUserFilter   int
	orderSellerFilter int
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Order history and fulfilment",
}

// logimart orders list [--user N|--seller N]
var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the orders you may see",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		actor, err := a.currentUser(ctx)
		if err != nil {
			return err
		}

		orders := a.orders.List(ctx, actor)
		if orderUserFilter > 0 || orderSellerFilter > 0 {
			if err := rbac.Require(actor.Role, rbac.Admin); err != nil {
				return fmt.Errorf("orders list filters: %w", err)
			}
			switch {
			case orderUserFilter > 0:
				orders = a.repos.Orders.ByUser(ctx, orderUserFilter)
			default:
				orders = a.repos.Orders.BySeller(ctx, orderSellerFilter)
			}
		}

		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), orders)
		}
		rows := collection.Map(orders, func(o models.Order) []string {
			return []string{o.ID, o.Date, o.UserName, strconv.Itoa(len(o.Items)), money(o.Total), o.Status, o.PaymentMethod}
		})
		return table(cmd.OutOrStdout(), []string{"ID", "DATE", "CUSTOMER", "ITEMS", "TOTAL", "STATUS", "PAYMENT"}, rows)
	}),
}

// logimart orders status ORDER_ID STATUS
var ordersStatusCmd = &cobra.Command{
	Use:   "status ORDER_ID STATUS",
	Short: "Move an order forward (seller or admin)",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		actor, err := a.currentUser(ctx)
		if err != nil {
			return err
		}
		o, err := a.orders.UpdateStatus(ctx, actor, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s.\n", o.ID, o.Status)
		return nil
	}),
}

var sellerCmd = &cobra.Command{
	Use:   "seller",
	Short: "Seller reports",
}

// sellerID is the explicit argument (admins only) or the signed-in seller.
func sellerID(ctx context.Context, a *app, args []string) (int, error) {
	actor, err := a.currentUser(ctx)
	if err != nil {
		return 0, err
	}
	if len(args) == 0 {
		if err := rbac.Require(actor.Role, rbac.Seller); err != nil {
			return 0, err
		}
		return actor.ID, nil
	}
	if err := rbac.Require(actor.Role, rbac.Admin); err != nil {
		return 0, err
	}
	return parseID(args[0])
}

// logimart seller dashboard [SELLER_ID]
var sellerDashboardCmd = &cobra.Command{
	Use:   "dashboard [SELLER_ID]",
	Short: "Sales overview",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		id, err := sellerID(ctx, a, args)
		if err != nil {
			return err
		}
		d := a.sellers.Dashboard(ctx, id)
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), d)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total sales:     %s\n", money(d.TotalSales))
		fmt.Fprintf(out, "Orders:          %d\n", d.TotalOrders)
		fmt.Fprintf(out, "Products:        %d\n", d.TotalProducts)
		fmt.Fprintf(out, "Pending orders:  %d\n\n", d.PendingOrders)
		rows := collection.Map(d.RecentOrders, func(o models.Order) []string {
			return []string{o.ID, o.Date, o.UserName, o.Status}
		})
		return table(out, []string{"RECENT", "DATE", "CUSTOMER", "STATUS"}, rows)
	}),
}

// logimart seller earnings [SELLER_ID]
var sellerEarningsCmd = &cobra.Command{
	Use:   "earnings [SELLER_ID]",
	Short: "Revenue split",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		id, err := sellerID(ctx, a, args)
		if err != nil {
			return err
		}
		e := a.sellers.Earnings(ctx, id, time.Now())
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), e)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total:         %s\n", money(e.Total))
		fmt.Fprintf(out, "This month:    %s\n", money(e.Monthly))
		fmt.Fprintf(out, "Pending:       %s\n", money(e.Pending))
		fmt.Fprintf(out, "Withdrawable:  %s\n", money(e.Withdrawable))
		return nil
	}),
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Accounts (admin)",
}

// logimart users list
var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every account",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		actor, err := a.currentUser(ctx)
		if err != nil {
			return err
		}
		if err := rbac.Require(actor.Role, rbac.Admin); err != nil {
			return err
		}

		users := a.repos.Users.All(ctx)
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), users)
		}
		rows := collection.Map(users, func(u models.PublicUser) []string {
			return []string{strconv.Itoa(u.ID), u.Name, u.Email, u.Role, u.Status, u.JoinDate}
		})
		return table(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "JOINED"}, rows)
	}),
}

// logimart metrics
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print this process's metrics in Prometheus text format",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if _, err := a.store.Keys(ctx); err != nil {
			return err
		}
		return metrics.Dump(cmd.OutOrStdout(), nil, metricsPrefix)
	}),
}

var metricsPrefix string

func init() {
	metricsCmd.Flags().StringVar(&metricsPrefix, "prefix", "", "only metric families whose name starts with this")
	ordersListCmd.Flags().IntVar(&orderUserFilter, "user", 0, "only orders of this user id (admin)")
	ordersListCmd.Flags().IntVar(&orderSellerFilter, "seller", 0, "only orders with items of this seller id (admin)")

	ordersCmd.AddCommand(ordersListCmd, ordersStatusCmd)
	sellerCmd.AddCommand(sellerDashboardCmd, sellerEarningsCmd)
	usersCmd.AddCommand(usersListCmd)
}
