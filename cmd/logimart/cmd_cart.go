package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/app/services"
	"github.com/logimart/storefront/pkg/cart"
	"github.com/logimart/storefront/pkg/collection"
)

var promoFlag string

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and change the shopping cart",
}

// logimart cart show [--promo CODE]
var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart with its order summary",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		return showCart(cmd.OutOrStdout(), a.cart, promoFlag)
	}),
}

func showCart(w io.Writer, c *cart.Provider, promo string) error {
	items := c.Items()
	sum, err := c.Summary(promo)
	if err != nil {
		return err
	}
	if jsonFlag {
		return printJSON(w, struct {
			Items   []models.CartLineItem `json:"items"`
			Summary cart.Summary          `json:"summary"`
		}{items, sum})
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return nil
	}

	rows := collection.Map(items, func(it models.CartLineItem) []string {
		return []string{strconv.Itoa(it.ID), it.Name, money(it.Price), strconv.Itoa(it.Quantity), money(it.LineTotal())}
	})
	if err := table(w, []string{"ID", "NAME", "PRICE", "QTY", "TOTAL"}, rows); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Items:     %d\n", c.TotalQuantity())
	fmt.Fprintf(w, "Subtotal:  %s\n", money(sum.Subtotal))
	if sum.Promo != "" {
		fmt.Fprintf(w, "Discount:  -%s (%s)\n", money(sum.Discount), sum.Promo)
	}
	fmt.Fprintf(w, "Tax (8%%):  %s\n", money(sum.Tax))
	if sum.Shipping.IsZero() {
		fmt.Fprintln(w, "Shipping:  FREE")
	} else {
		fmt.Fprintf(w, "Shipping:  %s\n", money(sum.Shipping))
	}
	fmt.Fprintf(w, "Total:     %s\n", money(sum.Total))
	return nil
}

// logimart cart add PRODUCT_ID
var cartAddCmd = &cobra.Command{
	Use:   "add PRODUCT_ID",
	Short: "Add one unit of a product",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		p, ok := a.repos.Products.FindByID(ctx, id)
		if !ok {
			return fmt.Errorf("product %d not found", id)
		}
		if !p.InStock() {
			return fmt.Errorf("%s is out of stock", p.Name)
		}
		if err := a.cart.AddToCart(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s. Cart: %d item(s), %s\n", p.Name, a.cart.TotalQuantity(), money(a.cart.TotalPrice()))
		return nil
	}),
}

// cartItemCmd builds inc, dec and remove, which share their shape.
func cartItemCmd(use, short string, op func(*cart.Provider, context.Context, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " PRODUCT_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := op(a.cart, ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cart: %d item(s), %s\n", a.cart.TotalQuantity(), money(a.cart.TotalPrice()))
			return nil
		}),
	}
}

// logimart cart clear
var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.cart.ClearCart(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
		return nil
	}),
}

// logimart checkout --name --address --phone --payment [--promo]
var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the cart contents",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		user, err := a.currentUser(ctx)
		if err != nil {
			return err
		}

		f := cmd.Flags()
		in := services.CheckoutInput{Promo: promoFlag}
		in.ShippingAddress.Name, _ = f.GetString("name")
		in.ShippingAddress.Address, _ = f.GetString("address")
		in.ShippingAddress.Phone, _ = f.GetString("phone")
		in.PaymentMethod, _ = f.GetString("payment")
		if in.ShippingAddress.Name == "" {
			in.ShippingAddress.Name = user.Name
		}

		order, err := a.checkout.Checkout(ctx, user, in)
		if err != nil {
			return err
		}
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), order)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅  Order %s placed: %s, status %s.\n", order.ID, money(order.Total), order.Status)
		return nil
	}),
}

func init() {
	cartShowCmd.Flags().StringVar(&promoFlag, "promo", "", "promo code (SAVE10, SAVE20, WELCOME5)")
	checkoutCmd.Flags().StringVar(&promoFlag, "promo", "", "promo code")
	checkoutCmd.Flags().String("name", "", "recipient (defaults to your name)")
	checkoutCmd.Flags().String("address", "", "shipping address")
	checkoutCmd.Flags().String("phone", "", "contact phone")
	checkoutCmd.Flags().String("payment", models.PayCOD, "payment method: "+models.PaymentMethods)

	cartCmd.AddCommand(
		cartShowCmd,
		cartAddCmd,
		cartItemCmd("inc", "Increase a line's quantity", (*cart.Provider).IncreaseQty),
		cartItemCmd("dec", "Decrease a line's quantity (never below 1)", (*cart.Provider).DecreaseQty),
		cartItemCmd("remove", "Remove a line", (*cart.Provider).RemoveItem),
		cartClearCmd,
	)
}
