package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/pkg/collection"
	"github.com/logimart/storefront/pkg/rbac"
)

var sellerFilter int

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and manage the catalog",
}

// logimart products list [--seller N]
var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		products := a.repos.Products.All(ctx)
		if sellerFilter > 0 {
			products = a.repos.Products.BySeller(ctx, sellerFilter)
		}
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), products)
		}

		rows := collection.Map(products, func(p models.Product) []string {
			return []string{
				strconv.Itoa(p.ID), p.Name, p.Category, money(p.Price),
				strconv.Itoa(p.Stock), p.Status, strconv.Itoa(p.SellerID),
			}
		})
		return table(cmd.OutOrStdout(), []string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK", "STATUS", "SELLER"}, rows)
	}),
}

// logimart products show ID
var productsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one product",
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
		return printJSON(cmd.OutOrStdout(), p)
	}),
}

// logimart products add --name ... --price ... --category ...
var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "List a new product (seller or admin)",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		actor, err := a.currentUser(ctx)
		if err != nil {
			return err
		}

		f := cmd.Flags()
		in := models.ProductInput{}
		in.Name, _ = f.GetString("name")
		in.Description, _ = f.GetString("description")
		in.Category, _ = f.GetString("category")
		in.Brand, _ = f.GetString("brand")
		in.Image, _ = f.GetString("image")
		in.Stock, _ = f.GetInt("stock")
		in.Discount, _ = f.GetInt("discount")
		in.SellerID, _ = f.GetInt("seller")
		in.Features, _ = f.GetStringSlice("features")
		if in.Price, err = decimalFlag(f, "price"); err != nil {
			return err
		}
		if in.OriginalPrice, err = decimalFlag(f, "original-price"); err != nil {
			return err
		}

		p, err := a.catalog.AddProduct(ctx, actor, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅  Listed %q as product %d.\n", p.Name, p.ID)
		return nil
	}),
}

// logimart products update ID [--price ...]
var productsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a product (owner or admin)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		actor, err := a.currentUser(ctx)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		upd, err := productUpdateFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		p, err := a.catalog.UpdateProduct(ctx, actor, id, upd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅  Updated product %d (%s).\n", p.ID, p.Status)
		return nil
	}),
}

// logimart products delete ID
var productsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove a product (owner or admin)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		actor, err := a.currentUser(ctx)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := a.catalog.DeleteProduct(ctx, actor, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed product %d.\n", id)
		return nil
	}),
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Catalog categories",
}

// logimart categories list
var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with product counts",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		cats, err := a.repos.Categories.RefreshCounts(ctx)
		if err != nil {
			return err
		}
		if jsonFlag {
			return printJSON(cmd.OutOrStdout(), cats)
		}
		rows := collection.Map(cats, func(c models.Category) []string {
			return []string{strconv.Itoa(c.ID), c.Name, c.Slug, strconv.Itoa(c.Count)}
		})
		return table(cmd.OutOrStdout(), []string{"ID", "NAME", "SLUG", "PRODUCTS"}, rows)
	}),
}

// logimart categories add NAME
var categoriesAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a category (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		actor, err := a.currentUser(ctx)
		if err != nil {
			return err
		}
		if err := rbac.Require(actor.Role, rbac.Admin); err != nil {
			return fmt.Errorf("categories add: %w", err)
		}
		c, err := a.repos.Categories.Create(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅  Added category %s (%s).\n", c.Name, c.Slug)
		return nil
	}),
}

func decimalFlag(f *pflag.FlagSet, name string) (decimal.Decimal, error) {
	raw, _ := f.GetString(name)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

func productUpdateFromFlags(f *pflag.FlagSet) (models.ProductUpdate, error) {
	var upd models.ProductUpdate
	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}
	num := func(name string) *int {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetInt(name)
		return &v
	}

	upd.Name = str("name")
	upd.Description = str("description")
	upd.Category = str("category")
	upd.Brand = str("brand")
	upd.Image = str("image")
	upd.Stock = num("stock")
	upd.Discount = num("discount")
	if f.Changed("features") {
		upd.Features, _ = f.GetStringSlice("features")
	}

	for name, dst := range map[string]**decimal.Decimal{"price": &upd.Price, "original-price": &upd.OriginalPrice} {
		if !f.Changed(name) {
			continue
		}
		d, err := decimalFlag(f, name)
		if err != nil {
			return upd, err
		}
		*dst = &d
	}
	return upd, nil
}

func productFlags(f *pflag.FlagSet) {
	f.String("name", "", "product name")
	f.String("description", "", "description")
	f.String("price", "", "price")
	f.String("original-price", "", "list price before discount (defaults to price)")
	f.Int("discount", 0, "discount percent")
	f.String("category", "", "category slug")
	f.String("brand", "", "brand")
	f.Int("stock", 0, "units in stock")
	f.String("image", "", "image URL")
	f.StringSlice("features", nil, "comma-separated feature list")
}

func init() {
	productsListCmd.Flags().IntVar(&sellerFilter, "seller", 0, "only products of this seller id")

	productFlags(productsAddCmd.Flags())
	productsAddCmd.Flags().Int("seller", 0, "seller id (admin only; sellers list under their own id)")
	productFlags(productsUpdateCmd.Flags())

	productsCmd.AddCommand(productsListCmd, productsShowCmd, productsAddCmd, productsUpdateCmd, productsDeleteCmd)
	categoriesCmd.AddCommand(categoriesListCmd, categoriesAddCmd)
}
