package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/app/repositories"
	"github.com/logimart/storefront/app/services"
	"github.com/logimart/storefront/config"
	"github.com/logimart/storefront/database/migrations"
	"github.com/logimart/storefront/database/seeders"
	"github.com/logimart/storefront/pkg/auth"
	"github.com/logimart/storefront/pkg/cart"
	"github.com/logimart/storefront/pkg/event"
	"github.com/logimart/storefront/pkg/logger"
	"github.com/logimart/storefront/pkg/session"
	"github.com/logimart/storefront/pkg/store"
)

// app is everything a command needs, wired over one store.
type app struct {
	store   *store.Adapter
	repos   *repositories.Repositories
	bus     *event.Bus
	session *session.Manager
	cart    *cart.Provider

	auth     *services.AuthService
	checkout *services.CheckoutService
	orders   *services.OrderService
	sellers  *services.SellerService
	catalog  *services.CatalogService
}

func applyFlags() error {
	if err := config.Load(); err != nil {
		return err
	}
	if driverFlag != "" {
		config.Set("STORE_DRIVER", driverFlag)
	}
	if profileFlag != "" {
		config.Set("CART_PROFILE", profileFlag)
	}
	return nil
}

// openStore opens the configured store without seeding it.
func openStore(ctx context.Context) (*store.Adapter, error) {
	if err := applyFlags(); err != nil {
		return nil, err
	}
	return store.Open(ctx, migrations.Setup, store.WithSeeder(seeders.RunAll))
}

// boot opens and initializes the store and wires the services.
func boot(ctx context.Context) (*app, error) {
	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Initialize(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	repos := repositories.New(st, auth.NewBcryptHasher())
	bus := event.NewBus()
	bus.Listen(event.CartUpdated, func(p interface{}) {
		if u, ok := p.(cart.Updated); ok {
			logger.Debug("cart updated", "items", u.TotalQuantity, "total", u.TotalPrice.String())
		}
	})

	sess := session.New(st, repos.Users, session.WithBus(bus))
	c := cart.NewProvider(ctx, st, sess,
		cart.WithPolicy(cart.ParsePolicy(config.CartGate())),
		cart.WithProfile(config.CartProfile()),
		cart.WithBus(bus),
	)

	return &app{
		store:    st,
		repos:    repos,
		bus:      bus,
		session:  sess,
		cart:     c,
		auth:     services.NewAuthService(repos.Users, sess),
		checkout: services.NewCheckoutService(repos, c, bus),
		orders:   services.NewOrderService(repos),
		sellers:  services.NewSellerService(repos),
		catalog:  services.NewCatalogService(repos),
	}, nil
}

// withApp adapts a command body that needs a booted app.
func withApp(fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmdContext(cmd)

		a, err := boot(ctx)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, a.store.Close())
		}()
		return fn(ctx, a, cmd, args)
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithOperation(ctx, "cli."+cmd.Name())
}

// currentUser is the signed-in user or a hint to log in.
func (a *app) currentUser(ctx context.Context) (models.PublicUser, error) {
	u, ok := a.session.Current(ctx)
	if !ok {
		return models.PublicUser{}, fmt.Errorf("%w: run `logimart login EMAIL PASSWORD` first", services.ErrNotSignedIn)
	}
	return u, nil
}
