package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logimart/storefront/pkg/database"
	"github.com/logimart/storefront/pkg/migration"
)

// logimart seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed any missing collections",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		keys, err := a.store.Keys(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅  Store ready (%s, %d keys).\n", a.store.DriverName(), len(keys))
		return nil
	}),
}

// logimart reset
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the users, products, orders and categories and seed them again",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmdContext(cmd)
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, st.Close()) }()

		if err := st.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅  Store reset to the demo data.")
		return nil
	},
}

func withRunner(fn func(r *migration.Runner) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := applyFlags(); err != nil {
			return err
		}
		db, err := database.Connect()
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, database.Close(db)) }()
		return fn(migration.New(db, cmd.OutOrStdout()))
	}
}

// logimart migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the sql store schema",
	RunE: withRunner(func(r *migration.Runner) error {
		return r.Run()
	}),
}

// logimart migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: withRunner(func(r *migration.Runner) error {
		return r.Rollback()
	}),
}

// logimart migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: withRunner(func(r *migration.Runner) error {
		return r.Status()
	}),
}
