package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/logimart/storefront/app/models"
	"github.com/logimart/storefront/app/services"
	"github.com/logimart/storefront/pkg/session"
)

var rememberFlag bool

// logimart login EMAIL PASSWORD
var loginCmd = &cobra.Command{
	Use:   "login EMAIL PASSWORD",
	Short: "Sign in",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		u, err := a.auth.Login(ctx, services.LoginInput{Email: args[0], Password: args[1], Remember: rememberFlag})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s (%s). Home: %s\n", u.Name, u.Role, session.RedirectPath(u.Role))
		return nil
	}),
}

// logimart logout
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out; the cart is kept",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	}),
}

// logimart whoami
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		u, ok := a.auth.Current(ctx)
		if !ok {
			if email := a.session.RememberedEmail(ctx); email != "" {
				fmt.Fprintf(out, "Not signed in (remembered: %s).\n", email)
				return nil
			}
			fmt.Fprintln(out, "Not signed in.")
			return nil
		}
		if jsonFlag {
			return printJSON(out, u)
		}
		fmt.Fprintf(out, "%s <%s>  id=%d  role=%s  joined=%s\n", u.Name, u.Email, u.ID, u.Role, u.JoinDate)
		return nil
	}),
}

// logimart register NAME EMAIL PASSWORD
var registerCmd = &cobra.Command{
	Use:   "register NAME EMAIL PASSWORD",
	Short: "Create a customer account",
	Args:  cobra.ExactArgs(3),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		u, err := a.auth.Register(ctx, models.RegisterInput{Name: args[0], Email: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅  Registered %s (id %d). Sign in with `logimart login`.\n", u.Email, u.ID)
		return nil
	}),
}

// logimart profile --name ... --phone ...
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update the signed-in user's profile",
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		var upd models.ProfileUpdate
		flags := cmd.Flags()
		for name, dst := range map[string]**string{
			"name":     &upd.Name,
			"email":    &upd.Email,
			"phone":    &upd.Phone,
			"address":  &upd.Address,
			"avatar":   &upd.Avatar,
			"password": &upd.Password,
		} {
			if flags.Changed(name) {
				v, _ := flags.GetString(name)
				*dst = &v
			}
		}

		u, err := a.auth.UpdateProfile(ctx, upd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅  Profile updated for %s.\n", u.Email)
		return nil
	}),
}

func init() {
	loginCmd.Flags().BoolVar(&rememberFlag, "remember", false, "remember the email for next time")

	for _, name := range []string{"name", "email", "phone", "address", "avatar", "password"} {
		profileCmd.Flags().String(name, "", "new "+name)
	}
}
