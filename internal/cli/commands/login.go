package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var opts loginOptions

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the salon",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runLogin(ctx, env, env.Client, opts)
		}),
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "Email address (or set SALON_EMAIL)")
	cmd.Flags().StringVar(&opts.password, "password", "", "Password (or set SALON_PASSWORD, will prompt if not provided)")

	return Require(cmd, access.Public)
}

type loginOptions struct {
	email    string
	password string
}

func runLogin(ctx context.Context, env *Env, api loginAPI, opts loginOptions) error {
	// Check for environment variables (useful for scripts)
	if opts.email == "" {
		opts.email = os.Getenv("SALON_EMAIL")
	}
	if opts.password == "" {
		opts.password = os.Getenv("SALON_PASSWORD")
	}

	if opts.email == "" {
		email, err := env.Prompt.Input("Email", "", nil)
		if err != nil {
			return fmt.Errorf("email is required (use --email flag or SALON_EMAIL env var): %w", err)
		}
		opts.email = email
	}

	if opts.password == "" {
		password, err := env.Prompt.Password("Password")
		if err != nil {
			return fmt.Errorf("password is required (use --password flag or SALON_PASSWORD env var): %w", err)
		}
		opts.password = password
	}

	env.Logger.Debug().Str("email", opts.email).Str("api_url", env.Config.APIURL).Msg("Logging in")

	resp, err := api.Login(ctx, opts.email, opts.password)
	if err != nil {
		return err
	}

	claims, err := env.Session.Save(resp.Token)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	if err := env.Printer.Success("Login successful!"); err != nil {
		return err
	}
	if !env.Printer.Structured() {
		fmt.Fprintf(env.Printer.Out(), "  User: %s\n", claims.Email)
		fmt.Fprintf(env.Printer.Out(), "  Role: %s\n", claims.Role())
	}
	return nil
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runLogout(env)
		}),
	}
	return Require(cmd, access.Public)
}

func runLogout(env *Env) error {
	wasAuthenticated := env.Session.Authenticated()
	if err := env.Session.Clear(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}

	if !wasAuthenticated {
		return env.Printer.Success("Not logged in")
	}
	return env.Printer.Success("Logged out")
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account and the views it can open",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runWhoami(env)
		}),
	}
	return Require(cmd, access.Customer)
}

func runWhoami(env *Env) error {
	return env.Printer.Whoami(env.Claims(), access.Views(env.Session.Claims()))
}
