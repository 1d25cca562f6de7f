package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your account",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show your account",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			user, err := env.Client.Me(ctx)
			if err != nil {
				return err
			}
			return env.Printer.Profile(user)
		}),
	})

	cmd.AddCommand(newProfileUpdateCmd())

	return Require(cmd, access.Customer)
}

type profileUpdateOptions struct {
	name     string
	email    string
	password string
}

func newProfileUpdateCmd() *cobra.Command {
	var opts profileUpdateOptions

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your name, email or password",
		Args:  cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runProfileUpdate(ctx, env, env.Client, opts)
		}),
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "New display name")
	cmd.Flags().StringVar(&opts.email, "email", "", "New email address")
	cmd.Flags().StringVar(&opts.password, "password", "", "New password (leave empty to keep the current one)")

	return cmd
}

// runProfileUpdate sends the full profile, filling unset fields from the
// current account. The password is only sent when a new one is given.
func runProfileUpdate(ctx context.Context, env *Env, api profileAPI, opts profileUpdateOptions) error {
	current, err := api.Me(ctx)
	if err != nil {
		return err
	}

	update := client.ProfileUpdate{
		Name:     current.Name,
		Email:    current.Email,
		Password: opts.password,
	}
	if opts.name != "" {
		update.Name = opts.name
	}
	if opts.email != "" {
		update.Email = opts.email
	}

	if err := api.UpdateProfile(ctx, update); err != nil {
		return err
	}

	if update.Email != current.Email {
		env.Logger.Info().Msg("Email changed; the stored credential still carries the old address until the next login")
	}

	return env.Printer.Success("Profile updated")
}
