package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

// NewFavoritesCmd creates the favorites command group
func NewFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage your favorite services",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List your favorite services",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			favorites, err := env.Client.ListFavorites(ctx)
			if err != nil {
				return err
			}
			return env.Printer.Favorites(favorites)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <service-id>",
		Short: "Mark a service as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runFavorite(ctx, env, env.Client, client.ID(args[0]), true)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <service-id>",
		Aliases: []string{"remove"},
		Short:   "Unmark a favorite service",
		Args:    cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runFavorite(ctx, env, env.Client, client.ID(args[0]), false)
		}),
	})

	return Require(cmd, access.Customer)
}

func runFavorite(ctx context.Context, env *Env, api favoritesAPI, serviceID client.ID, add bool) error {
	if add {
		if err := api.AddFavorite(ctx, serviceID); err != nil {
			return err
		}
		return env.Printer.Success("Service %s added to favorites", serviceID)
	}

	if err := api.RemoveFavorite(ctx, serviceID); err != nil {
		return err
	}
	return env.Printer.Success("Service %s removed from favorites", serviceID)
}
