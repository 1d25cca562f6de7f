package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

// NewUsersCmd creates the users command group (admin only)
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage registered users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List registered users",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			users, err := env.Client.ListUsers(ctx)
			if err != nil {
				return err
			}
			return env.Printer.Users(users)
		}),
	})

	var unblock bool
	block := &cobra.Command{
		Use:   "block <user-id>",
		Short: "Block (or with --unblock, unblock) a user",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runBlockUser(ctx, env, env.Client, client.ID(args[0]), !unblock)
		}),
	}
	block.Flags().BoolVar(&unblock, "unblock", false, "Lift an existing block")
	cmd.AddCommand(block)

	return Require(cmd, access.Admin)
}

func runBlockUser(ctx context.Context, env *Env, api usersAPI, id client.ID, blocked bool) error {
	if err := api.BlockUser(ctx, id, blocked); err != nil {
		return err
	}
	if blocked {
		return env.Printer.Success("User %s blocked", id)
	}
	return env.Printer.Success("User %s unblocked", id)
}
