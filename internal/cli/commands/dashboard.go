package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
	"github.com/salonbook/salon/internal/cli/print"
	"github.com/salonbook/salon/internal/loader"
)

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show your appointments and favorites",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runDashboard(ctx, env, env.Client)
		}),
	}
	return Require(cmd, access.Customer)
}

// runDashboard loads appointments and favorites concurrently. A failed
// section is reported next to the one that loaded.
func runDashboard(ctx context.Context, env *Env, api dashboardAPI) error {
	claims := env.Claims()

	l := loader.New(ctx, 2, env.Logger)
	appointments := loader.Go(l, "appointments", func(ctx context.Context) ([]client.Appointment, error) {
		return api.ListAppointments(ctx, access.ScopeFor(claims))
	})
	favorites := loader.Go(l, "favorites", func(ctx context.Context) ([]client.Favorite, error) {
		return api.ListFavorites(ctx)
	})
	l.Wait()

	d := print.Dashboard{
		Email: claims.Email,
		Role:  claims.Role(),
	}

	var errs []error
	if v, err := appointments.Result().Get(); err != nil {
		errs = append(errs, err)
	} else {
		d.Appointments = v
	}
	if v, err := favorites.Result().Get(); err != nil {
		errs = append(errs, err)
	} else {
		d.Favorites = v
	}

	for _, err := range errs {
		if errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("%w: run 'salon login' to sign in again", err)
		}
		d.Errors = append(d.Errors, err.Error())
	}

	return env.Printer.Dashboard(d, claims.IsAdmin)
}
