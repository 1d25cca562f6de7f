package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

// NewServicesCmd creates the services command group
func NewServicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service"},
		Short:   "Browse and book salon services",
	}

	cmd.AddCommand(Require(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List available services",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			services, err := env.Client.ListServices(ctx)
			if err != nil {
				return err
			}
			return env.Printer.Services(services)
		}),
	}, access.Public))

	cmd.AddCommand(newBookCmd())

	return cmd
}

type bookOptions struct {
	serviceID string
	date      string
	time      string
}

func newBookCmd() *cobra.Command {
	var opts bookOptions

	cmd := &cobra.Command{
		Use:   "book [service-id]",
		Short: "Book an appointment",
		Long: `Book an appointment for a service.

A service, a date and a time are all required. When the service is omitted
an interactive picker is shown; missing date and time are prompted for.`,
		Example: "  salon services book 3 --date 2025-03-14 --time 10:30",
		Args:    cobra.MaximumNArgs(1),
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			if len(args) == 1 {
				opts.serviceID = args[0]
			}
			return runBook(ctx, env, env.Client, opts)
		}),
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.time, "time", "", "Time (HH:MM, 24h)")

	return Require(cmd, access.Customer)
}

func runBook(ctx context.Context, env *Env, api servicesAPI, opts bookOptions) error {
	services, err := api.ListServices(ctx)
	if err != nil {
		return err
	}

	var service client.Service
	if opts.serviceID == "" {
		service, err = env.Prompt.SelectService(services)
		if err != nil {
			return err
		}
	} else {
		found, err := client.FindService(services, client.ID(opts.serviceID))
		if err != nil {
			return err
		}
		service = *found
	}

	if opts.date == "" {
		opts.date, err = env.Prompt.Input("Date (YYYY-MM-DD)", env.Now().Format("2006-01-02"), validateLayout("2006-01-02"))
		if err != nil {
			return err
		}
	}
	if opts.time == "" {
		opts.time, err = env.Prompt.Input("Time (HH:MM)", "", validateLayout("15:04"))
		if err != nil {
			return err
		}
	}

	booking := client.BookingRequest{
		ServiceID: service.ID,
		Date:      opts.date,
		Time:      opts.time,
	}
	if err := api.BookAppointment(ctx, booking); err != nil {
		return err
	}

	return env.Printer.Success("Booked %s on %s at %s (pending confirmation)", service.Name, booking.Date, booking.Time)
}

// validateLayout checks prompt input against a time layout
func validateLayout(layout string) func(string) error {
	return func(s string) error {
		if len(s) != len(layout) {
			return fmt.Errorf("expected format %s", layout)
		}
		if _, err := time.Parse(layout, s); err != nil {
			return fmt.Errorf("expected format %s", layout)
		}
		return nil
	}
}
