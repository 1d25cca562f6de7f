package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

// NewHoursCmd creates the working hours command group
func NewHoursCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hours",
		Aliases: []string{"schedule"},
		Short:   "Show or set the salon's working hours",
	}

	cmd.AddCommand(Require(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Show the weekly schedule",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			hours, err := env.Client.ListWorkingHours(ctx)
			if err != nil {
				return err
			}
			return env.Printer.WorkingHours(hours)
		}),
	}, access.Public))

	hours := client.WorkingHours{MaxAppointmentsPerSlot: client.DefaultMaxAppointmentsPerSlot}
	set := &cobra.Command{
		Use:     "set",
		Short:   "Set the opening hours of one day",
		Example: "  salon hours set --day Monday --open 09:00 --close 17:00 --max 5",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runSetHours(ctx, env, env.Client, hours)
		}),
	}
	set.Flags().StringVar(&hours.Day, "day", "", "Weekday, e.g. Monday (picked interactively when omitted)")
	set.Flags().StringVar(&hours.OpenTime, "open", "", "Opening time (HH:MM)")
	set.Flags().StringVar(&hours.CloseTime, "close", "", "Closing time (HH:MM)")
	set.Flags().IntVar(&hours.MaxAppointmentsPerSlot, "max", client.DefaultMaxAppointmentsPerSlot, "Maximum appointments per time slot")
	cmd.AddCommand(Require(set, access.Admin))

	return cmd
}

func runSetHours(ctx context.Context, env *Env, api hoursAPI, hours client.WorkingHours) error {
	var err error
	if hours.Day == "" {
		hours.Day, err = env.Prompt.SelectDay(client.Weekdays())
		if err != nil {
			return err
		}
	}
	if hours.OpenTime == "" {
		hours.OpenTime, err = env.Prompt.Input("Open time (HH:MM)", "09:00", validateLayout("15:04"))
		if err != nil {
			return err
		}
	}
	if hours.CloseTime == "" {
		hours.CloseTime, err = env.Prompt.Input("Close time (HH:MM)", "17:00", validateLayout("15:04"))
		if err != nil {
			return err
		}
	}

	if err := api.SetWorkingHours(ctx, hours); err != nil {
		return err
	}

	return env.Printer.Success("%s: %s - %s (Max: %d)", hours.Day, hours.OpenTime, hours.CloseTime, hours.MaxAppointmentsPerSlot)
}
