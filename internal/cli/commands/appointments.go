package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

// Board is a locally held appointment list. Actions change it only after
// the API has accepted them.
type Board struct {
	api    appointmentsAPI
	claims access.Claims
	Items  []client.Appointment
}

// NewBoard creates an empty board for claims
func NewBoard(api appointmentsAPI, claims access.Claims) *Board {
	return &Board{api: api, claims: claims}
}

// Load fetches the appointments visible to the board's claims
func (b *Board) Load(ctx context.Context) error {
	items, err := b.api.ListAppointments(ctx, access.ScopeFor(b.claims))
	if err != nil {
		return err
	}
	b.Items = items
	return nil
}

func (b *Board) find(id client.ID) (int, error) {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("appointment '%s' not found", id)
}

// Apply performs action on the appointment with id
func (b *Board) Apply(ctx context.Context, id client.ID, action access.Action) error {
	i, err := b.find(id)
	if err != nil {
		return err
	}

	status := b.Items[i].Status
	if !access.Allows(b.claims, status, action) {
		switch {
		case status == access.StatusCancelled:
			return fmt.Errorf("appointment %s is already cancelled", id)
		case status == access.StatusConfirmed && action == access.ActionConfirm:
			return fmt.Errorf("appointment %s is already confirmed", id)
		default:
			return fmt.Errorf("cannot %s a %s appointment", action, status)
		}
	}

	switch action {
	case access.ActionConfirm:
		return b.SetStatus(ctx, id, access.StatusConfirmed)
	case access.ActionReject:
		return b.SetStatus(ctx, id, access.StatusCancelled)
	case access.ActionCancel:
		if err := b.api.CancelAppointment(ctx, id); err != nil {
			return err
		}
		b.Items = append(b.Items[:i], b.Items[i+1:]...)
		return nil
	default:
		return fmt.Errorf("unknown action '%s'", action)
	}
}

// SetStatus sends a status update and records it locally on success
func (b *Board) SetStatus(ctx context.Context, id client.ID, status string) error {
	i, err := b.find(id)
	if err != nil {
		return err
	}

	if err := b.api.UpdateAppointmentStatus(ctx, id, status); err != nil {
		return err
	}
	b.Items[i].Status = status
	return nil
}

// NewAppointmentsCmd creates the appointments command group
func NewAppointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appts"},
		Short:   "List and manage appointments",
	}

	cmd.AddCommand(Require(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List appointments (all of them for admins, your own otherwise)",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			board := NewBoard(env.Client, env.Claims())
			if err := board.Load(ctx); err != nil {
				return err
			}
			return env.Printer.Appointments(board.Items, env.Claims().IsAdmin)
		}),
	}, access.Customer))

	cmd.AddCommand(Require(&cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an appointment",
		Long: `Cancel an appointment.

Customers withdraw their own pending appointments. Admins set any
appointment that is not already cancelled to cancelled.`,
		Args: cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			action := access.ActionCancel
			if env.Claims().IsAdmin {
				action = access.ActionReject
			}
			return runAppointmentAction(ctx, env, env.Client, client.ID(args[0]), action)
		}),
	}, access.Customer))

	cmd.AddCommand(Require(&cobra.Command{
		Use:   "confirm <id>",
		Short: "Confirm a pending appointment",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runAppointmentAction(ctx, env, env.Client, client.ID(args[0]), access.ActionConfirm)
		}),
	}, access.Admin))

	cmd.AddCommand(Require(&cobra.Command{
		Use:       "status <id> <pending|confirmed|cancelled>",
		Short:     "Set the status of an appointment",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{access.StatusPending, access.StatusConfirmed, access.StatusCancelled},
		RunE: run(func(ctx context.Context, env *Env, args []string) error {
			return runSetStatus(ctx, env, env.Client, client.ID(args[0]), args[1])
		}),
	}, access.Admin))

	return cmd
}

func runAppointmentAction(ctx context.Context, env *Env, api appointmentsAPI, id client.ID, action access.Action) error {
	board := NewBoard(api, env.Claims())
	if err := board.Load(ctx); err != nil {
		return err
	}

	if err := board.Apply(ctx, id, action); err != nil {
		return err
	}

	switch action {
	case access.ActionConfirm:
		return env.Printer.Success("Appointment %s confirmed", id)
	default:
		return env.Printer.Success("Appointment %s cancelled", id)
	}
}

func runSetStatus(ctx context.Context, env *Env, api appointmentsAPI, id client.ID, status string) error {
	board := NewBoard(api, env.Claims())
	if err := board.Load(ctx); err != nil {
		return err
	}

	if err := board.SetStatus(ctx, id, status); err != nil {
		return err
	}
	return env.Printer.Success("Appointment %s is now %s", id, status)
}
