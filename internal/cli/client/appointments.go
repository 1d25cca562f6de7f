package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/salonbook/salon/internal/access"
)

// Appointment represents a booked appointment
type Appointment struct {
	ID          ID     `json:"id"`
	ServiceID   ID     `json:"service_id,omitempty"`
	ServiceName string `json:"service_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	UserEmail   string `json:"user_email,omitempty"`
}

// ListAppointments returns every appointment for ScopeAll, or the caller's
// own appointments for ScopeSelf
func (c *Client) ListAppointments(ctx context.Context, scope access.Scope) ([]Appointment, error) {
	path := "/appointments/me"
	if scope == access.ScopeAll {
		path = "/appointments"
	}

	var appointments []Appointment
	err := c.do(ctx, request{
		op:            "failed to fetch appointments",
		method:        http.MethodGet,
		path:          path,
		authenticated: true,
	}, &appointments)
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// BookingRequest represents the appointment creation request
type BookingRequest struct {
	ServiceID ID     `json:"service_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,len=5,datetime=15:04"`
}

// BookAppointment books a service at the given date and time
func (c *Client) BookAppointment(ctx context.Context, booking BookingRequest) error {
	if err := c.validateRequest("booking", booking); err != nil {
		return err
	}

	return c.do(ctx, request{
		op:            "failed to book appointment",
		method:        http.MethodPost,
		path:          "/appointments",
		body:          booking,
		authenticated: true,
	}, nil)
}

// StatusUpdate represents the appointment status change request
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// UpdateAppointmentStatus changes the status of an appointment (admin only)
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id ID, status string) error {
	reqBody := StatusUpdate{Status: status}
	if err := c.validateRequest("status", reqBody); err != nil {
		return err
	}

	return c.do(ctx, request{
		op:            "failed to update appointment status",
		method:        http.MethodPut,
		path:          fmt.Sprintf("/appointments/%s/status", url.PathEscape(id.String())),
		body:          reqBody,
		authenticated: true,
	}, nil)
}

// CancelAppointment deletes one of the caller's appointments
func (c *Client) CancelAppointment(ctx context.Context, id ID) error {
	return c.do(ctx, request{
		op:            "failed to cancel appointment",
		method:        http.MethodDelete,
		path:          fmt.Sprintf("/appointments/%s", url.PathEscape(id.String())),
		authenticated: true,
	}, nil)
}
