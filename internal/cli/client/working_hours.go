package client

import (
	"context"
	"fmt"
	"net/http"
)

// DefaultMaxAppointmentsPerSlot is the capacity used when none is given
const DefaultMaxAppointmentsPerSlot = 5

// WorkingHours is the opening window of one weekday
type WorkingHours struct {
	ID                     ID     `json:"id,omitempty"`
	Day                    string `json:"day" validate:"required,weekday"`
	OpenTime               string `json:"open_time" validate:"required,len=5,datetime=15:04"`
	CloseTime              string `json:"close_time" validate:"required,len=5,datetime=15:04"`
	MaxAppointmentsPerSlot int    `json:"max_appointments_per_slot" validate:"min=1"`
}

// ListWorkingHours returns the configured opening hours. No credential is needed.
func (c *Client) ListWorkingHours(ctx context.Context) ([]WorkingHours, error) {
	var hours []WorkingHours
	err := c.do(ctx, request{
		op:     "failed to fetch working hours",
		method: http.MethodGet,
		path:   "/working-hours",
	}, &hours)
	if err != nil {
		return nil, err
	}
	return hours, nil
}

// SetWorkingHours creates or replaces the hours of one day (admin only)
func (c *Client) SetWorkingHours(ctx context.Context, hours WorkingHours) error {
	hours.ID = ""
	if err := c.validateRequest("working hours", hours); err != nil {
		return err
	}
	// HH:MM compares correctly as a string
	if hours.CloseTime <= hours.OpenTime {
		return fmt.Errorf("invalid working hours: close_time must be after open_time")
	}

	return c.do(ctx, request{
		op:            "failed to update working hours",
		method:        http.MethodPost,
		path:          "/working-hours",
		body:          hours,
		authenticated: true,
	}, nil)
}
