package commands

import (
	"context"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

// The interfaces below are the slices of *client.Client each command group
// uses.

type loginAPI interface {
	Login(ctx context.Context, email, password string) (*client.LoginResponse, error)
}

type profileAPI interface {
	Me(ctx context.Context) (*client.User, error)
	UpdateProfile(ctx context.Context, update client.ProfileUpdate) error
}

type appointmentsAPI interface {
	ListAppointments(ctx context.Context, scope access.Scope) ([]client.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id client.ID, status string) error
	CancelAppointment(ctx context.Context, id client.ID) error
}

type servicesAPI interface {
	ListServices(ctx context.Context) ([]client.Service, error)
	BookAppointment(ctx context.Context, booking client.BookingRequest) error
}

type reviewsAPI interface {
	ListReviews(ctx context.Context, serviceID client.ID) ([]client.Review, error)
	CreateReview(ctx context.Context, review client.ReviewRequest) error
}

type favoritesAPI interface {
	ListFavorites(ctx context.Context) ([]client.Favorite, error)
	AddFavorite(ctx context.Context, serviceID client.ID) error
	RemoveFavorite(ctx context.Context, serviceID client.ID) error
}

type usersAPI interface {
	ListUsers(ctx context.Context) ([]client.User, error)
	BlockUser(ctx context.Context, userID client.ID, blocked bool) error
}

type hoursAPI interface {
	ListWorkingHours(ctx context.Context) ([]client.WorkingHours, error)
	SetWorkingHours(ctx context.Context, hours client.WorkingHours) error
}

type dashboardAPI interface {
	ListAppointments(ctx context.Context, scope access.Scope) ([]client.Appointment, error)
	ListFavorites(ctx context.Context) ([]client.Favorite, error)
}
