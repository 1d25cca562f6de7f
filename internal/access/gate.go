package access

import (
	"errors"
	"fmt"

	"github.com/samber/mo"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("admin access required")
)

// Access is the minimum privilege a view or API call requires
type Access int

const (
	Public Access = iota
	Customer
	Admin
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Customer:
		return "customer"
	case Admin:
		return "admin"
	default:
		return fmt.Sprintf("access(%d)", int(a))
	}
}

// ParseAccess is the inverse of Access.String
func ParseAccess(s string) (Access, error) {
	switch s {
	case "", "public":
		return Public, nil
	case "customer":
		return Customer, nil
	case "admin":
		return Admin, nil
	default:
		return Public, fmt.Errorf("unknown access level '%s'", s)
	}
}

// Authorize decides whether claims grant the needed access. It must run
// before any protected content is fetched.
func Authorize(claims mo.Option[Claims], need Access) error {
	if need == Public {
		return nil
	}

	c, ok := claims.Get()
	if !ok {
		return ErrUnauthenticated
	}

	if need == Admin && !c.IsAdmin {
		return ErrForbidden
	}

	return nil
}

// Scope selects between the "all records" and "self" variants of an endpoint
type Scope int

const (
	ScopeSelf Scope = iota
	ScopeAll
)

// ScopeFor returns ScopeAll for administrators and ScopeSelf otherwise
func ScopeFor(c Claims) Scope {
	if c.IsAdmin {
		return ScopeAll
	}
	return ScopeSelf
}

// View is a navigable part of the client
type View struct {
	Name    string
	Command string
	Access  Access
}

var views = []View{
	{Name: "Dashboard", Command: "salon dashboard", Access: Customer},
	{Name: "Profile", Command: "salon profile show", Access: Customer},
	{Name: "Services", Command: "salon services ls", Access: Public},
	{Name: "Favorites", Command: "salon favorites ls", Access: Customer},
	{Name: "All Appointments", Command: "salon appointments ls", Access: Admin},
	{Name: "Registered Users", Command: "salon users ls", Access: Admin},
	{Name: "Work Schedule", Command: "salon hours set", Access: Admin},
}

// Views lists the views the claims may open, in navigation order
func Views(claims mo.Option[Claims]) []View {
	var visible []View
	for _, v := range views {
		if Authorize(claims, v.Access) == nil {
			visible = append(visible, v)
		}
	}
	return visible
}

// Appointment statuses understood by the gate
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Action is an operation offered on a single appointment
type Action string

const (
	// ActionConfirm sets the status to confirmed (admin)
	ActionConfirm Action = "confirm"
	// ActionReject sets the status to cancelled (admin)
	ActionReject Action = "reject"
	// ActionCancel deletes the customer's own appointment
	ActionCancel Action = "cancel"
)

// AppointmentActions returns the actions offered on an appointment in the
// given status. Admins confirm pending appointments and may cancel anything
// not yet cancelled; customers may only withdraw pending appointments.
func AppointmentActions(c Claims, status string) []Action {
	if !c.IsAdmin {
		if status == StatusPending {
			return []Action{ActionCancel}
		}
		return nil
	}

	var actions []Action
	if status == StatusPending {
		actions = append(actions, ActionConfirm)
	}
	if status != StatusCancelled {
		actions = append(actions, ActionReject)
	}
	return actions
}

// Allows reports whether action is offered on an appointment in status
func Allows(c Claims, status string, action Action) bool {
	for _, a := range AppointmentActions(c, status) {
		if a == action {
			return true
		}
	}
	return false
}
