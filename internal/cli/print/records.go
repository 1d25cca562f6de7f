package print

import (
	"fmt"
	"strings"
	"time"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

// Appointments prints appointments. withUser adds the booking account.
// STATUS stays the last column so color codes don't disturb alignment.
func (p *Printer) Appointments(appointments []client.Appointment, withUser bool) error {
	if appointments == nil {
		appointments = []client.Appointment{}
	}
	return p.emit(appointments, func() error {
		if len(appointments) == 0 {
			_, err := fmt.Fprintln(p.out, "No appointments found.")
			return err
		}

		w := p.NewTabWriter()
		if withUser {
			fmt.Fprintln(w, "ID\tSERVICE\tDATE\tTIME\tUSER\tSTATUS")
		} else {
			fmt.Fprintln(w, "ID\tSERVICE\tDATE\tTIME\tSTATUS")
		}
		for _, a := range appointments {
			if withUser {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.ServiceName, a.Date, a.Time, a.UserEmail, Status(a.Status))
			} else {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.ServiceName, a.Date, a.Time, Status(a.Status))
			}
		}
		return w.Flush()
	})
}

// Services prints the catalog
func (p *Printer) Services(services []client.Service) error {
	if services == nil {
		services = []client.Service{}
	}
	return p.emit(services, func() error {
		if len(services) == 0 {
			_, err := fmt.Fprintln(p.out, "No services found.")
			return err
		}

		w := p.NewTabWriter()
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tDESCRIPTION")
		for _, s := range services {
			fmt.Fprintf(w, "%s\t%s\t$%s\t%s\n", s.ID, s.Name, s.Price, s.Description)
		}
		return w.Flush()
	})
}

// Reviews prints the reviews of one service
func (p *Printer) Reviews(reviews []client.Review) error {
	if reviews == nil {
		reviews = []client.Review{}
	}
	return p.emit(reviews, func() error {
		if len(reviews) == 0 {
			_, err := fmt.Fprintln(p.out, "No reviews yet.")
			return err
		}

		w := p.NewTabWriter()
		fmt.Fprintln(w, "RATING\tUSER\tDATE\tCOMMENT")
		for _, r := range reviews {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", stars(r.Rating), r.UserName, r.CreatedAt, r.Comment)
		}
		return w.Flush()
	})
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// Favorites prints the caller's favorite services
func (p *Printer) Favorites(favorites []client.Favorite) error {
	if favorites == nil {
		favorites = []client.Favorite{}
	}
	return p.emit(favorites, func() error {
		if len(favorites) == 0 {
			_, err := fmt.Fprintln(p.out, "No favorites yet.")
			return err
		}

		w := p.NewTabWriter()
		fmt.Fprintln(w, "SERVICE ID\tSERVICE")
		for _, f := range favorites {
			fmt.Fprintf(w, "%s\t%s\n", f.ServiceID, f.ServiceName)
		}
		return w.Flush()
	})
}

// Users prints the account roster
func (p *Printer) Users(users []client.User) error {
	if users == nil {
		users = []client.User{}
	}
	return p.emit(users, func() error {
		if len(users) == 0 {
			_, err := fmt.Fprintln(p.out, "No users found.")
			return err
		}

		w := p.NewTabWriter()
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTATUS")
		for _, u := range users {
			name := u.Name
			if u.IsAdmin {
				name += " (Admin)"
			}
			status := green("active")
			if u.Blocked {
				status = red("blocked")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, name, u.Email, status)
		}
		return w.Flush()
	})
}

// Profile prints a single account
func (p *Printer) Profile(user *client.User) error {
	return p.emit(user, func() error {
		w := p.NewTabWriter()
		fmt.Fprintf(w, "Name:\t%s\n", user.Name)
		fmt.Fprintf(w, "Email:\t%s\n", user.Email)
		fmt.Fprintf(w, "Role:\t%s\n", role(user.IsAdmin))
		return w.Flush()
	})
}

func role(isAdmin bool) string {
	if isAdmin {
		return "Admin"
	}
	return "Customer"
}

// WorkingHours prints the weekly schedule, one day per line
func (p *Printer) WorkingHours(hours []client.WorkingHours) error {
	if hours == nil {
		hours = []client.WorkingHours{}
	}
	return p.emit(hours, func() error {
		if len(hours) == 0 {
			_, err := fmt.Fprintln(p.out, "No working hours set.")
			return err
		}

		for _, h := range hours {
			if _, err := fmt.Fprintf(p.out, "%s: %s - %s (Max: %d)\n", h.Day, h.OpenTime, h.CloseTime, h.MaxAppointmentsPerSlot); err != nil {
				return err
			}
		}
		return nil
	})
}

// Identity is the structured form of whoami
type Identity struct {
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	Views     []IdentityView `json:"views"`
}

// IdentityView is one navigable view
type IdentityView struct {
	Name    string `json:"name"`
	Command string `json:"command"`
}

// Whoami prints the claims of the current session and the views they open
func (p *Printer) Whoami(claims access.Claims, views []access.View) error {
	id := Identity{
		Email: claims.Email,
		Role:  claims.Role(),
		Views: make([]IdentityView, 0, len(views)),
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time.UTC()
		id.ExpiresAt = &exp
	}
	for _, v := range views {
		id.Views = append(id.Views, IdentityView{Name: v.Name, Command: v.Command})
	}

	return p.emit(id, func() error {
		w := p.NewTabWriter()
		fmt.Fprintf(w, "Email:\t%s\n", id.Email)
		fmt.Fprintf(w, "Role:\t%s\n", id.Role)
		if id.ExpiresAt != nil {
			fmt.Fprintf(w, "Expires:\t%s\n", id.ExpiresAt.Format(time.RFC3339))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "VIEW\tCOMMAND")
		for _, v := range id.Views {
			fmt.Fprintf(w, "%s\t%s\n", v.Name, v.Command)
		}
		return w.Flush()
	})
}

// Dashboard is the structured form of the dashboard view
type Dashboard struct {
	Email        string               `json:"email"`
	Role         string               `json:"role"`
	Appointments []client.Appointment `json:"appointments"`
	Favorites    []client.Favorite    `json:"favorites"`
	Errors       []string             `json:"errors,omitempty"`
}

// Dashboard prints the welcome header, appointments and favorites. A section
// whose load failed shows its error instead of the records.
func (p *Printer) Dashboard(d Dashboard, isAdmin bool) error {
	if d.Appointments == nil {
		d.Appointments = []client.Appointment{}
	}
	if d.Favorites == nil {
		d.Favorites = []client.Favorite{}
	}

	return p.emit(d, func() error {
		fmt.Fprintf(p.out, "Welcome, %s\n", d.Email)
		fmt.Fprintf(p.out, "Role: %s\n\n", d.Role)

		heading := "My Appointments"
		if isAdmin {
			heading = "All Appointments"
		}
		fmt.Fprintln(p.out, heading)
		if err := p.Appointments(d.Appointments, isAdmin); err != nil {
			return err
		}

		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, "Favorites")
		if err := p.Favorites(d.Favorites); err != nil {
			return err
		}

		for _, e := range d.Errors {
			fmt.Fprintf(p.out, "\n%s %s\n", red("!"), e)
		}
		return nil
	})
}
