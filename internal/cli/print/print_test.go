package print

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/client"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var appointments = []client.Appointment{
	{ID: "1", ServiceName: "Haircut", Date: "2025-03-14", Time: "10:00", Status: "pending", UserEmail: "jane@salon.test"},
	{ID: "2", ServiceName: "Manicure", Date: "2025-03-15", Time: "11:30", Status: "confirmed", UserEmail: "bob@salon.test"},
}

func TestAppointments_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, "table").Appointments(appointments, true))

	out := buf.String()
	assert.Contains(t, out, "ID  SERVICE   DATE        TIME   USER             STATUS")
	assert.Contains(t, out, "jane@salon.test")
	assert.Contains(t, out, "confirmed")

	buf.Reset()
	require.NoError(t, New(&buf, "table").Appointments(appointments, false))
	assert.NotContains(t, buf.String(), "USER")
}

func TestEmptyStates(t *testing.T) {
	tests := []struct {
		name   string
		render func(p *Printer) error
		want   string
	}{
		{name: "appointments", render: func(p *Printer) error { return p.Appointments(nil, false) }, want: "No appointments found.\n"},
		{name: "services", render: func(p *Printer) error { return p.Services(nil) }, want: "No services found.\n"},
		{name: "users", render: func(p *Printer) error { return p.Users(nil) }, want: "No users found.\n"},
		{name: "favorites", render: func(p *Printer) error { return p.Favorites(nil) }, want: "No favorites yet.\n"},
		{name: "reviews", render: func(p *Printer) error { return p.Reviews(nil) }, want: "No reviews yet.\n"},
		{name: "hours", render: func(p *Printer) error { return p.WorkingHours(nil) }, want: "No working hours set.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.render(New(&buf, "table")))
			assert.Equal(t, tt.want, buf.String())

			// structured output is an empty list, never a message
			buf.Reset()
			require.NoError(t, tt.render(New(&buf, "json")))
			assert.JSONEq(t, `[]`, buf.String())
		})
	}
}

func TestJSONAndYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, "json").Appointments(appointments[:1], true))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Haircut", decoded[0]["service_name"])
	assert.Equal(t, "pending", decoded[0]["status"])

	buf.Reset()
	require.NoError(t, New(&buf, "yaml").Appointments(appointments[:1], true))

	out := buf.String()
	assert.Contains(t, out, "- id: 1\n")
	assert.Contains(t, out, "  service_name: Haircut\n")
	assert.NotContains(t, out, "{")

	var fromYAML []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "2025-03-14", fromYAML[0]["date"])
	assert.Equal(t, "jane@salon.test", fromYAML[0]["user_email"])
}

func TestUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, "xml").Services(nil)
	assert.ErrorContains(t, err, "unsupported output format: xml")
}

func TestUsers_AdminMarker(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, "table").Users([]client.User{
		{ID: "1", Name: "Ada", Email: "ada@salon.test", IsAdmin: true},
		{ID: "2", Name: "Bob", Email: "bob@salon.test", Blocked: true},
	}))

	out := buf.String()
	assert.Contains(t, out, "Ada (Admin)")
	assert.NotContains(t, out, "Bob (Admin)")
	assert.Contains(t, out, "blocked")
}

func TestWorkingHours_Lines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, "table").WorkingHours([]client.WorkingHours{
		{Day: "Monday", OpenTime: "09:00", CloseTime: "17:00", MaxAppointmentsPerSlot: 5},
	}))
	assert.Equal(t, "Monday: 09:00 - 17:00 (Max: 5)\n", buf.String())
}

func TestServices_Price(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, "table").Services([]client.Service{
		{ID: "7", Name: "Haircut", Price: "25.5", Description: "Wash and cut"},
	}))
	assert.Contains(t, buf.String(), "$25.5")
}

func TestReviews_Stars(t *testing.T) {
	assert.Equal(t, "★★★☆☆", stars(3))
	assert.Equal(t, "☆☆☆☆☆", stars(-1))
	assert.Equal(t, "★★★★★", stars(9))
}

func TestWhoami(t *testing.T) {
	claims := access.Claims{Email: "a@b.com", IsAdmin: true}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, "table").Whoami(claims, []access.View{{Name: "Services", Command: "salon services ls"}}))
	assert.Contains(t, buf.String(), "Role:   Admin")
	assert.Contains(t, buf.String(), "salon services ls")

	buf.Reset()
	require.NoError(t, New(&buf, "json").Whoami(claims, nil))
	assert.JSONEq(t, `{"email":"a@b.com","role":"Admin","views":[]}`, buf.String())
}

func TestDashboard(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, "table").Dashboard(Dashboard{
		Email:  "jane@salon.test",
		Role:   "Customer",
		Errors: []string{"failed to load favorites"},
	}, false)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Welcome, jane@salon.test\nRole: Customer\n")
	assert.Contains(t, out, "My Appointments\nNo appointments found.\n")
	assert.Contains(t, out, "failed to load favorites")
}

func TestSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, "table").Success("Login successful!"))
	assert.Equal(t, "✓ Login successful!\n", buf.String())

	buf.Reset()
	require.NoError(t, New(&buf, "json").Success("Booked %s", "Haircut"))
	assert.JSONEq(t, `{"status":"ok","message":"Booked Haircut"}`, buf.String())
}

func TestStatus(t *testing.T) {
	// colors are disabled in tests
	assert.Equal(t, "pending", Status("pending"))
	assert.Equal(t, "cancelled", Status("cancelled"))
}
