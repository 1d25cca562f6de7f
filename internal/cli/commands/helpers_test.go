package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/salon/internal/access"
	"github.com/salonbook/salon/internal/cli/auth"
	"github.com/salonbook/salon/internal/cli/client"
	"github.com/salonbook/salon/internal/cli/print"
	"github.com/salonbook/salon/internal/cli/prompt"
	"github.com/salonbook/salon/internal/config"
	"github.com/salonbook/salon/internal/fakeapi"
)

func init() {
	color.NoColor = true
}

// mockTokenStore is a simple in-memory token store for testing
type mockTokenStore struct {
	token string
}

func (m *mockTokenStore) SaveToken(token string) error {
	m.token = token
	return nil
}

func (m *mockTokenStore) LoadToken() (string, error) {
	if m.token == "" {
		return "", auth.ErrNoToken
	}
	return m.token, nil
}

func (m *mockTokenStore) DeleteToken() error {
	m.token = ""
	return nil
}

// stubPrompter answers prompts from canned values and fails otherwise
type stubPrompter struct {
	service *client.Service
	day     string
	inputs  map[string]string
	asked   []string
}

func (s *stubPrompter) Interactive() bool { return false }

func (s *stubPrompter) SelectService(services []client.Service) (client.Service, error) {
	s.asked = append(s.asked, "service")
	if s.service == nil {
		return client.Service{}, prompt.ErrNonInteractive
	}
	return *s.service, nil
}

func (s *stubPrompter) SelectDay(days []string) (string, error) {
	s.asked = append(s.asked, "day")
	if s.day == "" {
		return "", prompt.ErrNonInteractive
	}
	return s.day, nil
}

func (s *stubPrompter) Input(label, defaultValue string, validate func(string) error) (string, error) {
	s.asked = append(s.asked, label)
	v, ok := s.inputs[label]
	if !ok {
		return "", prompt.ErrNonInteractive
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func (s *stubPrompter) Password(label string) (string, error) {
	return s.Input(label, "", nil)
}

// credential builds an unsigned header.payload.signature string
func credential(t *testing.T, claims map[string]any) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	return "h." + base64.RawURLEncoding.EncodeToString(payload) + ".s"
}

var (
	adminClaims    = map[string]any{"email": "admin@salon.test", "is_admin": true}
	customerClaims = map[string]any{"email": "jane@salon.test", "is_admin": false}
)

type testEnv struct {
	*Env
	store  *mockTokenStore
	prompt *stubPrompter
	out    *bytes.Buffer
}

// newTestEnv builds an Env against apiURL. claims may be nil for an
// unauthenticated session.
func newTestEnv(t *testing.T, apiURL string, claims map[string]any, format string) *testEnv {
	t.Helper()

	store := &mockTokenStore{}
	session := auth.NewSession(store)
	if claims != nil {
		_, err := session.Save(credential(t, claims))
		require.NoError(t, err)
	}

	return newTestEnvWithSession(t, apiURL, store, session, format)
}

func newTestEnvWithSession(t *testing.T, apiURL string, store *mockTokenStore, session *auth.Session, format string) *testEnv {
	t.Helper()

	out := &bytes.Buffer{}
	p := &stubPrompter{inputs: map[string]string{}}
	now := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	return &testEnv{
		Env: &Env{
			Config:  &config.Config{APIURL: apiURL, Timeout: 5 * time.Second, Output: format},
			Session: session,
			Client:  client.New(apiURL, client.WithCredentials(session), client.WithTimeout(5*time.Second)),
			Printer: print.New(out, format),
			Prompt:  p,
			Logger:  zerolog.Nop(),
			Now:     now,
		},
		store:  store,
		prompt: p,
		out:    out,
	}
}

// fakeSalon starts the in-memory API with an admin, a customer and a service
type fakeSalon struct {
	api      *fakeapi.Server
	url      string
	admin    *fakeapi.User
	customer *fakeapi.User
	service  *fakeapi.Service
}

func newFakeSalon(t *testing.T) *fakeSalon {
	t.Helper()

	api, err := fakeapi.New(fakeapi.Config{JWTSecret: "commands"}, zerolog.Nop())
	require.NoError(t, err)

	admin, err := api.CreateUser("admin@salon.test", "admin123", "Ada", true)
	require.NoError(t, err)
	customer, err := api.CreateUser("jane@salon.test", "secret1", "Jane", false)
	require.NoError(t, err)
	service, err := api.CreateService("Haircut", "Wash and cut", 25)
	require.NoError(t, err)

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &fakeSalon{api: api, url: srv.URL, admin: admin, customer: customer, service: service}
}

// envFor returns an Env logged in as user against the fake salon
func (f *fakeSalon) envFor(t *testing.T, user *fakeapi.User, format string) *testEnv {
	t.Helper()

	store := &mockTokenStore{}
	session := auth.NewSession(store)
	if user != nil {
		token, err := f.api.IssueToken(user)
		require.NoError(t, err)
		_, err = session.Save(token)
		require.NoError(t, err)
	}
	return newTestEnvWithSession(t, f.url, store, session, format)
}

// MockAppointmentsAPI is a testify mock of appointmentsAPI
type MockAppointmentsAPI struct {
	mock.Mock
}

func (m *MockAppointmentsAPI) ListAppointments(ctx context.Context, scope access.Scope) ([]client.Appointment, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]client.Appointment), args.Error(1)
}

func (m *MockAppointmentsAPI) UpdateAppointmentStatus(ctx context.Context, id client.ID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAppointmentsAPI) CancelAppointment(ctx context.Context, id client.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDashboardAPI is a testify mock of dashboardAPI
type MockDashboardAPI struct {
	mock.Mock
}

func (m *MockDashboardAPI) ListAppointments(ctx context.Context, scope access.Scope) ([]client.Appointment, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]client.Appointment), args.Error(1)
}

func (m *MockDashboardAPI) ListFavorites(ctx context.Context) ([]client.Favorite, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]client.Favorite), args.Error(1)
}

var errBoom = errors.New("boom")
