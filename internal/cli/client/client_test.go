package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonbook/salon/internal/access"
)

// fakeCredentials is an in-memory Credentials
type fakeCredentials struct {
	token   string
	cleared int
}

func (f *fakeCredentials) Token() string { return f.token }

func (f *fakeCredentials) Clear() error {
	f.cleared++
	f.token = ""
	return nil
}

// countingServer records how many requests reached it
func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestAuthenticatedCallWithoutCredential(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	c := New(srv.URL, WithCredentials(&fakeCredentials{}))
	_, err := c.ListAppointments(context.Background(), access.ScopeSelf)

	require.Error(t, err)
	assert.ErrorIs(t, err, access.ErrUnauthenticated)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))

	// no credentials configured at all
	_, err = New(srv.URL).ListFavorites(context.Background())
	assert.ErrorIs(t, err, access.ErrUnauthenticated)
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestBearerHeader(t *testing.T) {
	var gotAuth, gotPath string
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Write([]byte(`[]`))
	})

	c := New(srv.URL+"/", WithCredentials(&fakeCredentials{token: "a.b.c"}))

	_, err := c.ListAppointments(context.Background(), access.ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, "Bearer a.b.c", gotAuth)
	assert.Equal(t, "/appointments", gotPath)

	_, err = c.ListAppointments(context.Background(), access.ScopeSelf)
	require.NoError(t, err)
	assert.Equal(t, "/appointments/me", gotPath)
}

func TestPublicCallsSendNoCredential(t *testing.T) {
	var gotAuth string
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[{"id":1,"name":"Haircut","description":"","price":25.5}]`))
	})

	c := New(srv.URL)
	services, err := c.ListServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, ID("1"), services[0].ID)
	assert.Equal(t, "25.5", services[0].Price.String())
	assert.Empty(t, gotAuth)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestUnauthorizedClearsCredential(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid or expired token"}`))
	})

	creds := &fakeCredentials{token: "a.b.c"}
	c := New(srv.URL, WithCredentials(creds))

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 1, creds.cleared)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid or expired token", apiErr.Message)
}

func TestLoginFailureDoesNotClear(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password"}`))
	})

	creds := &fakeCredentials{token: "old.token.value"}
	c := New(srv.URL, WithCredentials(creds))

	_, err := c.Login(context.Background(), "a@b.com", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "login failed (status 401): Invalid email or password")
	assert.Zero(t, creds.cleared)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "message field", body: `{"message":"Slot is full"}`, want: "Slot is full"},
		{name: "error field", body: `{"error":"bad request"}`, want: "bad request"},
		{name: "plain text", body: "upstream exploded\n", want: "upstream exploded"},
		{name: "empty body", body: "", want: "500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body), "500 Internal Server Error"))
		})
	}
}

func TestStatusUpdateFailure(t *testing.T) {
	var body map[string]any
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/appointments/42/status", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &body)
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := New(srv.URL, WithCredentials(&fakeCredentials{token: "a.b.c"}))
	err := c.UpdateAppointmentStatus(context.Background(), "42", access.StatusConfirmed)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, map[string]any{"status": "confirmed"}, body)
}

func TestValidationPreventsRequests(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	c := New(srv.URL, WithCredentials(&fakeCredentials{token: "a.b.c"}))
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{
			name: "booking without time",
			call: func() error { return c.BookAppointment(ctx, BookingRequest{ServiceID: "1", Date: "2025-03-14"}) },
			want: "invalid booking: time is required",
		},
		{
			name: "booking with bad date",
			call: func() error {
				return c.BookAppointment(ctx, BookingRequest{ServiceID: "1", Date: "14/03/2025", Time: "10:00"})
			},
			want: "date must be a date like 2025-03-14",
		},
		{
			name: "booking with one-digit hour",
			call: func() error {
				return c.BookAppointment(ctx, BookingRequest{ServiceID: "1", Date: "2025-03-14", Time: "9:00"})
			},
			want: "time must be 5 characters long",
		},
		{
			name: "booking without service",
			call: func() error { return c.BookAppointment(ctx, BookingRequest{Date: "2025-03-14", Time: "10:00"}) },
			want: "service_id is required",
		},
		{
			name: "rating out of range",
			call: func() error { return c.CreateReview(ctx, ReviewRequest{ServiceID: "1", Rating: 6}) },
			want: "rating must be at most 5",
		},
		{
			name: "unknown status",
			call: func() error { return c.UpdateAppointmentStatus(ctx, "1", "done") },
			want: "status must be one of: pending, confirmed, cancelled",
		},
		{
			name: "unknown weekday",
			call: func() error {
				return c.SetWorkingHours(ctx, WorkingHours{Day: "Funday", OpenTime: "09:00", CloseTime: "17:00", MaxAppointmentsPerSlot: 5})
			},
			want: "day must be one of: Monday",
		},
		{
			name: "closing before opening",
			call: func() error {
				return c.SetWorkingHours(ctx, WorkingHours{Day: "Monday", OpenTime: "17:00", CloseTime: "09:00", MaxAppointmentsPerSlot: 5})
			},
			want: "close_time must be after open_time",
		},
		{
			name: "zero slot capacity",
			call: func() error {
				return c.SetWorkingHours(ctx, WorkingHours{Day: "Monday", OpenTime: "09:00", CloseTime: "17:00"})
			},
			want: "max_appointments_per_slot must be at least 1",
		},
		{
			name: "short password",
			call: func() error {
				return c.UpdateProfile(ctx, ProfileUpdate{Name: "Jane", Email: "jane@salon.test", Password: "abc"})
			},
			want: "password must be at least 6",
		},
		{
			name: "invalid login email",
			call: func() error { _, err := c.Login(ctx, "jane", "secret"); return err },
			want: "email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, WithTimeout(time.Second)).ListServices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}

func TestRemoveFavoriteSendsBody(t *testing.T) {
	var method string
	var body map[string]any
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"message":"Favorite removed"}`))
	})

	c := New(srv.URL, WithCredentials(&fakeCredentials{token: "a.b.c"}))
	require.NoError(t, c.RemoveFavorite(context.Background(), "7"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, map[string]any{"service_id": float64(7)}, body)
}

func TestProfileUpdateOmitsEmptyPassword(t *testing.T) {
	var raw map[string]any
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw)
	})

	c := New(srv.URL, WithCredentials(&fakeCredentials{token: "a.b.c"}))
	require.NoError(t, c.UpdateProfile(context.Background(), ProfileUpdate{Name: "Jane", Email: "jane@salon.test"}))
	assert.NotContains(t, raw, "password")
	assert.Equal(t, "Jane", raw["name"])
}

func TestWithTimeoutLeavesInjectedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	c := New("http://localhost:5000", WithHTTPClient(shared), WithTimeout(2*time.Second))
	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)

	// option order does not matter
	c = New("http://localhost:5000", WithTimeout(3*time.Second), WithHTTPClient(shared))
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.Equal(t, time.Minute, shared.Timeout)

	c = New("http://localhost:5000", WithHTTPClient(shared))
	assert.Same(t, shared, c.httpClient)
}
