package admin

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/client"
	"ticketdesk/internal/model"
	"ticketdesk/internal/session"
	"ticketdesk/internal/stubserver"
)

func newPanel(t *testing.T) (*Panel, *stubserver.Server) {
	t.Helper()
	srv := stubserver.New()
	t.Cleanup(srv.Close)
	srv.AddUser("Root", "root@example.com", "pw", "admin")

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Set(&model.Session{
		AccessToken: srv.TokenFor("root@example.com"),
		User:        model.User{ID: 1, Email: "root@example.com", Type: "admin"},
	}))
	return New(client.New(srv.URL, 0, store, nil), nil), srv
}

func TestCreateTicketType(t *testing.T) {
	p, _ := newPanel(t)

	created, err := p.CreateTicketType(context.Background(), "  VIP  ", 99.999)
	require.NoError(t, err)
	assert.Equal(t, "VIP", created.Name, "name is trimmed before sending")
	assert.Equal(t, 100.00, created.Price, "price is rounded to cents")
}

func TestTicketTypeValidationMakesNoRequest(t *testing.T) {
	p, srv := newPanel(t)
	before := srv.RequestCount()

	cases := []struct {
		name  string
		price float64
	}{
		{"", 10},
		{"   ", 10},
		{strings.Repeat("x", 101), 10},
		{"Adult", 0},
		{"Adult", -5},
	}
	for _, tc := range cases {
		_, err := p.CreateTicketType(context.Background(), tc.name, tc.price)
		var verr *client.ValidationError
		assert.ErrorAs(t, err, &verr, "name=%q price=%v", tc.name, tc.price)
	}
	assert.Equal(t, before, srv.RequestCount())
}

func TestUpdateAndDeleteTicketType(t *testing.T) {
	p, srv := newPanel(t)
	id := srv.AddTicketType("Adult", 10.00)

	updated, err := p.UpdateTicketType(context.Background(), id, "Adult Evening", 12.50)
	require.NoError(t, err)
	assert.Equal(t, "Adult Evening", updated.Name)
	assert.Equal(t, 12.50, updated.Price)

	require.NoError(t, p.DeleteTicketType(context.Background(), id))
	_, err = p.GetTicketType(context.Background(), id)
	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}

func TestDuplicateTicketTypeName(t *testing.T) {
	p, srv := newPanel(t)
	srv.AddTicketType("Adult", 10.00)

	_, err := p.CreateTicketType(context.Background(), "Adult", 12.00)
	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "A ticket type with this name already exists", httpErr.Detail)
}

func TestBulkCreateSeats(t *testing.T) {
	p, srv := newPanel(t)
	id := srv.AddTicketType("Adult", 10.00)

	created, err := p.BulkCreateSeats(context.Background(), id, true, 5)
	require.NoError(t, err)
	assert.Len(t, created, 5)

	// The count endpoint reflects the new rows.
	var counts model.SeatCount
	require.NoError(t, p.API.Do(context.Background(), "GET", "/seats/count", nil, &counts))
	assert.Equal(t, 5, counts.TotalSeats)
	assert.Equal(t, 5, counts.AvailableSeats)
	require.Len(t, counts.TicketTypeCounts, 1)
	assert.Equal(t, 5, counts.TicketTypeCounts[0].AvailableSeats)
}

func TestBulkCreateSeatsFallsBackToSingles(t *testing.T) {
	p, srv := newPanel(t)
	id := srv.AddTicketType("Adult", 10.00)
	srv.DisableBulk = true

	created, err := p.BulkCreateSeats(context.Background(), id, true, 3)
	require.NoError(t, err)
	assert.Len(t, created, 3)

	total, _ := srv.SeatTotals()
	assert.Equal(t, 3, total, "sequential creates produce the same rows")
}

func TestBulkCreateSeatsRejectsZeroQuantity(t *testing.T) {
	p, srv := newPanel(t)
	before := srv.RequestCount()

	_, err := p.BulkCreateSeats(context.Background(), 1, true, 0)
	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, srv.RequestCount())
}

func TestUpdateSeatPartialFields(t *testing.T) {
	p, srv := newPanel(t)
	adult := srv.AddTicketType("Adult", 10.00)
	srv.AddSeats(adult, 1)

	off := false
	seat, err := p.UpdateSeat(context.Background(), 1, SeatUpdate{IsAvailable: &off})
	require.NoError(t, err)
	assert.False(t, seat.IsAvailable)
	assert.Equal(t, adult, seat.TicketTypeID, "omitted fields stay untouched")
}

func TestDeleteSeat(t *testing.T) {
	p, srv := newPanel(t)
	adult := srv.AddTicketType("Adult", 10.00)
	srv.AddSeats(adult, 2)

	require.NoError(t, p.DeleteSeat(context.Background(), 1))
	total, _ := srv.SeatTotals()
	assert.Equal(t, 1, total)

	err := p.DeleteSeat(context.Background(), 1)
	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Status)
}

func TestAdminBookingViews(t *testing.T) {
	p, srv := newPanel(t)
	userID := srv.AddUser("Ada", "ada@example.com", "pw", "user")
	adult := srv.AddTicketType("Adult", 10.00)
	srv.AddSeats(adult, 3)

	// Build a booking as the user would.
	userStore := session.NewFileStore(filepath.Join(t.TempDir(), "user-session.json"))
	require.NoError(t, userStore.Set(&model.Session{
		AccessToken: srv.TokenFor("ada@example.com"),
		User:        model.User{ID: userID, Type: "user"},
	}))
	userAPI := client.New(srv.URL, 0, userStore, nil)
	var b model.Booking
	require.NoError(t, userAPI.Do(context.Background(), "POST", "/bookings/initiate", map[string]any{
		"user_id": userID,
		"seats_requested": []map[string]any{
			{"ticket_type_id": adult, "quantity": 2},
		},
	}, &b))

	items, err := p.ListBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ada", items[0].UserName)
	assert.Equal(t, 20.00, items[0].TotalAmount)
	assert.Equal(t, model.StatusPending, items[0].Status)

	detail, err := p.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", detail.UserEmail)
	require.Len(t, detail.Tickets, 1)
	assert.Equal(t, "Adult", detail.Tickets[0].TicketType)
	assert.Equal(t, 2, detail.Tickets[0].Quantity)
}

func TestSetBookingStatus(t *testing.T) {
	p, srv := newPanel(t)
	userID := srv.AddUser("Ada", "ada@example.com", "pw", "user")
	adult := srv.AddTicketType("Adult", 10.00)
	srv.AddSeats(adult, 1)

	userStore := session.NewFileStore(filepath.Join(t.TempDir(), "user-session.json"))
	require.NoError(t, userStore.Set(&model.Session{
		AccessToken: srv.TokenFor("ada@example.com"),
		User:        model.User{ID: userID, Type: "user"},
	}))
	userAPI := client.New(srv.URL, 0, userStore, nil)
	var b model.Booking
	require.NoError(t, userAPI.Do(context.Background(), "POST", "/bookings/initiate", map[string]any{
		"user_id": userID,
		"seats_requested": []map[string]any{
			{"ticket_type_id": adult, "quantity": 1},
		},
	}, &b))

	res, err := p.SetBookingStatus(context.Background(), b.ID, model.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, "paid", srv.BookingStatus(b.ID), "the backend vocabulary goes over the wire")
}

func TestSetBookingStatusRefusesPending(t *testing.T) {
	p, srv := newPanel(t)
	before := srv.RequestCount()

	_, err := p.SetBookingStatus(context.Background(), 1, model.StatusPending)
	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, srv.RequestCount())
}

func TestAdminEndpointsForbiddenForUsers(t *testing.T) {
	_, srv := newPanel(t)
	srv.AddUser("Ada", "ada@example.com", "pw", "user")

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Set(&model.Session{
		AccessToken: srv.TokenFor("ada@example.com"),
		User:        model.User{ID: 2, Type: "user"},
	}))
	asUser := New(client.New(srv.URL, 0, store, nil), nil)

	_, err := asUser.ListBookings(context.Background())
	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Status)
}
