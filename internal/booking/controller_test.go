package booking

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/cart"
	"ticketdesk/internal/client"
	"ticketdesk/internal/model"
	"ticketdesk/internal/session"
	"ticketdesk/internal/stubserver"
)

type fixture struct {
	srv    *stubserver.Server
	ctrl   *Controller
	store  session.Store
	userID int64
	adult  int64 // $10.00, 5 seats
	vip    int64 // $25.00, 5 seats
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := stubserver.New()
	t.Cleanup(srv.Close)

	userID := srv.AddUser("Ada", "ada@example.com", "pw", "user")
	adult := srv.AddTicketType("Adult", 10.00)
	vip := srv.AddTicketType("Vip", 25.00)
	srv.AddSeats(adult, 5)
	srv.AddSeats(vip, 5)

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Set(&model.Session{
		AccessToken: srv.TokenFor("ada@example.com"),
		User:        model.User{ID: userID, Email: "ada@example.com", Type: "user"},
	}))

	api := client.New(srv.URL, 0, store, nil)
	return &fixture{
		srv:    srv,
		ctrl:   New(api, store, nil),
		store:  store,
		userID: userID,
		adult:  adult,
		vip:    vip,
	}
}

func (f *fixture) initiate(t *testing.T) *model.Booking {
	t.Helper()
	b, err := f.ctrl.Initiate(context.Background(), f.userID, []cart.Line{
		{TicketTypeID: f.adult, Quantity: 2},
		{TicketTypeID: f.vip, Quantity: 1},
	})
	require.NoError(t, err)
	return b
}

func TestInitiateConfirmLifecycle(t *testing.T) {
	f := newFixture(t)

	b := f.initiate(t)
	assert.Equal(t, model.StatusPending, b.Status)
	assert.Equal(t, int64(4500), b.TotalCents(), "2 x $10 + 1 x $25")

	active, err := f.ctrl.ActiveBookingID()
	require.NoError(t, err)
	assert.Equal(t, b.ID, active, "initiate records the active booking")

	_, available := f.srv.SeatTotals()
	assert.Equal(t, 7, available, "three seats held by the pending booking")

	res, err := f.ctrl.Confirm(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, "paid", f.srv.BookingStatus(b.ID))

	active, err = f.ctrl.ActiveBookingID()
	require.NoError(t, err)
	assert.Zero(t, active, "the active reference is cleared after a transition")
}

func TestCancelReleasesSeats(t *testing.T) {
	f := newFixture(t)
	b := f.initiate(t)

	res, err := f.ctrl.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)

	_, available := f.srv.SeatTotals()
	assert.Equal(t, 10, available, "cancellation releases the held seats")
}

func TestEmptyCartMakesNoRequest(t *testing.T) {
	f := newFixture(t)
	before := f.srv.RequestCount()

	_, err := f.ctrl.Initiate(context.Background(), f.userID, nil)
	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, f.srv.RequestCount())
}

func TestConfirmAfterConfirmRefusedLocally(t *testing.T) {
	f := newFixture(t)
	b := f.initiate(t)
	_, err := f.ctrl.Confirm(context.Background(), b.ID)
	require.NoError(t, err)

	before := f.srv.RequestCount()
	_, err = f.ctrl.Confirm(context.Background(), b.ID)
	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, f.srv.RequestCount(), "a known-terminal booking is refused without a call")

	_, err = f.ctrl.Cancel(context.Background(), b.ID)
	require.ErrorAs(t, err, &verr)
}

func TestTerminalRejectionByServer(t *testing.T) {
	f := newFixture(t)
	b := f.initiate(t)
	_, err := f.ctrl.Confirm(context.Background(), b.ID)
	require.NoError(t, err)

	// A fresh controller has no memory of the booking, so the refusal comes
	// from the server this time.
	api := client.New(f.srv.URL, 0, f.store, nil)
	fresh := New(api, f.store, nil)
	require.NoError(t, f.store.SetActiveBookingID(b.ID))

	_, err = fresh.Cancel(context.Background(), b.ID)
	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Only pending bookings can be canceled", httpErr.Detail)

	active, err := f.store.ActiveBookingID()
	require.NoError(t, err)
	assert.Equal(t, b.ID, active, "a failed transition leaves the stored reference alone")
	assert.Equal(t, "paid", f.srv.BookingStatus(b.ID))
}

func TestFetchIsRepeatable(t *testing.T) {
	f := newFixture(t)
	b := f.initiate(t)

	first, err := f.ctrl.Fetch(context.Background(), b.ID)
	require.NoError(t, err)
	second, err := f.ctrl.Fetch(context.Background(), b.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.TotalCents(), second.TotalCents())
	require.Len(t, first.Details, 2)
	assert.Equal(t, "Adult", first.Details[0].TicketType.Name)
	assert.Equal(t, 2, first.Details[0].Quantity)
}

func TestFetchTeachesControllerTerminality(t *testing.T) {
	f := newFixture(t)
	b := f.initiate(t)

	// Another client confirms the booking out of band.
	other := New(client.New(f.srv.URL, 0, f.store, nil), f.store, nil)
	_, err := other.Confirm(context.Background(), b.ID)
	require.NoError(t, err)

	_, err = f.ctrl.Fetch(context.Background(), b.ID)
	require.NoError(t, err)

	before := f.srv.RequestCount()
	_, err = f.ctrl.Confirm(context.Background(), b.ID)
	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, f.srv.RequestCount())
}

func TestActiveBookingSurvivesNewController(t *testing.T) {
	f := newFixture(t)
	b := f.initiate(t)

	// A later invocation sees the persisted reference and can finish the
	// payment.
	later := New(client.New(f.srv.URL, 0, f.store, nil), f.store, nil)
	active, err := later.ActiveBookingID()
	require.NoError(t, err)
	assert.Equal(t, b.ID, active)

	res, err := later.Confirm(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, res.Status)
}

func TestIdempotencyKeyStableUntilSuccess(t *testing.T) {
	f := newFixture(t)
	f.ctrl.UseIdempotencyKeys = true

	opts1 := f.ctrl.options("confirm:1")
	opts2 := f.ctrl.options("confirm:1")
	require.Len(t, opts1, 1)
	require.Len(t, opts2, 1)
	assert.Equal(t, headerValue(t, opts1[0]), headerValue(t, opts2[0]), "retries of one action reuse the key")

	f.ctrl.finish("confirm:1")
	opts3 := f.ctrl.options("confirm:1")
	assert.NotEqual(t, headerValue(t, opts1[0]), headerValue(t, opts3[0]), "a completed action gets a fresh key")
}

func headerValue(t *testing.T, opt client.Option) string {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "http://example.invalid/", nil)
	require.NoError(t, err)
	opt(req)
	return req.Header.Get("Idempotency-Key")
}
