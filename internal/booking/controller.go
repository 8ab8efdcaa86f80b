// Package booking orchestrates the state transitions of a single booking:
// initiate (cart contents become a pending booking), confirm (payment) and
// cancel.  Transitions are one-directional, PENDING to CONFIRMED or
// CANCELLED with both end states terminal, and the server is the
// enforcement authority; the controller refuses locally only what it has
// already observed to be terminal, and never retries or optimistically
// updates anything.
package booking

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticketdesk/internal/cart"
	"ticketdesk/internal/client"
	"ticketdesk/internal/model"
	"ticketdesk/internal/session"
)

// Controller drives one booking at a time through its lifecycle.  The
// active booking id is persisted through the session store so that a
// payment can be completed in a later console invocation.
type Controller struct {
	API      *client.Client
	Sessions session.Store
	Log      *zap.Logger

	// UseIdempotencyKeys attaches a client-generated Idempotency-Key header
	// to every transition so a deduplicating backend can absorb duplicate
	// submissions.  Against a backend that ignores the header it is inert.
	UseIdempotencyKeys bool

	// lastStatus remembers the most recently observed status per booking.
	// It exists only to refuse transitions the client already knows are
	// impossible; the server remains authoritative for everything else.
	lastStatus map[int64]model.BookingStatus

	// actionKeys maps a logical action ("confirm:42") to its idempotency
	// key.  The key survives an immediate re-submit of the same action and
	// is discarded once the action completes.
	actionKeys map[string]string
}

// New returns a controller wired to the given transport and store.
func New(api *client.Client, store session.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		API:        api,
		Sessions:   store,
		Log:        log,
		lastStatus: make(map[int64]model.BookingStatus),
		actionKeys: make(map[string]string),
	}
}

// Wire shapes of POST /bookings/initiate.
type seatRequest struct {
	TicketTypeID int64 `json:"ticket_type_id"`
	Quantity     int   `json:"quantity"`
}
type initiateRequest struct {
	UserID         int64         `json:"user_id"`
	SeatsRequested []seatRequest `json:"seats_requested"`
}

// options returns the per-call request options for a logical action,
// currently just the idempotency key.
func (c *Controller) options(action string) []client.Option {
	if !c.UseIdempotencyKeys {
		return nil
	}
	key, ok := c.actionKeys[action]
	if !ok {
		key = uuid.NewString()
		c.actionKeys[action] = key
	}
	return []client.Option{client.WithHeader("Idempotency-Key", key)}
}

// finish discards the idempotency key of a completed action.
func (c *Controller) finish(action string) {
	delete(c.actionKeys, action)
}

// Initiate turns the cart lines into a pending booking.  An empty cart is
// rejected locally with a ValidationError before any network call.  On
// success the returned booking's id becomes the active booking reference.
func (c *Controller) Initiate(ctx context.Context, userID int64, lines []cart.Line) (*model.Booking, error) {
	if len(lines) == 0 {
		return nil, client.Validationf("cart is empty; select at least one ticket")
	}

	req := initiateRequest{UserID: userID}
	for _, l := range lines {
		req.SeatsRequested = append(req.SeatsRequested, seatRequest{
			TicketTypeID: l.TicketTypeID,
			Quantity:     l.Quantity,
		})
	}

	var b model.Booking
	if err := c.API.Do(ctx, http.MethodPost, "/bookings/initiate", req, &b, c.options("initiate")...); err != nil {
		return nil, err
	}
	c.finish("initiate")

	c.lastStatus[b.ID] = b.Status
	if err := c.Sessions.SetActiveBookingID(b.ID); err != nil {
		return nil, err
	}
	c.Log.Info("booking initiated",
		zap.Int64("booking_id", b.ID),
		zap.String("status", string(b.Status)))
	return &b, nil
}

// Confirm transitions a pending booking to CONFIRMED.  A booking the
// controller has already seen in a terminal state is refused without a
// network call; a server rejection is surfaced as-is and non-retryable.
// On success the active booking reference is cleared; the caller owns the
// cart and clears it alongside.
func (c *Controller) Confirm(ctx context.Context, id int64) (*model.TransitionResult, error) {
	return c.transition(ctx, id, "confirm")
}

// Cancel transitions a pending booking to CANCELLED, releasing its seats.
// Cancellation is irreversible, so callers must gate it behind an explicit
// user confirmation before invoking this.
func (c *Controller) Cancel(ctx context.Context, id int64) (*model.TransitionResult, error) {
	return c.transition(ctx, id, "cancel")
}

func (c *Controller) transition(ctx context.Context, id int64, verb string) (*model.TransitionResult, error) {
	if st, ok := c.lastStatus[id]; ok && st.Terminal() {
		return nil, client.Validationf("booking %d is already %s", id, st)
	}

	action := fmt.Sprintf("%s:%d", verb, id)
	var result model.TransitionResult
	path := fmt.Sprintf("/bookings/%d/%s", id, verb)
	if err := c.API.Do(ctx, http.MethodPost, path, nil, &result, c.options(action)...); err != nil {
		return nil, err
	}
	c.finish(action)

	c.lastStatus[id] = result.Status
	if err := c.Sessions.ClearActiveBookingID(); err != nil {
		return nil, err
	}
	c.Log.Info("booking transitioned",
		zap.Int64("booking_id", id),
		zap.String("verb", verb),
		zap.String("status", string(result.Status)))
	return &result, nil
}

// Fetch loads a booking with its aggregated details.  An empty or absent
// detail list is returned as-is; rendering the "no details" state is the
// presentation layer's job, not a failure.
func (c *Controller) Fetch(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	if err := c.API.Do(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, &b); err != nil {
		return nil, err
	}
	c.lastStatus[b.ID] = b.Status
	return &b, nil
}

// ActiveBookingID exposes the persisted in-progress booking reference.
func (c *Controller) ActiveBookingID() (int64, error) {
	return c.Sessions.ActiveBookingID()
}
