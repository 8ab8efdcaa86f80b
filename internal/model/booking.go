package model

import (
	"encoding/json"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking.  The backend speaks
// lowercase and calls a confirmed booking "paid"; the client normalizes
// everything into the uppercase constants below on decode so that the rest
// of the code compares against a single vocabulary.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// NormalizeStatus maps a wire status string onto the canonical constants.
// Unknown values are passed through uppercased rather than rejected; the
// server owns the vocabulary and the client must not break on additions.
func NormalizeStatus(s string) BookingStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return StatusPending
	case "PAID", "CONFIRMED":
		return StatusConfirmed
	case "CANCELED", "CANCELLED":
		return StatusCancelled
	default:
		return BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	}
}

// UnmarshalJSON decodes a status string and normalizes it.
func (s *BookingStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NormalizeStatus(raw)
	return nil
}

// Wire returns the form the backend expects in request bodies (the admin
// status update endpoint takes `{status}`).  The backend says "paid" for a
// confirmed booking and spells canceled with one l.
func (s BookingStatus) Wire() string {
	switch s {
	case StatusConfirmed:
		return "paid"
	case StatusCancelled:
		return "canceled"
	default:
		return strings.ToLower(string(s))
	}
}

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Timestamp wraps time.Time to tolerate the backend's naive datetime
// serialization, which omits the timezone offset that RFC 3339 requires.
type Timestamp struct {
	time.Time
}

// timestampLayouts lists accepted wire formats, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON parses a timestamp trying each known layout in turn.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	for _, layout := range timestampLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return err
}

// MarshalJSON emits RFC 3339, which the backend accepts.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// AggregatedBookingDetail is one line of a fetched booking: a snapshot of
// the ticket type at booking time plus how many seats of it were booked.
// Read-only; produced by the backend.
type AggregatedBookingDetail struct {
	TicketType TicketType `json:"ticket_type"`
	Quantity   int        `json:"quantity"`
}

// Booking is a user's reservation aggregating one or more ticket-type
// quantities.  Details may be empty on the wire; callers must render an
// explicit "no details" state instead of failing.
type Booking struct {
	ID      int64                     `json:"id"`
	UserID  int64                     `json:"user_id"`
	Status  BookingStatus             `json:"status"`
	Time    Timestamp                 `json:"time"`
	Details []AggregatedBookingDetail `json:"booking_details"`
}

// TotalCents derives the display total from the aggregated details.  The
// authoritative amount is computed server-side; this is only an estimate
// for rendering.
func (b *Booking) TotalCents() int64 {
	var total int64
	for _, d := range b.Details {
		total += CentsFromPrice(d.TicketType.Price) * int64(d.Quantity)
	}
	return total
}

// TransitionResult is the response of a confirm/cancel/status-update call.
type TransitionResult struct {
	ID      int64         `json:"id"`
	Status  BookingStatus `json:"status"`
	Message string        `json:"message"`
}

// AdminBookingListItem is one row of the admin booking list.
type AdminBookingListItem struct {
	ID          int64         `json:"id"`
	UserName    string        `json:"user_name"`
	TotalAmount float64       `json:"total_amount"`
	Status      BookingStatus `json:"status"`
	CreatedAt   Timestamp     `json:"created_at"`
}

// AdminTicketLine is one ticket-type line in the admin booking detail view.
type AdminTicketLine struct {
	TicketType string  `json:"ticket_type"` // ticket type name
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// AdminBookingDetail is the admin view of a single booking, including the
// owning user's contact fields and a per-ticket-type breakdown.
type AdminBookingDetail struct {
	ID          int64             `json:"id"`
	UserName    string            `json:"user_name"`
	UserEmail   string            `json:"user_email"`
	TotalAmount float64           `json:"total_amount"`
	Status      BookingStatus     `json:"status"`
	CreatedAt   Timestamp         `json:"created_at"`
	Tickets     []AdminTicketLine `json:"tickets"`
}
