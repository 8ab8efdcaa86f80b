package model

// TicketType is a priced category of admission.  Prices travel over the
// wire as floating point dollar amounts; arithmetic on them should go
// through cents (see CentsFromPrice) to avoid accumulation drift.
type TicketType struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`                         // display name, at most 100 characters
	Price             float64 `json:"price"`                        // dollar amount, positive
	AvailableQuantity int     `json:"available_quantity,omitempty"` // populated on list responses only
}

// Seat is an individually allocatable unit of a ticket type.
type Seat struct {
	ID           int64 `json:"id"`             // seats.id
	TicketTypeID int64 `json:"ticket_type_id"` // owning ticket type
	IsAvailable  bool  `json:"is_available"`   // flips when booked/released
}

// TicketTypeSeatCount aggregates seat availability for one ticket type.
type TicketTypeSeatCount struct {
	TicketTypeID      int64  `json:"ticket_type_id"`
	TicketTypeName    string `json:"ticket_type_name"`
	TotalSeats        int    `json:"total_seats"`
	AvailableSeats    int    `json:"available_seats"`
	NotAvailableSeats int    `json:"not_available_seats"`
}

// SeatCount is the response of GET /seats/count: system-wide totals plus a
// per-ticket-type breakdown.
type SeatCount struct {
	TotalSeats        int                   `json:"total_seats"`
	AvailableSeats    int                   `json:"available_seats"`
	NotAvailableSeats int                   `json:"not_available_seats"`
	TicketTypeCounts  []TicketTypeSeatCount `json:"ticket_type_counts"`
}

// CentsFromPrice converts a wire price (dollars) into integer cents,
// rounding half away from zero.  All client-side money math is done in
// cents.
func CentsFromPrice(price float64) int64 {
	if price >= 0 {
		return int64(price*100 + 0.5)
	}
	return int64(price*100 - 0.5)
}
