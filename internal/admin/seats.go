package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"ticketdesk/internal/client"
	"ticketdesk/internal/model"
)

// seatBody is the request shape of single seat creation.
type seatBody struct {
	TicketTypeID int64 `json:"ticket_type_id"`
	IsAvailable  bool  `json:"is_available"`
}

// bulkSeatBody is the request shape of POST /seats/bulk.
type bulkSeatBody struct {
	TicketTypeID int64 `json:"ticket_type_id"`
	IsAvailable  bool  `json:"is_available"`
	Quantity     int   `json:"quantity"`
}

// SeatUpdate carries the mutable fields of a seat.  Nil fields are left
// unchanged by the backend.
type SeatUpdate struct {
	TicketTypeID *int64 `json:"ticket_type_id,omitempty"`
	IsAvailable  *bool  `json:"is_available,omitempty"`
}

// CreateSeat creates one seat row for the given ticket type.
func (p *Panel) CreateSeat(ctx context.Context, ticketTypeID int64, isAvailable bool) (*model.Seat, error) {
	var seat model.Seat
	body := seatBody{TicketTypeID: ticketTypeID, IsAvailable: isAvailable}
	if err := p.API.Do(ctx, http.MethodPost, "/seats", body, &seat); err != nil {
		return nil, err
	}
	return &seat, nil
}

// BulkCreateSeats creates quantity seat rows of the same ticket type in one
// call.  A backend without the bulk endpoint (404/405) is serviced by
// falling back to sequential single creates, which yields the same rows one
// POST at a time.  The fallback stops at the first failure and reports how
// many rows made it.
func (p *Panel) BulkCreateSeats(ctx context.Context, ticketTypeID int64, isAvailable bool, quantity int) ([]model.Seat, error) {
	if quantity < 1 {
		return nil, client.Validationf("quantity must be at least 1")
	}

	var created []model.Seat
	body := bulkSeatBody{TicketTypeID: ticketTypeID, IsAvailable: isAvailable, Quantity: quantity}
	err := p.API.Do(ctx, http.MethodPost, "/seats/bulk", body, &created)
	if err == nil {
		p.Log.Info("seats bulk created", zap.Int64("ticket_type_id", ticketTypeID), zap.Int("quantity", quantity))
		return created, nil
	}

	var httpErr *client.HTTPError
	if !errors.As(err, &httpErr) || (httpErr.Status != http.StatusNotFound && httpErr.Status != http.StatusMethodNotAllowed) {
		return nil, err
	}

	created = make([]model.Seat, 0, quantity)
	for i := 0; i < quantity; i++ {
		seat, err := p.CreateSeat(ctx, ticketTypeID, isAvailable)
		if err != nil {
			return created, fmt.Errorf("created %d of %d seats: %w", len(created), quantity, err)
		}
		created = append(created, *seat)
	}
	p.Log.Info("seats created singly", zap.Int64("ticket_type_id", ticketTypeID), zap.Int("quantity", quantity))
	return created, nil
}

// UpdateSeat changes a seat's ticket type or availability.
func (p *Panel) UpdateSeat(ctx context.Context, id int64, update SeatUpdate) (*model.Seat, error) {
	var seat model.Seat
	if err := p.API.Do(ctx, http.MethodPut, fmt.Sprintf("/seats/%d", id), update, &seat); err != nil {
		return nil, err
	}
	return &seat, nil
}

// DeleteSeat removes a seat row.
func (p *Panel) DeleteSeat(ctx context.Context, id int64) error {
	return p.API.Do(ctx, http.MethodDelete, fmt.Sprintf("/seats/%d", id), nil, nil)
}
