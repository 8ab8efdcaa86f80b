package admin

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"ticketdesk/internal/client"
	"ticketdesk/internal/model"
)

// statusBody is the request shape of the status update; the backend takes
// its lowercase vocabulary.
type statusBody struct {
	Status string `json:"status"`
}

// ListBookings returns all bookings with user names and computed totals.
func (p *Panel) ListBookings(ctx context.Context) ([]model.AdminBookingListItem, error) {
	var items []model.AdminBookingListItem
	if err := p.API.Do(ctx, http.MethodGet, "/bookings/admin/list", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetBooking returns the admin detail view of one booking.
func (p *Panel) GetBooking(ctx context.Context, id int64) (*model.AdminBookingDetail, error) {
	var detail model.AdminBookingDetail
	if err := p.API.Do(ctx, http.MethodGet, fmt.Sprintf("/bookings/admin/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SetBookingStatus moves a booking to CONFIRMED or CANCELLED.  Those are
// the only legal targets, since the lifecycle never re-enters PENDING, so
// any other status is refused before the network.  The server enforces the
// terminal-state rule authoritatively.
func (p *Panel) SetBookingStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.TransitionResult, error) {
	if status != model.StatusConfirmed && status != model.StatusCancelled {
		return nil, client.Validationf("status must be %s or %s", model.StatusConfirmed, model.StatusCancelled)
	}
	var result model.TransitionResult
	path := fmt.Sprintf("/bookings/admin/%d/status", id)
	if err := p.API.Do(ctx, http.MethodPut, path, statusBody{Status: status.Wire()}, &result); err != nil {
		return nil, err
	}
	p.Log.Info("booking status updated", zap.Int64("booking_id", id), zap.String("status", string(result.Status)))
	return &result, nil
}
