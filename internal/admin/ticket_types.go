package admin

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"ticketdesk/internal/client"
	"ticketdesk/internal/model"
)

// maxTicketTypeNameLen mirrors the backend's column limit.
const maxTicketTypeNameLen = 100

// ticketTypeBody is the request shape shared by create and update.
type ticketTypeBody struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// validateTicketType checks the fields locally and normalizes them for
// transmission: the name is trimmed and the price rounded to two decimal
// places, since the backend stores dollar amounts with cent precision.
func validateTicketType(name string, price float64) (ticketTypeBody, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ticketTypeBody{}, client.Validationf("ticket type name cannot be empty")
	}
	if len(name) > maxTicketTypeNameLen {
		return ticketTypeBody{}, client.Validationf("ticket type name must be at most %d characters", maxTicketTypeNameLen)
	}
	if price <= 0 {
		return ticketTypeBody{}, client.Validationf("price must be a positive number")
	}
	return ticketTypeBody{Name: name, Price: math.Round(price*100) / 100}, nil
}

// ListTicketTypes returns every ticket type.
func (p *Panel) ListTicketTypes(ctx context.Context) ([]model.TicketType, error) {
	var types []model.TicketType
	if err := p.API.Do(ctx, http.MethodGet, "/ticket-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// GetTicketType fetches a single ticket type by id.
func (p *Panel) GetTicketType(ctx context.Context, id int64) (*model.TicketType, error) {
	var t model.TicketType
	if err := p.API.Do(ctx, http.MethodGet, fmt.Sprintf("/ticket-types/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTicketType creates a new priced category after local validation.
func (p *Panel) CreateTicketType(ctx context.Context, name string, price float64) (*model.TicketType, error) {
	body, err := validateTicketType(name, price)
	if err != nil {
		return nil, err
	}
	var created model.TicketType
	if err := p.API.Do(ctx, http.MethodPost, "/ticket-types", body, &created); err != nil {
		return nil, err
	}
	p.Log.Info("ticket type created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	return &created, nil
}

// UpdateTicketType replaces name and price of an existing ticket type.
// The backend refuses the update if the type is referenced by a booking.
func (p *Panel) UpdateTicketType(ctx context.Context, id int64, name string, price float64) (*model.TicketType, error) {
	body, err := validateTicketType(name, price)
	if err != nil {
		return nil, err
	}
	var updated model.TicketType
	if err := p.API.Do(ctx, http.MethodPut, fmt.Sprintf("/ticket-types/%d", id), body, &updated); err != nil {
		return nil, err
	}
	p.Log.Info("ticket type updated", zap.Int64("id", id))
	return &updated, nil
}

// DeleteTicketType removes a ticket type.  A type still referenced by
// bookings comes back as an HTTPError with the server's detail message.
func (p *Panel) DeleteTicketType(ctx context.Context, id int64) error {
	if err := p.API.Do(ctx, http.MethodDelete, fmt.Sprintf("/ticket-types/%d", id), nil, nil); err != nil {
		return err
	}
	p.Log.Info("ticket type deleted", zap.Int64("id", id))
	return nil
}
