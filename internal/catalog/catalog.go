// Package catalog reads ticket-type definitions and seat availability.
// Both operations are pure reads and deliberately uncached: every call
// re-fetches, which is the right trade for an admin dashboard refresh
// pattern.  The PriceIndex keeps the fetched records in memory indexed by
// id so later code never has to reconstruct model data from whatever was
// rendered.
package catalog

import (
	"context"
	"net/http"

	"ticketdesk/internal/client"
	"ticketdesk/internal/model"
)

// Reader fetches catalog data through the authenticated client.
type Reader struct {
	API *client.Client
}

// ListTicketTypes returns all ticket types, including the per-type
// available quantity the backend computes on list responses.
func (r *Reader) ListTicketTypes(ctx context.Context) ([]model.TicketType, error) {
	var types []model.TicketType
	if err := r.API.Do(ctx, http.MethodGet, "/ticket-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// SeatCounts returns system-wide and per-ticket-type seat availability.
func (r *Reader) SeatCounts(ctx context.Context) (*model.SeatCount, error) {
	var counts model.SeatCount
	if err := r.API.Do(ctx, http.MethodGet, "/seats/count", nil, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

// PriceIndex holds fetched ticket types keyed by id.  It is the cart's
// price lookup source.
type PriceIndex struct {
	byID map[int64]model.TicketType
}

// NewPriceIndex builds an index from a fetched slice.
func NewPriceIndex(types []model.TicketType) *PriceIndex {
	idx := &PriceIndex{}
	idx.Reindex(types)
	return idx
}

// Reindex replaces the index contents with a freshly fetched slice.
func (p *PriceIndex) Reindex(types []model.TicketType) {
	p.byID = make(map[int64]model.TicketType, len(types))
	for _, t := range types {
		p.byID[t.ID] = t
	}
}

// Get returns the full record for a ticket type.
func (p *PriceIndex) Get(id int64) (model.TicketType, bool) {
	t, ok := p.byID[id]
	return t, ok
}

// PriceCents returns the current price of a ticket type in cents.
func (p *PriceIndex) PriceCents(id int64) (int64, bool) {
	t, ok := p.byID[id]
	if !ok {
		return 0, false
	}
	return model.CentsFromPrice(t.Price), true
}
