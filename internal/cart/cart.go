// Package cart holds the user's in-progress ticket selection.  It is pure
// in-memory state: nothing here touches the network, and the contents die
// with the command (or an explicit Clear).
package cart

// Line is one cart entry: a ticket type and how many seats of it the user
// wants.  Quantity is always positive; an entry that reaches zero is
// removed rather than kept at zero.
type Line struct {
	TicketTypeID int64 `json:"ticket_type_id"`
	Quantity     int   `json:"quantity"`
}

// Cart maps ticket-type ids to requested quantities while preserving the
// order in which types were first added.  Not safe for concurrent use; the
// console's flow is strictly sequential.
type Cart struct {
	quantities map[int64]int
	order      []int64
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{quantities: make(map[int64]int)}
}

// Add changes the quantity for a ticket type by delta, clamping the result
// at zero.  Reaching zero removes the line entirely.
func (c *Cart) Add(ticketTypeID int64, delta int) {
	current, exists := c.quantities[ticketTypeID]
	next := current + delta
	if next <= 0 {
		if exists {
			delete(c.quantities, ticketTypeID)
			c.removeFromOrder(ticketTypeID)
		}
		return
	}
	if !exists {
		c.order = append(c.order, ticketTypeID)
	}
	c.quantities[ticketTypeID] = next
}

func (c *Cart) removeFromOrder(ticketTypeID int64) {
	for i, id := range c.order {
		if id == ticketTypeID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Quantity returns the current quantity for a ticket type, zero when the
// type is not in the cart.
func (c *Cart) Quantity(ticketTypeID int64) int {
	return c.quantities[ticketTypeID]
}

// Lines returns the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, Line{TicketTypeID: id, Quantity: c.quantities[id]})
	}
	return lines
}

// IsEmpty reports whether the cart holds no lines.  Checkout must be
// refused whenever this is true.
func (c *Cart) IsEmpty() bool { return len(c.order) == 0 }

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.quantities = make(map[int64]int)
	c.order = nil
}

// TotalCents sums quantity times current price over all lines, in cents.
// Prices come from the lookup at call time, not from a snapshot, so a price
// changed mid-session is reflected immediately.  Lines whose price the
// lookup does not know contribute nothing to the total.
func (c *Cart) TotalCents(priceCents func(ticketTypeID int64) (int64, bool)) int64 {
	var total int64
	for _, id := range c.order {
		if cents, ok := priceCents(id); ok {
			total += cents * int64(c.quantities[id])
		}
	}
	return total
}
