package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"ticketdesk/internal/admin"
	"ticketdesk/internal/model"
)

// cmdAdmin dispatches the admin verbs.  Every branch reloads the affected
// list view after a successful mutation instead of patching output
// optimistically.
func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: ticketdesk admin <tickets|seats|bookings> <verb> [flags]")
	}
	a.guard(model.RoleAdmin)

	resource, verb, rest := args[0], args[1], args[2:]
	switch resource {
	case "tickets":
		return a.adminTickets(ctx, verb, rest)
	case "seats":
		return a.adminSeats(ctx, verb, rest)
	case "bookings":
		return a.adminBookings(ctx, verb, rest)
	default:
		return fmt.Errorf("unknown admin resource %q", resource)
	}
}

func (a *app) adminTickets(ctx context.Context, verb string, args []string) error {
	switch verb {
	case "list":
		return a.printTicketTypeTable(ctx)
	case "create":
		fs := flag.NewFlagSet("admin tickets create", flag.ExitOnError)
		name := fs.String("name", "", "ticket type name")
		price := fs.Float64("price", 0, "ticket price in dollars")
		_ = fs.Parse(args)
		created, err := a.admin.CreateTicketType(ctx, *name, *price)
		if err != nil {
			return err
		}
		fmt.Printf("created ticket type %d\n", created.ID)
		return a.printTicketTypeTable(ctx)
	case "update":
		fs := flag.NewFlagSet("admin tickets update", flag.ExitOnError)
		id := fs.Int64("id", 0, "ticket type id")
		name := fs.String("name", "", "ticket type name")
		price := fs.Float64("price", 0, "ticket price in dollars")
		_ = fs.Parse(args)
		if _, err := a.admin.UpdateTicketType(ctx, *id, *name, *price); err != nil {
			return err
		}
		fmt.Printf("updated ticket type %d\n", *id)
		return a.printTicketTypeTable(ctx)
	case "delete":
		fs := flag.NewFlagSet("admin tickets delete", flag.ExitOnError)
		id := fs.Int64("id", 0, "ticket type id")
		yes := fs.Bool("yes", false, "skip the confirmation prompt")
		_ = fs.Parse(args)
		if !*yes && !confirmPrompt(fmt.Sprintf("Delete ticket type %d?", *id)) {
			fmt.Println("aborted")
			return nil
		}
		if err := a.admin.DeleteTicketType(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted ticket type %d\n", *id)
		return a.printTicketTypeTable(ctx)
	default:
		return fmt.Errorf("unknown verb %q for admin tickets", verb)
	}
}

// printTicketTypeTable renders the dashboard view: every ticket type joined
// with its per-type seat counts, built from the two catalog fetches.
func (a *app) printTicketTypeTable(ctx context.Context) error {
	types, err := a.admin.ListTicketTypes(ctx)
	if err != nil {
		return err
	}
	counts, err := a.catalog.SeatCounts(ctx)
	if err != nil {
		return err
	}
	perType := make(map[int64]model.TicketTypeSeatCount, len(counts.TicketTypeCounts))
	for _, c := range counts.TicketTypeCounts {
		perType[c.TicketTypeID] = c
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tTOTAL\tAVAILABLE\tBOOKED")
	for _, t := range types {
		c := perType[t.ID]
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
			t.ID, t.Name, dollars(model.CentsFromPrice(t.Price)),
			c.TotalSeats, c.AvailableSeats, c.NotAvailableSeats)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("seats: %d total, %d available, %d booked\n",
		counts.TotalSeats, counts.AvailableSeats, counts.NotAvailableSeats)
	return nil
}

func (a *app) adminSeats(ctx context.Context, verb string, args []string) error {
	switch verb {
	case "create":
		fs := flag.NewFlagSet("admin seats create", flag.ExitOnError)
		typeID := fs.Int64("type", 0, "ticket type id")
		available := fs.Bool("available", true, "seat availability")
		_ = fs.Parse(args)
		seat, err := a.admin.CreateSeat(ctx, *typeID, *available)
		if err != nil {
			return err
		}
		fmt.Printf("created seat %d\n", seat.ID)
		return a.printTicketTypeTable(ctx)
	case "bulk":
		fs := flag.NewFlagSet("admin seats bulk", flag.ExitOnError)
		typeID := fs.Int64("type", 0, "ticket type id")
		available := fs.Bool("available", true, "seat availability")
		quantity := fs.Int("quantity", 0, "number of seats to create")
		_ = fs.Parse(args)
		created, err := a.admin.BulkCreateSeats(ctx, *typeID, *available, *quantity)
		if err != nil {
			return err
		}
		fmt.Printf("created %d seats for ticket type %d\n", len(created), *typeID)
		return a.printTicketTypeTable(ctx)
	case "update":
		fs := flag.NewFlagSet("admin seats update", flag.ExitOnError)
		id := fs.Int64("id", 0, "seat id")
		typeID := fs.Int64("type", 0, "new ticket type id (0 leaves unchanged)")
		available := fs.String("available", "", "new availability: true or false (empty leaves unchanged)")
		_ = fs.Parse(args)

		var update admin.SeatUpdate
		if *typeID != 0 {
			update.TicketTypeID = typeID
		}
		switch *available {
		case "":
		case "true":
			v := true
			update.IsAvailable = &v
		case "false":
			v := false
			update.IsAvailable = &v
		default:
			return fmt.Errorf("-available must be true or false, got %q", *available)
		}
		seat, err := a.admin.UpdateSeat(ctx, *id, update)
		if err != nil {
			return err
		}
		fmt.Printf("updated seat %d (type %d, available %v)\n", seat.ID, seat.TicketTypeID, seat.IsAvailable)
		return a.printTicketTypeTable(ctx)
	case "delete":
		fs := flag.NewFlagSet("admin seats delete", flag.ExitOnError)
		id := fs.Int64("id", 0, "seat id")
		yes := fs.Bool("yes", false, "skip the confirmation prompt")
		_ = fs.Parse(args)
		if !*yes && !confirmPrompt(fmt.Sprintf("Delete seat %d?", *id)) {
			fmt.Println("aborted")
			return nil
		}
		if err := a.admin.DeleteSeat(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("deleted seat %d\n", *id)
		return a.printTicketTypeTable(ctx)
	default:
		return fmt.Errorf("unknown verb %q for admin seats", verb)
	}
}

func (a *app) adminBookings(ctx context.Context, verb string, args []string) error {
	switch verb {
	case "list":
		items, err := a.admin.ListBookings(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSER\tTOTAL\tSTATUS\tCREATED")
		for _, it := range items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				it.ID, it.UserName, dollars(model.CentsFromPrice(it.TotalAmount)),
				it.Status, it.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	case "show":
		fs := flag.NewFlagSet("admin bookings show", flag.ExitOnError)
		id := fs.Int64("id", 0, "booking id")
		_ = fs.Parse(args)
		detail, err := a.admin.GetBooking(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("booking %d  user=%s <%s>  status=%s  total=%s  created=%s\n",
			detail.ID, detail.UserName, detail.UserEmail, detail.Status,
			dollars(model.CentsFromPrice(detail.TotalAmount)),
			detail.CreatedAt.Format("2006-01-02 15:04"))
		if len(detail.Tickets) == 0 {
			fmt.Println("  (no details)")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, t := range detail.Tickets {
			fmt.Fprintf(w, "  %s x %d\t%s each\n", t.TicketType, t.Quantity, dollars(model.CentsFromPrice(t.Price)))
		}
		return w.Flush()
	case "status":
		fs := flag.NewFlagSet("admin bookings status", flag.ExitOnError)
		id := fs.Int64("id", 0, "booking id")
		status := fs.String("status", "", "target status: confirmed or cancelled")
		_ = fs.Parse(args)
		result, err := a.admin.SetBookingStatus(ctx, *id, model.NormalizeStatus(*status))
		if err != nil {
			return err
		}
		fmt.Printf("booking %d: %s (%s)\n", result.ID, result.Message, result.Status)
		return nil
	default:
		return fmt.Errorf("unknown verb %q for admin bookings", verb)
	}
}
