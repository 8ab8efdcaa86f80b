package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"ticketdesk/internal/auth"
	"ticketdesk/internal/cart"
	"ticketdesk/internal/catalog"
	"ticketdesk/internal/client"
	"ticketdesk/internal/model"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	s, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s (%s)\n", s.User.Name, s.User.Type)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	phone := fs.String("phone", "", "phone number")
	dob := fs.String("dob", "", "date of birth (YYYY-MM-DD)")
	typ := fs.String("type", model.RoleUser, "account type (user or admin)")
	_ = fs.Parse(args)

	user, err := a.auth.Register(ctx, auth.RegisterInput{
		Name:        *name,
		Email:       *email,
		Password:    *password,
		PhoneNumber: *phone,
		DateOfBirth: *dob,
		Type:        *typ,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (id %d); run `ticketdesk login` to sign in\n", user.Email, user.ID)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

// cmdMe works for either role, so it reads the session directly instead of
// going through the role guard (which would clear a session of the other
// type).  The identity is re-fetched from the server, not echoed from disk.
func (a *app) cmdMe(ctx context.Context) error {
	s, err := a.sessions.Get()
	if err != nil || s == nil {
		return client.Validationf("no session; run `ticketdesk login`")
	}
	user, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("id:    %d\nname:  %s\nemail: %s\ntype:  %s\n", user.ID, user.Name, user.Email, user.Type)
	return nil
}

func (a *app) cmdCatalog(ctx context.Context) error {
	a.guard(model.RoleUser)

	types, err := a.catalog.ListTicketTypes(ctx)
	if err != nil {
		return err
	}
	counts, err := a.catalog.SeatCounts(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tTOTAL\tAVAILABLE\tBOOKED")
	perType := make(map[int64]model.TicketTypeSeatCount, len(counts.TicketTypeCounts))
	for _, c := range counts.TicketTypeCounts {
		perType[c.TicketTypeID] = c
	}
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

// ticketFlags collects repeated -ticket id=qty selections.
type ticketFlags []cart.Line

func (t *ticketFlags) String() string { return fmt.Sprint([]cart.Line(*t)) }

func (t *ticketFlags) Set(v string) error {
	id, qty, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("expected id=qty, got %q", v)
	}
	typeID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ticket type id %q", id)
	}
	n, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil {
		return fmt.Errorf("invalid quantity %q", qty)
	}
	*t = append(*t, cart.Line{TicketTypeID: typeID, Quantity: n})
	return nil
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	var tickets ticketFlags
	fs.Var(&tickets, "ticket", "ticket selection as id=qty (repeatable)")
	_ = fs.Parse(args)

	s := a.guard(model.RoleUser)

	// Fetch the catalog first so prices come from retained records, then
	// build the cart from the selections.  Negative quantities simply clamp
	// away.
	types, err := a.catalog.ListTicketTypes(ctx)
	if err != nil {
		return err
	}
	prices := catalog.NewPriceIndex(types)

	selection := cart.New()
	for _, t := range tickets {
		if _, ok := prices.Get(t.TicketTypeID); !ok {
			return client.Validationf("unknown ticket type %d", t.TicketTypeID)
		}
		selection.Add(t.TicketTypeID, t.Quantity)
	}
	if selection.IsEmpty() {
		return client.Validationf("cart is empty; select at least one ticket with -ticket id=qty")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, line := range selection.Lines() {
		t, _ := prices.Get(line.TicketTypeID)
		cents, _ := prices.PriceCents(line.TicketTypeID)
		fmt.Fprintf(w, "%s x %d\t%s\n", t.Name, line.Quantity, dollars(cents*int64(line.Quantity)))
	}
	fmt.Fprintf(w, "total\t%s\n", dollars(selection.TotalCents(prices.PriceCents)))
	if err := w.Flush(); err != nil {
		return err
	}

	b, err := a.bookings.Initiate(ctx, s.User.ID, selection.Lines())
	if err != nil {
		return err
	}
	fmt.Printf("booking %d created (%s); run `ticketdesk pay` to confirm or `ticketdesk cancel` to release the seats\n",
		b.ID, b.Status)
	return nil
}

// resolveBookingID picks the explicit -id flag or falls back to the stored
// active booking.
func (a *app) resolveBookingID(flagID int64) (int64, error) {
	if flagID != 0 {
		return flagID, nil
	}
	id, err := a.bookings.ActiveBookingID()
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, client.Validationf("no active booking; run `ticketdesk book` first or pass -id")
	}
	return id, nil
}

func (a *app) cmdBooking(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("booking", flag.ExitOnError)
	flagID := fs.Int64("id", 0, "booking id (defaults to the active booking)")
	_ = fs.Parse(args)

	a.guard(model.RoleUser)
	id, err := a.resolveBookingID(*flagID)
	if err != nil {
		return err
	}
	b, err := a.bookings.Fetch(ctx, id)
	if err != nil {
		return err
	}
	printBooking(b)
	return nil
}

func printBooking(b *model.Booking) {
	fmt.Printf("booking %d  status=%s  created=%s\n", b.ID, b.Status, b.Time.Format("2006-01-02 15:04"))
	if len(b.Details) == 0 {
		fmt.Println("  (no details)")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, d := range b.Details {
		each := model.CentsFromPrice(d.TicketType.Price)
		fmt.Fprintf(w, "  %s x %d\t%s\t(%s each)\n",
			d.TicketType.Name, d.Quantity, dollars(each*int64(d.Quantity)), dollars(each))
	}
	fmt.Fprintf(w, "  total\t%s\t\n", dollars(b.TotalCents()))
	_ = w.Flush()
}

func (a *app) cmdPay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	flagID := fs.Int64("id", 0, "booking id (defaults to the active booking)")
	_ = fs.Parse(args)

	a.guard(model.RoleUser)
	id, err := a.resolveBookingID(*flagID)
	if err != nil {
		return err
	}
	result, err := a.bookings.Confirm(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("booking %d: %s (%s)\n", result.ID, result.Message, result.Status)
	return nil
}

func (a *app) cmdCancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	flagID := fs.Int64("id", 0, "booking id (defaults to the active booking)")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	_ = fs.Parse(args)

	a.guard(model.RoleUser)
	id, err := a.resolveBookingID(*flagID)
	if err != nil {
		return err
	}

	// Cancellation is irreversible, so it stays behind an explicit gate.
	if !*yes && !confirmPrompt(fmt.Sprintf("Cancel booking %d?", id)) {
		fmt.Println("aborted")
		return nil
	}

	result, err := a.bookings.Cancel(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("booking %d: %s (%s)\n", result.ID, result.Message, result.Status)
	return nil
}

func confirmPrompt(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
