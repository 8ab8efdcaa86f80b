// Package stubserver is an in-memory stand-in for the booking backend,
// used by package tests.  It reproduces the wire contract the console
// depends on (form-encoded login, bearer-guarded resources, `{detail}`
// error bodies, lowercase booking statuses "pending"/"paid"/"canceled",
// naive datetime serialization) so the client code is exercised against
// the same shapes the real server produces.
package stubserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// User is a login-capable account known to the stub.
type User struct {
	ID       int64
	Name     string
	Email    string
	Password string
	Type     string // "user" or "admin"
}

type ticketType struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type seat struct {
	ID           int64 `json:"id"`
	TicketTypeID int64 `json:"ticket_type_id"`
	IsAvailable  bool  `json:"is_available"`
}

type bookingLine struct {
	ticketTypeID int64
	quantity     int
}

type booking struct {
	id     int64
	userID int64
	status string // pending | paid | canceled
	time   time.Time
	lines  []bookingLine
}

// Server hosts the stub over httptest.  All state is guarded by one mutex;
// tests are free to poke at it through the helper methods.
type Server struct {
	mu sync.Mutex

	httpSrv *httptest.Server
	URL     string

	// Requests counts every request that reached the stub, including
	// rejected ones.  Tests use it to assert that no call was made.
	Requests int

	// DisableBulk makes POST /seats/bulk answer 404 so the sequential
	// fallback path can be tested.
	DisableBulk bool

	users       map[string]*User  // keyed by email
	tokens      map[string]*User  // keyed by bearer token
	ticketTypes map[int64]*ticketType
	seats       map[int64]*seat
	bookings    map[int64]*booking

	nextUserID, nextTypeID, nextSeatID, nextBookingID int64
	nextToken                                         int64
}

// New builds and starts a stub server.  Callers must Close it.
func New() *Server {
	s := &Server{
		users:       make(map[string]*User),
		tokens:      make(map[string]*User),
		ticketTypes: make(map[int64]*ticketType),
		seats:       make(map[int64]*seat),
		bookings:    make(map[int64]*booking),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(s.countRequests)

	e.POST("/auth/login", s.login)
	e.POST("/auth/register", s.register)
	e.GET("/auth/me", s.me, s.requireAuth)

	tt := e.Group("/ticket-types", s.requireAuth)
	tt.GET("", s.listTicketTypes)
	tt.POST("", s.createTicketType)
	tt.GET("/:id", s.getTicketType)
	tt.PUT("/:id", s.updateTicketType)
	tt.DELETE("/:id", s.deleteTicketType)

	st := e.Group("/seats", s.requireAuth)
	st.GET("/count", s.seatCounts)
	st.POST("", s.createSeat)
	st.POST("/bulk", s.bulkCreateSeats)
	st.PUT("/:id", s.updateSeat)
	st.DELETE("/:id", s.deleteSeat)

	bk := e.Group("/bookings", s.requireAuth)
	bk.POST("/initiate", s.initiateBooking)
	bk.GET("/admin/list", s.adminListBookings)
	bk.GET("/admin/:id", s.adminGetBooking)
	bk.PUT("/admin/:id/status", s.adminSetStatus)
	bk.GET("/:id", s.getBooking)
	bk.POST("/:id/confirm", s.confirmBooking)
	bk.POST("/:id/cancel", s.cancelBooking)

	s.httpSrv = httptest.NewServer(e)
	s.URL = s.httpSrv.URL
	return s
}

// Close shuts the underlying test server down.
func (s *Server) Close() { s.httpSrv.Close() }

// ---- test helpers ----

// AddUser registers an account and returns its id.
func (s *Server) AddUser(name, email, password, typ string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	s.users[email] = &User{ID: s.nextUserID, Name: name, Email: email, Password: password, Type: typ}
	return s.nextUserID
}

// TokenFor mints a bearer token for an existing user without going through
// the login endpoint.
func (s *Server) TokenFor(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		panic("stubserver: no such user " + email)
	}
	return s.issueToken(u)
}

// RevokeAllTokens invalidates every outstanding token, so the next
// authenticated call answers 401.
func (s *Server) RevokeAllTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]*User)
}

// AddTicketType seeds a ticket type and returns its id.
func (s *Server) AddTicketType(name string, price float64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTypeID++
	s.ticketTypes[s.nextTypeID] = &ticketType{ID: s.nextTypeID, Name: name, Price: price}
	return s.nextTypeID
}

// AddSeats seeds n available seats of a ticket type.
func (s *Server) AddSeats(ticketTypeID int64, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.nextSeatID++
		s.seats[s.nextSeatID] = &seat{ID: s.nextSeatID, TicketTypeID: ticketTypeID, IsAvailable: true}
	}
}

// SeatTotals returns (total, available) across all seats.
func (s *Server) SeatTotals() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total, available := 0, 0
	for _, st := range s.seats {
		total++
		if st.IsAvailable {
			available++
		}
	}
	return total, available
}

// BookingStatus returns the raw stored status of a booking.
func (s *Server) BookingStatus(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		return b.status
	}
	return ""
}

// RequestCount returns how many requests reached the stub so far.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Requests
}

func (s *Server) issueToken(u *User) string {
	s.nextToken++
	tok := fmt.Sprintf("stub-token-%d", s.nextToken)
	s.tokens[tok] = u
	return tok
}

// ---- middleware ----

func (s *Server) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		s.Requests++
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Not authenticated"})
		}
		raw := strings.TrimPrefix(auth, "Bearer ")
		s.mu.Lock()
		u, ok := s.tokens[raw]
		s.mu.Unlock()
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Could not validate"})
		}
		c.Set("user", u)
		return next(c)
	}
}

func currentUser(c echo.Context) *User { return c.Get("user").(*User) }

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// naiveTime serializes like the backend does: no timezone offset.
func naiveTime(t time.Time) string { return t.Format("2006-01-02T15:04:05") }

// ---- auth handlers ----

func (s *Server) login(c echo.Context) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok || u.Password != password {
		return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "Incorrect email or password"})
	}
	tok := s.issueToken(u)
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok,
		"token_type":   "bearer",
		"user_type":    u.Type,
	})
}

func (s *Server) register(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Type     string `json:"type"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Email already registered"})
	}
	s.nextUserID++
	u := &User{ID: s.nextUserID, Name: req.Name, Email: req.Email, Password: req.Password, Type: req.Type}
	s.users[req.Email] = u
	return c.JSON(http.StatusOK, echo.Map{
		"id": u.ID, "name": u.Name, "email": u.Email, "type": u.Type,
	})
}

func (s *Server) me(c echo.Context) error {
	u := currentUser(c)
	return c.JSON(http.StatusOK, echo.Map{
		"id": u.ID, "name": u.Name, "email": u.Email, "type": u.Type,
	})
}

// ---- ticket type handlers ----

func (s *Server) listTicketTypes(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]echo.Map, 0, len(s.ticketTypes))
	for id := int64(1); id <= s.nextTypeID; id++ {
		t, ok := s.ticketTypes[id]
		if !ok {
			continue
		}
		available := 0
		for _, st := range s.seats {
			if st.TicketTypeID == t.ID && st.IsAvailable {
				available++
			}
		}
		out = append(out, echo.Map{
			"id": t.ID, "name": t.Name, "price": t.Price, "available_quantity": available,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getTicketType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.ticketTypes[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Ticket type not found"})
	}
	return c.JSON(http.StatusOK, t)
}

func (s *Server) createTicketType(c echo.Context) error {
	var req ticketType
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Ticket type name cannot be empty"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Price must be greater than 0"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.ticketTypes {
		if t.Name == req.Name {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "A ticket type with this name already exists"})
		}
	}
	s.nextTypeID++
	t := &ticketType{ID: s.nextTypeID, Name: req.Name, Price: req.Price}
	s.ticketTypes[t.ID] = t
	return c.JSON(http.StatusOK, t)
}

func (s *Server) updateTicketType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	var req ticketType
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.ticketTypes[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Ticket type not found"})
	}
	t.Name, t.Price = req.Name, req.Price
	return c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTicketType(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ticketTypes[id]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Ticket type not found"})
	}
	for _, b := range s.bookings {
		for _, l := range b.lines {
			if l.ticketTypeID == id {
				return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Ticket type is referenced by bookings"})
			}
		}
	}
	delete(s.ticketTypes, id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Ticket type deleted successfully"})
}

// ---- seat handlers ----

func (s *Server) seatCounts(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	total, available := 0, 0
	perType := make([]echo.Map, 0, len(s.ticketTypes))
	for id := int64(1); id <= s.nextTypeID; id++ {
		t, ok := s.ticketTypes[id]
		if !ok {
			continue
		}
		tTotal, tAvail := 0, 0
		for _, st := range s.seats {
			if st.TicketTypeID != t.ID {
				continue
			}
			tTotal++
			if st.IsAvailable {
				tAvail++
			}
		}
		total += tTotal
		available += tAvail
		perType = append(perType, echo.Map{
			"ticket_type_id":      t.ID,
			"ticket_type_name":    t.Name,
			"total_seats":         tTotal,
			"available_seats":     tAvail,
			"not_available_seats": tTotal - tAvail,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_seats":         total,
		"available_seats":     available,
		"not_available_seats": total - available,
		"ticket_type_counts":  perType,
	})
}

func (s *Server) createSeat(c echo.Context) error {
	var req seat
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ticketTypes[req.TicketTypeID]; !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Ticket type not found"})
	}
	s.nextSeatID++
	st := &seat{ID: s.nextSeatID, TicketTypeID: req.TicketTypeID, IsAvailable: req.IsAvailable}
	s.seats[st.ID] = st
	return c.JSON(http.StatusOK, st)
}

func (s *Server) bulkCreateSeats(c echo.Context) error {
	if s.DisableBulk {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Not Found"})
	}
	var req struct {
		TicketTypeID int64 `json:"ticket_type_id"`
		IsAvailable  bool  `json:"is_available"`
		Quantity     int   `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	if req.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Quantity must be at least 1"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ticketTypes[req.TicketTypeID]; !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Ticket type not found"})
	}
	created := make([]*seat, 0, req.Quantity)
	for i := 0; i < req.Quantity; i++ {
		s.nextSeatID++
		st := &seat{ID: s.nextSeatID, TicketTypeID: req.TicketTypeID, IsAvailable: req.IsAvailable}
		s.seats[st.ID] = st
		created = append(created, st)
	}
	return c.JSON(http.StatusOK, created)
}

func (s *Server) updateSeat(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	var req struct {
		TicketTypeID *int64 `json:"ticket_type_id"`
		IsAvailable  *bool  `json:"is_available"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.seats[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Seat not found"})
	}
	if req.TicketTypeID != nil {
		st.TicketTypeID = *req.TicketTypeID
	}
	if req.IsAvailable != nil {
		st.IsAvailable = *req.IsAvailable
	}
	return c.JSON(http.StatusOK, st)
}

func (s *Server) deleteSeat(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seats[id]; !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Seat not found"})
	}
	delete(s.seats, id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Seat deleted successfully"})
}

// ---- booking handlers ----

func (s *Server) initiateBooking(c echo.Context) error {
	var req struct {
		UserID         int64 `json:"user_id"`
		SeatsRequested []struct {
			TicketTypeID int64 `json:"ticket_type_id"`
			Quantity     int   `json:"quantity"`
		} `json:"seats_requested"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Verify availability per type before mutating anything.
	for _, sr := range req.SeatsRequested {
		if _, ok := s.ticketTypes[sr.TicketTypeID]; !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": fmt.Sprintf("Ticket type %d not found", sr.TicketTypeID)})
		}
		available := 0
		for _, st := range s.seats {
			if st.TicketTypeID == sr.TicketTypeID && st.IsAvailable {
				available++
			}
		}
		if available < sr.Quantity {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"detail": fmt.Sprintf("Not enough available seats for ticket type %d", sr.TicketTypeID),
			})
		}
	}

	s.nextBookingID++
	b := &booking{id: s.nextBookingID, userID: req.UserID, status: "pending", time: time.Now()}
	for _, sr := range req.SeatsRequested {
		taken := 0
		for id := int64(1); id <= s.nextSeatID && taken < sr.Quantity; id++ {
			st, ok := s.seats[id]
			if ok && st.TicketTypeID == sr.TicketTypeID && st.IsAvailable {
				st.IsAvailable = false
				taken++
			}
		}
		b.lines = append(b.lines, bookingLine{ticketTypeID: sr.TicketTypeID, quantity: sr.Quantity})
	}
	s.bookings[b.id] = b
	return c.JSON(http.StatusOK, s.bookingJSON(b))
}

func (s *Server) bookingJSON(b *booking) echo.Map {
	details := make([]echo.Map, 0, len(b.lines))
	for _, l := range b.lines {
		t := s.ticketTypes[l.ticketTypeID]
		details = append(details, echo.Map{
			"ticket_type": echo.Map{"id": t.ID, "name": t.Name, "price": t.Price},
			"quantity":    l.quantity,
		})
	}
	return echo.Map{
		"id":              b.id,
		"user_id":         b.userID,
		"status":          b.status,
		"time":            naiveTime(b.time),
		"booking_details": details,
	}
}

func (s *Server) getBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Booking not found"})
	}
	return c.JSON(http.StatusOK, s.bookingJSON(b))
}

func (s *Server) confirmBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Booking not found"})
	}
	if b.status != "pending" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Booking is not pending and cannot be confirmed"})
	}
	b.status = "paid"
	return c.JSON(http.StatusOK, echo.Map{"id": b.id, "status": b.status, "message": "Payment confirmed successfully"})
}

func (s *Server) cancelBooking(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Booking not found"})
	}
	if b.status != "pending" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "Only pending bookings can be canceled"})
	}
	b.status = "canceled"
	// Release the booked seats.
	for _, l := range b.lines {
		released := 0
		for sid := int64(1); sid <= s.nextSeatID && released < l.quantity; sid++ {
			st, ok := s.seats[sid]
			if ok && st.TicketTypeID == l.ticketTypeID && !st.IsAvailable {
				st.IsAvailable = true
				released++
			}
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"id": b.id, "status": b.status, "message": "Booking canceled successfully"})
}

func (s *Server) bookingTotal(b *booking) float64 {
	var total float64
	for _, l := range b.lines {
		if t, ok := s.ticketTypes[l.ticketTypeID]; ok {
			total += t.Price * float64(l.quantity)
		}
	}
	return total
}

func (s *Server) userName(id int64) (name, email string) {
	for _, u := range s.users {
		if u.ID == id {
			return u.Name, u.Email
		}
	}
	return "", ""
}

func (s *Server) adminListBookings(c echo.Context) error {
	if currentUser(c).Type != "admin" {
		return c.JSON(http.StatusForbidden, echo.Map{"detail": "Only admin can access this endpoint"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]echo.Map, 0, len(s.bookings))
	for id := int64(1); id <= s.nextBookingID; id++ {
		b, ok := s.bookings[id]
		if !ok {
			continue
		}
		name, _ := s.userName(b.userID)
		out = append(out, echo.Map{
			"id":           b.id,
			"user_name":    name,
			"total_amount": s.bookingTotal(b),
			"status":       b.status,
			"created_at":   naiveTime(b.time),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) adminGetBooking(c echo.Context) error {
	if currentUser(c).Type != "admin" {
		return c.JSON(http.StatusForbidden, echo.Map{"detail": "Only admin can access this endpoint"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Booking not found"})
	}
	name, email := s.userName(b.userID)
	tickets := make([]echo.Map, 0, len(b.lines))
	for _, l := range b.lines {
		t := s.ticketTypes[l.ticketTypeID]
		tickets = append(tickets, echo.Map{
			"ticket_type": t.Name, "quantity": l.quantity, "price": t.Price,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":           b.id,
		"user_name":    name,
		"user_email":   email,
		"total_amount": s.bookingTotal(b),
		"status":       b.status,
		"created_at":   naiveTime(b.time),
		"tickets":      tickets,
	})
}

func (s *Server) adminSetStatus(c echo.Context) error {
	if currentUser(c).Type != "admin" {
		return c.JSON(http.StatusForbidden, echo.Map{"detail": "Only admin can access this endpoint"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"detail": "invalid id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "invalid body"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "Booking not found"})
	}
	b.status = req.Status
	return c.JSON(http.StatusOK, echo.Map{"id": b.id, "status": b.status, "message": "Booking status updated successfully"})
}
