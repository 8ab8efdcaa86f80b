package main // Entry point of the ticketdesk console

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"ticketdesk/internal/admin"
	"ticketdesk/internal/auth"
	"ticketdesk/internal/booking"
	"ticketdesk/internal/catalog"
	"ticketdesk/internal/client"
	"ticketdesk/internal/config"
	"ticketdesk/internal/logging"
	"ticketdesk/internal/model"
	"ticketdesk/internal/session"
)

// app wires the console's components together.  Every subcommand receives
// the same assembled set, so they all share one authenticated client and
// one session store.
type app struct {
	cfg      config.Config
	log      *zap.Logger
	sessions session.Store
	api      *client.Client
	auth     *auth.Service
	catalog  *catalog.Reader
	bookings *booking.Controller
	admin    *admin.Panel
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	store := newStore(cfg, logger)
	api := client.New(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeoutSec)*time.Second, store, logger)

	ctrl := booking.New(api, store, logger)
	ctrl.UseIdempotencyKeys = cfg.IdempotencyKeys

	a := &app{
		cfg:      cfg,
		log:      logger,
		sessions: store,
		api:      api,
		auth:     &auth.Service{API: api, Sessions: store, Log: logger},
		catalog:  &catalog.Reader{API: api},
		bookings: ctrl,
		admin:    admin.New(api, logger),
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		a.fail(err)
	}
}

// newStore selects the session backend.  A redis backend that cannot be
// reached degrades to the file store instead of refusing to start.
func newStore(cfg config.Config, logger *zap.Logger) session.Store {
	if cfg.SessionBackend == "redis" {
		if rdb := session.NewRedisClient(); rdb != nil {
			return session.NewRedisStore(rdb)
		}
		logger.Warn("redis session backend unreachable, falling back to file store")
	}
	return session.NewFileStore(cfg.SessionFile)
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		return a.cmdLogout()
	case "me":
		return a.cmdMe(ctx)
	case "catalog":
		return a.cmdCatalog(ctx)
	case "book":
		return a.cmdBook(ctx, args)
	case "booking":
		return a.cmdBooking(ctx, args)
	case "pay":
		return a.cmdPay(ctx, args)
	case "cancel":
		return a.cmdCancel(ctx, args)
	case "admin":
		return a.cmdAdmin(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// guard runs the role check every protected command starts with and turns
// a redirect signal into a login hint plus a non-zero exit.  If it returns,
// the session is valid.
func (a *app) guard(role string) *model.Session {
	s, redirect := session.RequireRole(a.sessions, role)
	if redirect != session.RedirectNone {
		if redirect == session.RedirectAdminLogin {
			fmt.Fprintln(os.Stderr, "admin session required: run `ticketdesk login` with an admin account")
		} else {
			fmt.Fprintln(os.Stderr, "session required: run `ticketdesk login`")
		}
		os.Exit(1)
	}
	return s
}

// fail prints the failure the way the error taxonomy dictates and exits.
func (a *app) fail(err error) {
	var vErr *client.ValidationError
	var hErr *client.HTTPError
	var nErr *client.NetworkError
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		fmt.Fprintln(os.Stderr, "session expired: run `ticketdesk login`")
	case errors.As(err, &vErr):
		fmt.Fprintln(os.Stderr, vErr.Msg)
	case errors.As(err, &hErr):
		if hErr.Detail != "" {
			fmt.Fprintln(os.Stderr, "request failed:", hErr.Detail)
		} else {
			fmt.Fprintf(os.Stderr, "request failed with status %d\n", hErr.Status)
		}
	case errors.As(err, &nErr):
		fmt.Fprintln(os.Stderr, "could not reach the server; check API_BASE_URL and try again")
	default:
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

// dollars renders cents as a dollar string for the tables.
func dollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func usage() {
	fmt.Fprint(os.Stderr, `ticketdesk - booking console

usage: ticketdesk <command> [flags]

  login      -email -password             sign in and store the session
  register   -name -email -password ...   create an account
  logout                                  drop the stored session
  me                                      show the signed-in identity
  catalog                                 list ticket types and seat counts
  book       -ticket id=qty [...]         select tickets and initiate a booking
  booking    [-id N]                      show a booking (defaults to the active one)
  pay        [-id N]                      confirm payment for a booking
  cancel     [-id N] [-yes]               cancel a pending booking
  admin      <tickets|seats|bookings> ... admin mutations

environment: API_BASE_URL (required), APP_ENV, SESSION_BACKEND, SESSION_FILE,
HTTP_TIMEOUT_SEC, IDEMPOTENCY_KEYS, REDIS_HOST/REDIS_PORT/REDIS_PASSWORD
`)
}
