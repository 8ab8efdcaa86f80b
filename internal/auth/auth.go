// Package auth drives the login, registration and identity flows.  The
// backend's login endpoint follows the OAuth2 password-flow convention: the
// credentials travel form-encoded under `username`/`password` and only a
// token comes back, so a successful login is a two-step exchange: obtain
// the token, then resolve the identity via /auth/me before the session is
// persisted.
package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"ticketdesk/internal/client"
	"ticketdesk/internal/model"
	"ticketdesk/internal/session"
)

// Service bundles what the auth flows need.
type Service struct {
	API      *client.Client
	Sessions session.Store
	Log      *zap.Logger
}

// tokenResponse is the body of POST /auth/login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserType    string `json:"user_type"`
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Type        string `json:"type"`          // "user" or "admin"
}

// Login exchanges credentials for a token, resolves the identity behind it
// and persists the session.  A failed identity lookup leaves no partial
// session behind.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, client.Validationf("email and password are required")
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tok tokenResponse
	if err := s.API.DoForm(ctx, "/auth/login", form, &tok); err != nil {
		return nil, err
	}

	// Store the token provisionally so the /auth/me call below can attach
	// it; the full session with identity replaces it on success.
	if err := s.Sessions.Set(&model.Session{AccessToken: tok.AccessToken}); err != nil {
		return nil, err
	}
	user, err := s.Me(ctx)
	if err != nil {
		_ = s.Sessions.Clear()
		return nil, err
	}

	sess := &model.Session{AccessToken: tok.AccessToken, User: *user}
	if err := s.Sessions.Set(sess); err != nil {
		return nil, err
	}
	s.Log.Info("logged in", zap.String("email", user.Email), zap.String("type", user.Type))
	return sess, nil
}

// Me fetches the identity bound to the current token.
func (s *Service) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.API.Do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new account.  The backend returns the created user but
// no token; the caller logs in separately.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, client.Validationf("name, email and password are required")
	}
	if in.Type == "" {
		in.Type = model.RoleUser
	}
	var user model.User
	if err := s.API.Do(ctx, http.MethodPost, "/auth/register", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout drops the local session.  The backend keeps no session state for
// bearer tokens, so there is nothing to revoke remotely.
func (s *Service) Logout() error {
	return s.Sessions.Clear()
}
