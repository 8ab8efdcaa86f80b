package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ticketdesk/internal/client"
	"ticketdesk/internal/session"
	"ticketdesk/internal/stubserver"
)

func newService(t *testing.T, baseURL string) (*Service, session.Store) {
	t.Helper()
	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	api := client.New(baseURL, 0, store, nil)
	return &Service{API: api, Sessions: store, Log: zap.NewNop()}, store
}

func TestLoginPersistsTokenAndIdentity(t *testing.T) {
	srv := stubserver.New()
	defer srv.Close()
	srv.AddUser("Ada", "ada@example.com", "secret", "user")

	svc, store := newService(t, srv.URL)
	sess, err := svc.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.AccessToken)
	assert.Equal(t, "Ada", sess.User.Name)
	assert.Equal(t, "user", sess.User.Type)

	stored, err := store.Get()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, sess.AccessToken, stored.AccessToken)
	assert.Equal(t, "ada@example.com", stored.User.Email)
}

func TestLoginBadCredentials(t *testing.T) {
	srv := stubserver.New()
	defer srv.Close()
	srv.AddUser("Ada", "ada@example.com", "secret", "user")

	svc, store := newService(t, srv.URL)
	_, err := svc.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	stored, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestLoginRejectsBlankCredentialsBeforeNetwork(t *testing.T) {
	srv := stubserver.New()
	defer srv.Close()

	svc, _ := newService(t, srv.URL)
	_, err := svc.Login(context.Background(), "  ", "pw")
	var verr *client.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, srv.RequestCount(), "validation failures must not hit the backend")
}

func TestLoginLeavesNoPartialSessionOnIdentityFailure(t *testing.T) {
	// A backend that hands out a token but cannot answer /auth/me.  The
	// provisional token stored between the two calls must not survive.
	raw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/login" {
			_, _ = w.Write([]byte(`{"access_token":"t-1","token_type":"bearer","user_type":"user"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"identity store down"}`))
	}))
	defer raw.Close()

	svc, store := newService(t, raw.URL)
	_, err := svc.Login(context.Background(), "ada@example.com", "secret")

	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	stored, getErr := store.Get()
	require.NoError(t, getErr)
	assert.Nil(t, stored, "the provisional token must be cleared")
}

func TestRegisterThenLogin(t *testing.T) {
	srv := stubserver.New()
	defer srv.Close()

	svc, _ := newService(t, srv.URL)
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Grace",
		Email:    "grace@example.com",
		Password: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.Name)
	assert.Equal(t, "user", user.Type, "type defaults to user")

	sess, err := svc.Login(context.Background(), "grace@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", sess.User.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := stubserver.New()
	defer srv.Close()
	srv.AddUser("Ada", "ada@example.com", "pw", "user")

	svc, _ := newService(t, srv.URL)
	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ada Again", Email: "ada@example.com", Password: "pw",
	})
	var httpErr *client.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Email already registered", httpErr.Detail)
}

func TestLogout(t *testing.T) {
	srv := stubserver.New()
	defer srv.Close()
	srv.AddUser("Ada", "ada@example.com", "pw", "user")

	svc, store := newService(t, srv.URL)
	_, err := svc.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout())
	stored, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, stored)
}
