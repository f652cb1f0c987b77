package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiply/equiply-cli/internal/logging"
)

func stubInput(t *testing.T, text, password string) {
	t.Helper()
	origText, origPassword := getSimpleText, getPassword
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) {
		return text, nil
	}
	getPassword = func(io.Writer) (string, error) {
		return password, nil
	}
	t.Cleanup(func() {
		getSimpleText, getPassword = origText, origPassword
	})
}

func mintAccessToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":     "ana@example.com",
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newLoginApp(t *testing.T, handler http.Handler) (*App, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testConfig(t)
	cfg.ServerBaseURL = srv.URL
	cfg.UserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148"

	app, err := NewApp(cfg, logging.NewTextLogger(io.Discard, -8))
	require.NoError(t, err)
	t.Cleanup(func() { app.kv.Close() })

	var out bytes.Buffer
	app.out = &out
	app.controller.Start(context.Background())
	t.Cleanup(app.controller.Stop)
	return app, &out
}

func TestApp_Login_Success(t *testing.T) {
	access := mintAccessToken(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"` + access + `","refresh_token":"rt1","token_type":"bearer"}`))
	})
	app, _ := newLoginApp(t, handler)
	stubInput(t, "ana@example.com", "s3cret")

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.Equal(t, "(ana@example.com)", app.getStatus())
}

func TestApp_Login_FailureIsThrottledAfterLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":{"detail":"invalid credentials","error_type":"auth_error","status_code":401}}`))
	})
	app, out := newLoginApp(t, handler)
	stubInput(t, "ana@example.com", "wrong")
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts; i++ {
		require.Error(t, app.Login(ctx))
	}
	assert.False(t, app.isLoggedIn())

	out.Reset()
	require.NoError(t, app.Login(ctx))
	assert.Contains(t, out.String(), "Too many failed attempts")
}

func TestApp_Logout_ClearsSession(t *testing.T) {
	access := mintAccessToken(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/v1/auth" {
			w.Write([]byte(`{"access_token":"` + access + `","refresh_token":"rt1","token_type":"bearer"}`))
			return
		}
		w.Write([]byte(`{"success":true}`))
	})
	app, _ := newLoginApp(t, handler)
	stubInput(t, "ana@example.com", "s3cret")
	ctx := context.Background()

	require.NoError(t, app.Login(ctx))
	require.True(t, app.isLoggedIn())

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
}

func TestApp_Whoami_SignedOut(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	app, out := newLoginApp(t, handler)

	require.NoError(t, app.Whoami(context.Background()))
	assert.Contains(t, out.String(), "Not signed in")
}
