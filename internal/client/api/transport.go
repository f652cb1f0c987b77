package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/equiply/equiply-cli/internal/client/session"
	"github.com/equiply/equiply-cli/internal/logging"
)

// Refresher exchanges the stored refresh token for a new pair.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RouteFunc reports the UI route the client is currently on. A 401 received
// while the user sits on the sign-in screen is an expected login failure and
// must not trigger a refresh.
type RouteFunc func() string

// AuthTransport is an http.RoundTripper that attaches the stored access
// token to outgoing requests and transparently recovers from a single 401
// by refreshing the token pair and replaying the request once.
//
// Auth endpoints themselves (any path containing "/auth" or "password") are
// exempt from both token attachment and the retry: their 401s are genuine
// credential failures.
type AuthTransport struct {
	base      http.RoundTripper
	store     *session.TokenStore
	refresher Refresher
	bus       *session.Bus
	route     RouteFunc
	log       logging.Logger
}

func NewAuthTransport(base http.RoundTripper, store *session.TokenStore,
	refresher Refresher, bus *session.Bus, route RouteFunc, log logging.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthTransport{
		base:      base,
		store:     store,
		refresher: refresher,
		bus:       bus,
		route:     route,
		log:       log,
	}
}

func isAuthPath(path string) bool {
	return strings.Contains(path, "/auth")
}

func isPasswordPath(path string) bool {
	return strings.Contains(path, "password")
}

func (t *AuthTransport) onSignInRoute() bool {
	return t.route != nil && t.route() == session.RouteSignIn
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	out := req.Clone(ctx)
	out.Header.Set("X-Request-Id", uuid.NewString())
	if !isAuthPath(req.URL.Path) {
		if token, err := t.store.AccessToken(ctx); err == nil && token != "" {
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	if isAuthPath(req.URL.Path) || isPasswordPath(req.URL.Path) || t.onSignInRoute() {
		return resp, nil
	}

	if rerr := t.refresher.Refresh(ctx); rerr != nil {
		t.log.Warn(ctx, "token refresh failed, ending session", "error", rerr)
		if cerr := t.store.ClearTokens(ctx); cerr != nil {
			t.log.Error(ctx, "failed to clear tokens", "error", cerr)
		}
		if t.bus != nil {
			t.bus.Publish(session.EventAuthFatal)
		}
		return resp, nil
	}

	retry, ok := t.cloneForRetry(req)
	if !ok {
		return resp, nil
	}
	drain(resp)

	t.log.Debug(ctx, "retrying request after token refresh",
		"method", req.Method, "path", req.URL.Path)
	retry.Header.Set("X-Request-Id", uuid.NewString())
	// The clone still carries the cookies the jar applied before the
	// refresh; drop them so a stale access_token cookie cannot contradict
	// the fresh bearer token.
	retry.Header.Del("Cookie")
	if token, terr := t.store.AccessToken(ctx); terr == nil && token != "" {
		retry.Header.Set("Authorization", "Bearer "+token)
	}
	// A second 401 propagates to the caller unchanged.
	return t.base.RoundTrip(retry)
}

// cloneForRetry rebuilds the request with a fresh body. Requests whose body
// cannot be replayed are not retried.
func (t *AuthTransport) cloneForRetry(req *http.Request) (*http.Request, bool) {
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	clone.Body = body
	return clone, true
}

func drain(resp *http.Response) {
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		_ = resp.Body.Close()
	}
}
