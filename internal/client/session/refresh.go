package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/equiply/equiply-cli/internal/logging"
)

const refreshPath = "/api/v1/auth/refresh"

// RefreshTokenHeader carries the refresh token on mobile clients, where the
// cookie jar is not in play.
const RefreshTokenHeader = "refresh-token"

// DefaultRefreshTimeout bounds a single refresh exchange. A refresh that
// outlives it fails closed: tokens are cleared and the error propagates to
// every waiting caller.
const DefaultRefreshTimeout = 15 * time.Second

type refreshResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshCoordinator performs the refresh-token exchange and updates the
// token store. All concurrent callers of Refresh share a single in-flight
// exchange: a caller arriving while one is in progress awaits its outcome
// instead of issuing another exchange with the same (possibly single-use)
// refresh token.
type RefreshCoordinator struct {
	store      *TokenStore
	http       *http.Client
	base       *url.URL
	clientType ClientType
	timeout    time.Duration
	log        logging.Logger

	group singleflight.Group
}

// NewRefreshCoordinator builds a coordinator. httpClient must NOT route
// through the authenticated transport (the refresh endpoint is part of the
// auth surface) but must share the cookie jar on desktop clients.
func NewRefreshCoordinator(store *TokenStore, httpClient *http.Client, base *url.URL, clientType ClientType, timeout time.Duration, log logging.Logger) *RefreshCoordinator {
	if timeout <= 0 {
		timeout = DefaultRefreshTimeout
	}
	return &RefreshCoordinator{
		store:      store,
		http:       httpClient,
		base:       base,
		clientType: clientType,
		timeout:    timeout,
		log:        log.With("component", "refresh"),
	}
}

// Refresh exchanges the refresh token for a fresh access token. It returns
// ErrNoRefreshToken, without touching stored tokens, when no refresh token
// is available. Any other failure clears both tokens before returning.
func (c *RefreshCoordinator) Refresh(ctx context.Context) error {
	_, err, shared := c.group.Do("refresh", func() (any, error) {
		return nil, c.exchange()
	})
	if shared {
		c.log.Debug(ctx, "joined in-flight refresh")
	}
	return err
}

func (c *RefreshCoordinator) exchange() error {
	// The exchange runs on its own deadline: a flight is shared by every
	// concurrent caller and must not end with any single caller's context.
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("reading refresh token: %w", err)
	}
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	endpoint := *c.base
	// preserve any path prefix on the configured base URL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + refreshPath
	endpoint.RawQuery = "use_cookies=" + strconv.FormatBool(c.clientType.UseCookies())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), nil)
	if err != nil {
		return c.fail(ctx, err)
	}
	if c.clientType == ClientMobile {
		req.Header.Set(RefreshTokenHeader, refreshToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.fail(ctx, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.fail(ctx, fmt.Errorf("decoding response: %w", err))
	}
	if !body.Success {
		return c.fail(ctx, fmt.Errorf("server reported failure: %s", body.Message))
	}

	switch c.clientType {
	case ClientMobile:
		// The response body must carry the new access token; the refresh
		// token may or may not have been rotated.
		if body.AccessToken == "" {
			return c.fail(ctx, fmt.Errorf("no access token in response"))
		}
		rotated := body.RefreshToken
		if rotated == "" {
			rotated = refreshToken
		}
		if err := c.store.SetTokens(ctx, body.AccessToken, rotated); err != nil {
			return c.fail(ctx, fmt.Errorf("storing tokens: %w", err))
		}
	default:
		// The server updates the cookie jar via Set-Cookie. Verify the new
		// access token is actually retrievable; a missing cookie means the
		// client and server have silently desynced.
		access, err := c.store.AccessToken(ctx)
		if err != nil {
			return c.fail(ctx, fmt.Errorf("reading access token: %w", err))
		}
		if access == "" {
			return c.fail(ctx, fmt.Errorf("no access token cookie after exchange"))
		}
	}

	c.log.Debug(ctx, "access token refreshed", "client_type", c.clientType)
	return nil
}

// fail clears both tokens and wraps the cause in ErrRefreshFailed.
func (c *RefreshCoordinator) fail(ctx context.Context, cause error) error {
	if err := c.store.ClearTokens(ctx); err != nil {
		c.log.Error(ctx, "clearing tokens after failed refresh", "error", err)
	}
	c.log.Warn(ctx, "refresh exchange failed", "error", cause)
	return fmt.Errorf("%w: %w", ErrRefreshFailed, cause)
}
