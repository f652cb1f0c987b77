package session

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CookieBackend reads the credential pair from the HTTP client's cookie jar.
// On desktop clients the server sets access_token and refresh_token cookies
// on successful auth/refresh responses; the client only ever reads them, and
// clears them locally by overwriting with an already-expired cookie.
type CookieBackend struct {
	jar  http.CookieJar
	base *url.URL
}

func NewCookieBackend(jar http.CookieJar, base *url.URL) *CookieBackend {
	return &CookieBackend{jar: jar, base: base}
}

func (b *CookieBackend) cookieValue(name string) (string, error) {
	for _, c := range b.jar.Cookies(b.base) {
		if c.Name != name {
			continue
		}
		value, err := url.QueryUnescape(c.Value)
		if err != nil {
			return c.Value, nil
		}
		return value, nil
	}
	return "", nil
}

func (b *CookieBackend) AccessToken(ctx context.Context) (string, error) {
	return b.cookieValue(KeyAccessToken)
}

func (b *CookieBackend) RefreshToken(ctx context.Context) (string, error) {
	return b.cookieValue(KeyRefreshToken)
}

// SetTokens mirrors tokens into the jar. The authoritative write path for
// this backend is the server's Set-Cookie headers; this is a best-effort
// fallback for responses that return tokens in the body.
func (b *CookieBackend) SetTokens(ctx context.Context, access, refresh string) error {
	b.jar.SetCookies(b.base, []*http.Cookie{
		{Name: KeyAccessToken, Value: url.QueryEscape(access), Path: "/"},
		{Name: KeyRefreshToken, Value: url.QueryEscape(refresh), Path: "/"},
	})
	return nil
}

func (b *CookieBackend) ClearTokens(ctx context.Context) error {
	expired := time.Unix(0, 0)
	b.jar.SetCookies(b.base, []*http.Cookie{
		{Name: KeyAccessToken, Value: "", Path: "/", Expires: expired, MaxAge: -1},
		{Name: KeyRefreshToken, Value: "", Path: "/", Expires: expired, MaxAge: -1},
	})
	return nil
}
