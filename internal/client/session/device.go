package session

import "github.com/mileusna/useragent"

// ClientType selects the storage backend for credential material.
// Mobile clients keep tokens in the persistent key-value store, desktop
// clients rely on the server-managed cookie jar.
type ClientType string

const (
	ClientDesktop ClientType = "desktop"
	ClientMobile  ClientType = "mobile"
)

// UseCookies reports whether the server should manage tokens via cookies
// for this client type (the use_cookies / clear_cookies query flags).
func (c ClientType) UseCookies() bool {
	return c == ClientDesktop
}

// ClassifyUserAgent derives the client type from a user-agent string.
// The classification is computed once at startup and is expected to be
// stable for the lifetime of the process.
func ClassifyUserAgent(ua string) ClientType {
	parsed := useragent.Parse(ua)
	if parsed.Mobile || parsed.Tablet {
		return ClientMobile
	}
	return ClientDesktop
}
