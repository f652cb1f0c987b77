package session

import "context"

// Storage keys shared with the original web client; part of the observable
// contract.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Backend abstracts where the credential pair lives. Implementations are
// synchronous and perform no network I/O. An absent token is reported as an
// empty string with a nil error.
type Backend interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)

	// SetTokens stores a full credential pair. Backends whose tokens are
	// managed by the server (cookies) may treat this as a best-effort
	// mirror.
	SetTokens(ctx context.Context, access, refresh string) error

	// ClearTokens removes both tokens. Clearing an empty backend is a
	// no-op.
	ClearTokens(ctx context.Context) error
}

// TokenStore owns the durable credential pair through a backend selected
// once at startup from the client-type classification.
type TokenStore struct {
	backend Backend
}

func NewTokenStore(backend Backend) *TokenStore {
	return &TokenStore{backend: backend}
}

func (s *TokenStore) AccessToken(ctx context.Context) (string, error) {
	return s.backend.AccessToken(ctx)
}

func (s *TokenStore) RefreshToken(ctx context.Context) (string, error) {
	return s.backend.RefreshToken(ctx)
}

func (s *TokenStore) SetTokens(ctx context.Context, access, refresh string) error {
	return s.backend.SetTokens(ctx, access, refresh)
}

func (s *TokenStore) ClearTokens(ctx context.Context) error {
	return s.backend.ClearTokens(ctx)
}
