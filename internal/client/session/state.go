package session

import "context"

// State derives the authentication status from the current token store
// contents. It holds no state of its own: every call re-reads the backend
// and re-decodes the token, so callers always observe the latest store
// mutation.
type State struct {
	store *TokenStore
}

func NewState(store *TokenStore) *State {
	return &State{store: store}
}

// IsAuthenticated reports whether a non-expired access token is present.
func (s *State) IsAuthenticated(ctx context.Context) bool {
	token, err := s.store.AccessToken(ctx)
	if err != nil || token == "" {
		return false
	}
	return !IsTokenExpired(token)
}

// CurrentUser returns the identity projection from the access token, or nil
// when no token is present or it cannot be decoded.
func (s *State) CurrentUser(ctx context.Context) *User {
	token, err := s.store.AccessToken(ctx)
	if err != nil || token == "" {
		return nil
	}
	return UserFromToken(token)
}
