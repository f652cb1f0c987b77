package session

import (
	"context"

	"github.com/equiply/equiply-cli/internal/client/store"
)

// StorageBackend keeps the credential pair in the client's persistent
// key-value store. Used for mobile-classified clients, where the server
// returns tokens in response bodies instead of cookies.
type StorageBackend struct {
	kv *store.Store
}

func NewStorageBackend(kv *store.Store) *StorageBackend {
	return &StorageBackend{kv: kv}
}

func (b *StorageBackend) AccessToken(ctx context.Context) (string, error) {
	value, err := b.kv.Get(ctx, KeyAccessToken)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

func (b *StorageBackend) RefreshToken(ctx context.Context) (string, error) {
	value, err := b.kv.Get(ctx, KeyRefreshToken)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// SetTokens writes both tokens in one transaction, so concurrent readers
// never observe a half-written pair.
func (b *StorageBackend) SetTokens(ctx context.Context, access, refresh string) error {
	return b.kv.SetMany(ctx, map[string][]byte{
		KeyAccessToken:  []byte(access),
		KeyRefreshToken: []byte(refresh),
	})
}

func (b *StorageBackend) ClearTokens(ctx context.Context) error {
	return b.kv.DeleteMany(ctx, KeyAccessToken, KeyRefreshToken)
}
