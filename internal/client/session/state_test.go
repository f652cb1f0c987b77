package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_FreshToken(t *testing.T) {
	ts := setupStorageStore(t)
	state := NewState(ts)
	ctx := context.Background()

	now := time.Unix(1800000000, 0)
	freezeTime(t, now)

	token := mintToken(t, "user@example.com", "u-1", "user", true, now.Unix()+3600, 0)
	require.NoError(t, ts.SetTokens(ctx, token, "ref"))

	assert.True(t, state.IsAuthenticated(ctx))

	user := state.CurrentUser(ctx)
	require.NotNil(t, user)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, "u-1", user.UserID)
}

func TestState_ExpiredToken(t *testing.T) {
	ts := setupStorageStore(t)
	state := NewState(ts)
	ctx := context.Background()

	now := time.Unix(1800000000, 0)
	freezeTime(t, now)

	// well-formed but past expiry: not authenticated, user still decodable
	token := mintToken(t, "user@example.com", "u-1", "user", true, now.Unix()-60, 0)
	require.NoError(t, ts.SetTokens(ctx, token, "ref"))

	assert.False(t, state.IsAuthenticated(ctx))
	assert.NotNil(t, state.CurrentUser(ctx))
}

func TestState_NoToken(t *testing.T) {
	ts := setupStorageStore(t)
	state := NewState(ts)
	ctx := context.Background()

	assert.False(t, state.IsAuthenticated(ctx))
	assert.Nil(t, state.CurrentUser(ctx))
}

func TestState_ReReadsStore(t *testing.T) {
	ts := setupStorageStore(t)
	state := NewState(ts)
	ctx := context.Background()

	freezeTime(t, time.Unix(1800000000, 0))
	token := mintToken(t, "a@b.c", "u-1", "user", true, 1800003600, 0)

	require.NoError(t, ts.SetTokens(ctx, token, "ref"))
	assert.True(t, state.IsAuthenticated(ctx))

	require.NoError(t, ts.ClearTokens(ctx))
	assert.False(t, state.IsAuthenticated(ctx), "state has no cache of its own")
}
