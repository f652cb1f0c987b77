package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/equiply/equiply-cli/internal/client/store"
)

// Storage keys shared with the original web client.
const (
	keyLoginAttempts = "login_attempts"
	keyBlockUntil    = "block_until"
)

const (
	maxLoginAttempts = 5
	loginBlockPeriod = 5 * time.Minute
)

// timeNow is a test seam.
var timeNow = time.Now

// loginThrottle blocks login attempts after too many consecutive failures.
// Counters persist in the key-value store so restarting the client does not
// reset the block.
type loginThrottle struct {
	kv *store.Store
}

func newLoginThrottle(kv *store.Store) *loginThrottle {
	return &loginThrottle{kv: kv}
}

// Allowed reports whether a login attempt may proceed, and if not, how long
// the caller has to wait. An expired block is cleaned up on the way.
func (t *loginThrottle) Allowed(ctx context.Context) (bool, time.Duration, error) {
	raw, err := t.kv.Get(ctx, keyBlockUntil)
	if err != nil {
		return false, 0, err
	}
	if raw == nil {
		return true, 0, nil
	}

	until, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		// Unreadable state must not lock the user out forever.
		return true, 0, t.Reset(ctx)
	}

	now := timeNow().Unix()
	if now >= until {
		return true, 0, t.Reset(ctx)
	}
	return false, time.Duration(until-now) * time.Second, nil
}

// RecordFailure bumps the failure counter and installs the block once the
// limit is reached.
func (t *loginThrottle) RecordFailure(ctx context.Context) error {
	attempts := 0
	if raw, err := t.kv.Get(ctx, keyLoginAttempts); err != nil {
		return err
	} else if raw != nil {
		attempts, _ = strconv.Atoi(string(raw))
	}
	attempts++

	if attempts < maxLoginAttempts {
		return t.kv.Set(ctx, keyLoginAttempts, []byte(strconv.Itoa(attempts)))
	}

	until := timeNow().Add(loginBlockPeriod).Unix()
	return t.kv.SetMany(ctx, map[string][]byte{
		keyLoginAttempts: []byte(strconv.Itoa(attempts)),
		keyBlockUntil:    []byte(strconv.FormatInt(until, 10)),
	})
}

// Reset clears the counter and any block, typically after a successful
// login.
func (t *loginThrottle) Reset(ctx context.Context) error {
	return t.kv.DeleteMany(ctx, keyLoginAttempts, keyBlockUntil)
}
