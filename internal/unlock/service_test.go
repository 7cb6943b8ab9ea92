// AngelaMos | 2026
// service_test.go

package unlock

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursebridge/api/internal/core"
	"github.com/nursebridge/api/internal/entitlement"
)

const testCode = "open-sesame"

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client, nil)
	svc := NewService(store, map[string]string{
		entitlement.FlagNoFilter: core.HashToken(testCode),
	})
	return svc, mr
}

func TestSubmitCorrectCode(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestService(t)

	require.NoError(t, svc.Submit(ctx, "device-1", entitlement.FlagNoFilter, testCode))
	assert.True(t, svc.IsUnlocked(ctx, "device-1", entitlement.FlagNoFilter))

	// Device-scoped: the same flag stays locked for other devices.
	assert.False(t, svc.IsUnlocked(ctx, "device-2", entitlement.FlagNoFilter))

	val, err := mr.Get("unlock:device:device-1:nofilter")
	require.NoError(t, err)
	assert.Equal(t, "true", val)
}

func TestSubmitWrongCodeChangesNothing(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestService(t)

	err := svc.Submit(ctx, "device-1", entitlement.FlagNoFilter, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.False(t, svc.IsUnlocked(ctx, "device-1", entitlement.FlagNoFilter))
	assert.Empty(t, mr.Keys(), "a failed attempt must write nothing")
}

func TestSubmitUnknownFlag(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	err := svc.Submit(ctx, "device-1", "no-such-flag", testCode)
	assert.ErrorIs(t, err, ErrInvalidCode,
		"unknown flags look identical to wrong codes")
}

// Unlocks are sticky: a fresh service over the same store still sees
// the flag, mirroring a process restart.
func TestUnlockSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestService(t)

	require.NoError(t, svc.Submit(ctx, "device-1", entitlement.FlagNoFilter, testCode))

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	fresh := NewService(NewRedisStore(client, nil), nil)

	assert.True(t, fresh.IsUnlocked(ctx, "device-1", entitlement.FlagNoFilter))

	ttl := mr.TTL("unlock:device:device-1:nofilter")
	assert.Zero(t, ttl, "unlock flags never expire on their own")
}

func TestLock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	require.NoError(t, svc.Submit(ctx, "device-1", entitlement.FlagNoFilter, testCode))
	require.NoError(t, svc.Lock(ctx, "device-1", entitlement.FlagNoFilter))
	assert.False(t, svc.IsUnlocked(ctx, "device-1", entitlement.FlagNoFilter))

	// Locking an already-locked flag is a no-op, not an error.
	assert.NoError(t, svc.Lock(ctx, "device-1", entitlement.FlagNoFilter))
}

func TestUnlockedFlags(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	assert.Empty(t, svc.UnlockedFlags(ctx, "device-1"))

	require.NoError(t, svc.Submit(ctx, "device-1", entitlement.FlagNoFilter, testCode))
	assert.Equal(t, []string{entitlement.FlagNoFilter}, svc.UnlockedFlags(ctx, "device-1"))
}

// Storage going away mid-session reads as locked, never as an error.
func TestStoreUnavailableReadsLocked(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestService(t)

	require.NoError(t, svc.Submit(ctx, "device-1", entitlement.FlagNoFilter, testCode))
	mr.Close()

	assert.False(t, svc.IsUnlocked(ctx, "device-1", entitlement.FlagNoFilter))
	assert.Empty(t, svc.UnlockedFlags(ctx, "device-1"))
}

// Corrupt values in the store read as locked.
func TestCorruptValueReadsLocked(t *testing.T) {
	ctx := context.Background()
	svc, mr := newTestService(t)

	require.NoError(t, mr.Set("unlock:device:device-1:nofilter", "yes please"))
	assert.False(t, svc.IsUnlocked(ctx, "device-1", entitlement.FlagNoFilter))
}
