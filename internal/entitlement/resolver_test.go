// AngelaMos | 2026
// resolver_test.go

package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubProfiles struct {
	profile Profile
	err     error
	calls   int
}

func (s *stubProfiles) FetchProfile(_ context.Context, _ string) (Profile, error) {
	s.calls++
	return s.profile, s.err
}

type stubFlags struct {
	flags map[string][]string
}

func (s *stubFlags) UnlockedFlags(_ context.Context, deviceID string) []string {
	return s.flags[deviceID]
}

func TestResolveAuthenticated(t *testing.T) {
	end := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	profiles := &stubProfiles{profile: Profile{Tier: "pro", TrialEndsAt: &end}}
	r := NewResolver(profiles, &stubFlags{}, StaticOverride(false), nil)

	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	snapshot := r.Resolve(context.Background(), Principal{UserID: "u1", DeviceID: "d1"}, now)

	assert.True(t, snapshot.Session.IsAuthenticated)
	assert.Equal(t, TierPro, snapshot.Session.Tier)
	assert.False(t, snapshot.Session.IsTrialActive, "paid tier never in trial")
	assert.False(t, snapshot.AdminOverride)
}

func TestResolveFreeTrialActive(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	end := now.Add(5 * 24 * time.Hour)
	profiles := &stubProfiles{profile: Profile{Tier: "free", TrialEndsAt: &end}}
	r := NewResolver(profiles, nil, nil, nil)

	snapshot := r.Resolve(context.Background(), Principal{UserID: "u1"}, now)

	assert.True(t, snapshot.Session.IsTrialActive)
	assert.Equal(t, 5, snapshot.Session.TrialDaysRemaining)
	assert.Equal(t, TrialBannerActive, snapshot.TrialBanner())
}

func TestResolveAnonymousPrincipal(t *testing.T) {
	profiles := &stubProfiles{profile: Profile{Tier: "premium"}}
	r := NewResolver(profiles, nil, StaticOverride(false), nil)

	snapshot := r.Resolve(context.Background(), Principal{DeviceID: "d1"}, time.Now())

	assert.False(t, snapshot.Session.IsAuthenticated)
	assert.Equal(t, TierFree, snapshot.Session.Tier)
	assert.Zero(t, profiles.calls, "no profile fetch without a user")
}

// A failed profile fetch gates as anonymous rather than erroring: the
// viewer sees the free experience, never a broken page and never paid
// content.
func TestResolveProfileErrorFailsClosed(t *testing.T) {
	profiles := &stubProfiles{err: errors.New("connection refused")}
	r := NewResolver(profiles, nil, StaticOverride(false), nil)

	snapshot := r.Resolve(context.Background(), Principal{UserID: "u1"}, time.Now())

	assert.False(t, snapshot.Session.IsAuthenticated)
	assert.Equal(t, TierFree, snapshot.Session.Tier)
	assert.Equal(t, Deny, DecideFeature(snapshot, FeatureEmployerContacts))
}

func TestResolveMalformedTierGatesAsFree(t *testing.T) {
	profiles := &stubProfiles{profile: Profile{Tier: "PLATINUM"}}
	r := NewResolver(profiles, nil, nil, nil)

	snapshot := r.Resolve(context.Background(), Principal{UserID: "u1"}, time.Now())
	assert.Equal(t, TierFree, snapshot.Session.Tier)
}

// Unlock flags survive a profile failure: they are device state, not
// account state.
func TestResolveFlagsIndependentOfProfile(t *testing.T) {
	profiles := &stubProfiles{err: errors.New("timeout")}
	flags := &stubFlags{flags: map[string][]string{"d1": {FlagNoFilter}}}
	r := NewResolver(profiles, flags, StaticOverride(false), nil)

	snapshot := r.Resolve(context.Background(), Principal{UserID: "u1", DeviceID: "d1"}, time.Now())

	assert.True(t, snapshot.HasFlag(FlagNoFilter))
	assert.Equal(t, Allow, DecideFeature(snapshot, FeatureNoFilter))
}

func TestResolveOverride(t *testing.T) {
	r := NewResolver(nil, nil, StaticOverride(true), nil)
	snapshot := r.Resolve(context.Background(), Principal{}, time.Now())

	assert.True(t, snapshot.AdminOverride)
	assert.Equal(t, Allow, DecideFeature(snapshot, FeatureMarketCharts))
}

func TestTrialDaysRemaining(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  *time.Time
		want int
	}{
		{"nil end", nil, 0},
		{"already over", timePtr(now.Add(-time.Hour)), 0},
		{"exactly now", timePtr(now), 0},
		{"three hours left rounds up", timePtr(now.Add(3 * time.Hour)), 1},
		{"exactly one day", timePtr(now.Add(24 * time.Hour)), 1},
		{"one day and change rounds up", timePtr(now.Add(25 * time.Hour)), 2},
		{"two weeks", timePtr(now.Add(14 * 24 * time.Hour)), 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrialDaysRemaining(now, tt.end))
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestResolveNilSourcesSafe(t *testing.T) {
	r := NewResolver(nil, nil, nil, nil)
	snapshot := r.Resolve(context.Background(), Principal{UserID: "u1", DeviceID: "d1"}, time.Now())

	assert.Equal(t, TierFree, snapshot.Session.Tier)
	assert.False(t, snapshot.AdminOverride)
}
