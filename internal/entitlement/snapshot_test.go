// AngelaMos | 2026
// snapshot_test.go

package entitlement

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionTrialInvariant(t *testing.T) {
	tests := []struct {
		name       string
		tier       Tier
		days       int
		wantActive bool
		wantDays   int
	}{
		{"free with days = active", TierFree, 5, true, 5},
		{"free last day = active", TierFree, 1, true, 1},
		{"free expired", TierFree, 0, false, 0},
		{"negative days clamp to zero", TierFree, -3, false, 0},
		{"paid tier never in trial", TierPro, 5, false, 0},
		{"premium never in trial", TierPremium, 14, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession("u1", tt.tier, tt.days)
			assert.Equal(t, tt.wantActive, s.IsTrialActive)
			assert.Equal(t, tt.wantDays, s.TrialDaysRemaining)
			assert.True(t, s.IsAuthenticated)
		})
	}
}

func TestNewSessionAuthentication(t *testing.T) {
	assert.True(t, NewSession("u1", TierFree, 0).IsAuthenticated)
	assert.False(t, NewSession("", TierFree, 0).IsAuthenticated)
}

func TestAnonymousSnapshot(t *testing.T) {
	s := AnonymousSnapshot()

	assert.False(t, s.Session.IsAuthenticated)
	assert.Equal(t, TierFree, s.Session.Tier)
	assert.False(t, s.Session.IsTrialActive)
	assert.False(t, s.AdminOverride)
	assert.False(t, s.IsPaid())
	assert.Empty(t, s.Flags())
}

func TestSnapshotHasFlag(t *testing.T) {
	s := AnonymousSnapshot()
	assert.False(t, s.HasFlag(FlagNoFilter))
	assert.False(t, s.HasFlag(""))

	s.UnlockedFlags = map[string]struct{}{FlagNoFilter: {}}
	assert.True(t, s.HasFlag(FlagNoFilter))
	assert.False(t, s.HasFlag("other"))
	assert.False(t, s.HasFlag(""), "empty flag name never matches")
}

func TestSnapshotTierHelpers(t *testing.T) {
	pro := Snapshot{Session: NewSession("u1", TierPro, 0)}
	assert.True(t, pro.IsPaid())
	assert.True(t, pro.IsProOrAbove())
	assert.False(t, pro.IsPremiumOrAbove())

	premium := Snapshot{Session: NewSession("u1", TierPremium, 0)}
	assert.True(t, premium.IsProOrAbove())
	assert.True(t, premium.IsPremiumOrAbove())
}

func TestTrialBanner(t *testing.T) {
	tests := []struct {
		name string
		tier Tier
		days int
		want TrialBannerVariant
	}{
		{"no trial", TierFree, 0, TrialBannerNone},
		{"paid tier", TierPro, 5, TrialBannerNone},
		{"plenty of days", TierFree, 10, TrialBannerActive},
		{"two days left", TierFree, 2, TrialBannerActive},
		{"one day left is urgent", TierFree, 1, TrialBannerUrgent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snapshot{Session: NewSession("u1", tt.tier, tt.days)}
			assert.Equal(t, tt.want, s.TrialBanner())
		})
	}
}

// UnlockedFlags is internal state; the raw map must not leak through
// snapshot serialization.
func TestSnapshotSerializationOmitsRawFlags(t *testing.T) {
	s := Snapshot{
		Session:       NewSession("u1", TierPro, 0),
		UnlockedFlags: map[string]struct{}{FlagNoFilter: {}},
	}

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "UnlockedFlags")
	assert.NotContains(t, decoded, "unlocked_flags")
}
