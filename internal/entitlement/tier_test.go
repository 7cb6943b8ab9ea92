// AngelaMos | 2026
// tier_test.go

package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierOrdering(t *testing.T) {
	tiers := AllTiers()
	require.Len(t, tiers, 4)

	for i := 1; i < len(tiers); i++ {
		assert.Greater(t, tiers[i].Rank(), tiers[i-1].Rank(),
			"%s must outrank %s", tiers[i], tiers[i-1])
	}
}

func TestTierMeets(t *testing.T) {
	tests := []struct {
		name     string
		tier     Tier
		required Tier
		want     bool
	}{
		{"tier meets itself", TierPro, TierPro, true},
		{"higher meets lower", TierPremium, TierStarter, true},
		{"lower fails higher", TierFree, TierStarter, false},
		{"starter fails pro", TierStarter, TierPro, false},
		{"everyone meets free", TierFree, TierFree, true},
		{"unknown tier ranks as free", Tier("gold"), TierStarter, false},
		{"unknown requirement ranks as free", TierFree, Tier("gold"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tier.Meets(tt.required))
		})
	}
}

// Meets must be transitive: if c meets b and b meets a, c meets a.
func TestTierMeetsTransitive(t *testing.T) {
	tiers := AllTiers()
	for _, a := range tiers {
		for _, b := range tiers {
			for _, c := range tiers {
				if c.Meets(b) && b.Meets(a) {
					assert.True(t, c.Meets(a),
						"%s meets %s and %s meets %s but %s does not meet %s",
						c, b, b, a, c, a)
				}
			}
		}
	}
}

func TestTierIsPaid(t *testing.T) {
	assert.False(t, TierFree.IsPaid())
	assert.True(t, TierStarter.IsPaid())
	assert.True(t, TierPro.IsPaid())
	assert.True(t, TierPremium.IsPaid())
	assert.False(t, Tier("enterprise").IsPaid(), "unknown tiers never count as paid")
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"free", TierFree},
		{"starter", TierStarter},
		{"pro", TierPro},
		{"premium", TierPremium},
		{"PRO", TierPro},
		{"  Premium ", TierPremium},
		{"", TierFree},
		{"gold", TierFree},
		{"pro ", TierPro},
		{"null", TierFree},
	}

	for _, tt := range tests {
		t.Run("parse "+tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTier(tt.in))
		})
	}
}
