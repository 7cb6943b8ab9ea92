// AngelaMos | 2026
// tier.go

package entitlement

import (
	"strings"
)

// Tier is a named subscription level with a strict total order.
type Tier string

const (
	TierFree    Tier = "free"
	TierStarter Tier = "starter"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// tierRanks is the single source of truth for tier ordering.
// All comparisons go through Rank; never compare tier strings directly.
var tierRanks = map[Tier]int{
	TierFree:    0,
	TierStarter: 1,
	TierPro:     2,
	TierPremium: 3,
}

// Rank returns the numeric rank of a tier. Unknown tiers rank as free:
// upstream data may arrive with unexpected casing or garbage, and a
// malformed tier must never rank above free.
func (t Tier) Rank() int {
	if rank, ok := tierRanks[t]; ok {
		return rank
	}
	return tierRanks[TierFree]
}

// Meets reports whether t satisfies the required tier.
func (t Tier) Meets(required Tier) bool {
	return t.Rank() >= required.Rank()
}

// IsPaid reports whether t is any paid tier.
func (t Tier) IsPaid() bool {
	return t.Rank() > tierRanks[TierFree]
}

func (t Tier) String() string {
	return string(t)
}

// ParseTier normalizes an untrusted tier string. Casing and surrounding
// whitespace are forgiven; anything unrecognized resolves to free.
func ParseTier(s string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierFree:
		return TierFree
	case TierStarter:
		return TierStarter
	case TierPro:
		return TierPro
	case TierPremium:
		return TierPremium
	default:
		return TierFree
	}
}

// AllTiers lists tiers in ascending rank order.
func AllTiers() []Tier {
	return []Tier{TierFree, TierStarter, TierPro, TierPremium}
}
