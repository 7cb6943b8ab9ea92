// AngelaMos | 2026
// snapshot.go

package entitlement

// Session is the viewer's identity portion of a snapshot.
type Session struct {
	UserID             string `json:"user_id,omitempty"`
	IsAuthenticated    bool   `json:"is_authenticated"`
	Tier               Tier   `json:"tier"`
	IsTrialActive      bool   `json:"is_trial_active"`
	TrialDaysRemaining int    `json:"trial_days_remaining"`
}

// AnonymousSession is the conservative default: unauthenticated, free,
// no trial. Used whenever the profile is absent, loading, or failed.
func AnonymousSession() Session {
	return Session{Tier: TierFree}
}

// NewSession builds a session and enforces the trial invariant: a trial
// is active only while days remain AND the tier is still free. A paying
// user is never "in trial".
func NewSession(userID string, tier Tier, trialDaysRemaining int) Session {
	if trialDaysRemaining < 0 {
		trialDaysRemaining = 0
	}

	trialActive := trialDaysRemaining > 0 && tier == TierFree
	if !trialActive {
		trialDaysRemaining = 0
	}

	return Session{
		UserID:             userID,
		IsAuthenticated:    userID != "",
		Tier:               tier,
		IsTrialActive:      trialActive,
		TrialDaysRemaining: trialDaysRemaining,
	}
}

// Snapshot is the single merged view of every access signal for one
// viewer, computed once and threaded to every gate decision so a page
// never sees two gates disagree about the same viewer.
type Snapshot struct {
	Session       Session             `json:"session"`
	AdminOverride bool                `json:"admin_override"`
	UnlockedFlags map[string]struct{} `json:"-"`
}

// AnonymousSnapshot is the fail-closed snapshot: no identity, free tier,
// nothing unlocked, no override.
func AnonymousSnapshot() Snapshot {
	return Snapshot{Session: AnonymousSession()}
}

// HasFlag reports whether a named secret flag is unlocked in this snapshot.
func (s Snapshot) HasFlag(flag string) bool {
	if flag == "" {
		return false
	}
	_, ok := s.UnlockedFlags[flag]
	return ok
}

// Flags returns the unlocked flag names, for serialization.
func (s Snapshot) Flags() []string {
	if len(s.UnlockedFlags) == 0 {
		return []string{}
	}
	flags := make([]string, 0, len(s.UnlockedFlags))
	for flag := range s.UnlockedFlags {
		flags = append(flags, flag)
	}
	return flags
}

// IsPaid reports whether the viewer is on any paid tier.
func (s Snapshot) IsPaid() bool {
	return s.Session.Tier.IsPaid()
}

// IsProOrAbove reports whether the viewer's tier meets pro.
func (s Snapshot) IsProOrAbove() bool {
	return s.Session.Tier.Meets(TierPro)
}

// IsPremiumOrAbove reports whether the viewer's tier meets premium.
func (s Snapshot) IsPremiumOrAbove() bool {
	return s.Session.Tier.Meets(TierPremium)
}

// IsAdminUnlocked reports whether the process-wide override is on.
func (s Snapshot) IsAdminUnlocked() bool {
	return s.AdminOverride
}

// TrialBannerVariant selects the trial banner for this viewer:
// "none" when no trial is running, "urgent" on the last day, "active"
// otherwise.
type TrialBannerVariant string

const (
	TrialBannerNone   TrialBannerVariant = "none"
	TrialBannerActive TrialBannerVariant = "active"
	TrialBannerUrgent TrialBannerVariant = "urgent"
)

const trialUrgentDays = 1

func (s Snapshot) TrialBanner() TrialBannerVariant {
	if !s.Session.IsTrialActive {
		return TrialBannerNone
	}
	if s.Session.TrialDaysRemaining <= trialUrgentDays {
		return TrialBannerUrgent
	}
	return TrialBannerActive
}
