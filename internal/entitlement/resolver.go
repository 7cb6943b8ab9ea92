// AngelaMos | 2026
// resolver.go

package entitlement

import (
	"context"
	"log/slog"
	"time"
)

// Profile is the remote-fetched subscription record for a viewer.
// Treated as untrusted input: the tier string is normalized through
// ParseTier before it influences any decision.
type Profile struct {
	Tier        string
	TrialEndsAt *time.Time
}

// ProfileSource fetches the subscription profile for an authenticated user.
type ProfileSource interface {
	FetchProfile(ctx context.Context, userID string) (Profile, error)
}

// FlagSource reads the device-scoped secret-unlock flags. Implementations
// must degrade to "nothing unlocked" on storage failure, never error.
type FlagSource interface {
	UnlockedFlags(ctx context.Context, deviceID string) []string
}

// OverrideProvider exposes the process-wide admin override. Sourced from
// build/runtime configuration only; there is deliberately no way to flip
// it through a viewer action.
type OverrideProvider interface {
	AdminOverride() bool
}

// StaticOverride is an OverrideProvider pinned at construction.
type StaticOverride bool

func (o StaticOverride) AdminOverride() bool { return bool(o) }

// Principal identifies one viewer: the authenticated user (may be empty)
// and the device the requests come from.
type Principal struct {
	UserID   string
	DeviceID string
}

// Resolver combines identity, tier, trial, admin-override, and
// secret-unlock signals into one Snapshot. It never mutates any of its
// sources.
type Resolver struct {
	profiles ProfileSource
	flags    FlagSource
	override OverrideProvider
	logger   *slog.Logger
}

func NewResolver(
	profiles ProfileSource,
	flags FlagSource,
	override OverrideProvider,
	logger *slog.Logger,
) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		profiles: profiles,
		flags:    flags,
		override: override,
		logger:   logger,
	}
}

// Resolve computes the snapshot for a principal at a point in time.
// A failed or missing profile fetch yields the anonymous/free session
// rather than an error: ambiguous state must read as "not yet entitled",
// never as allowed and never as a gating failure.
func (r *Resolver) Resolve(ctx context.Context, p Principal, now time.Time) Snapshot {
	snapshot := AnonymousSnapshot()

	if r.override != nil && r.override.AdminOverride() {
		snapshot.AdminOverride = true
	}

	if r.flags != nil && p.DeviceID != "" {
		flags := r.flags.UnlockedFlags(ctx, p.DeviceID)
		if len(flags) > 0 {
			snapshot.UnlockedFlags = make(map[string]struct{}, len(flags))
			for _, flag := range flags {
				snapshot.UnlockedFlags[flag] = struct{}{}
			}
		}
	}

	if p.UserID == "" || r.profiles == nil {
		return snapshot
	}

	profile, err := r.profiles.FetchProfile(ctx, p.UserID)
	if err != nil {
		r.logger.Warn("profile fetch failed, gating as anonymous",
			"user_id", p.UserID,
			"error", err,
		)
		return snapshot
	}

	snapshot.Session = NewSession(
		p.UserID,
		ParseTier(profile.Tier),
		TrialDaysRemaining(now, profile.TrialEndsAt),
	)

	return snapshot
}

// TrialDaysRemaining converts a trial end timestamp into whole days left,
// rounding partial days up so the last hours still count as "1 day left".
// The value is precomputed here so decisions stay clock-free.
func TrialDaysRemaining(now time.Time, trialEndsAt *time.Time) int {
	if trialEndsAt == nil || !now.Before(*trialEndsAt) {
		return 0
	}

	remaining := trialEndsAt.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}
