// AngelaMos | 2026
// decision.go

package entitlement

// Decision is the outcome of gating one surface for one viewer.
type Decision string

const (
	// Allow renders the real content verbatim.
	Allow Decision = "allow"
	// Preview renders placeholder/sample content plus an upgrade affordance.
	Preview Decision = "preview"
	// Deny renders nothing of the guarded content.
	Deny Decision = "deny"
)

// Granted reports whether the decision discloses real content.
func (d Decision) Granted() bool {
	return d == Allow
}

// Decide maps a snapshot and a requirement to Allow, Preview, or Deny.
// Pure: no I/O, no clock reads, and denied outcomes are ordinary values,
// never errors.
//
// The check order is a correctness requirement, not a style choice:
// admin override must dominate every other signal, including
// secret-flag gates, so support and QA can see every surface.
func Decide(snapshot Snapshot, req Requirement) Decision {
	if snapshot.AdminOverride {
		return Allow
	}

	if req.HasSecretCheck() && snapshot.HasFlag(req.SecretFlag) {
		return Allow
	}

	if req.HasTierCheck() && snapshot.Session.Tier.Meets(req.MinTier) {
		return Allow
	}

	if req.AllowPreview {
		return Preview
	}
	return Deny
}
