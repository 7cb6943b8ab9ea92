// AngelaMos | 2026
// requirement.go

package entitlement

// Requirement describes what a gated surface needs from a viewer.
// Either MinTier or SecretFlag (or both, OR'd) may be set.
type Requirement struct {
	// MinTier is the lowest tier allowed through, when non-empty.
	MinTier Tier

	// SecretFlag names a device-scoped unlock flag that grants access
	// independent of tier, when non-empty.
	SecretFlag string

	// AllowPreview marks surfaces that blur-and-tease instead of hiding
	// entirely when access is not granted.
	AllowPreview bool
}

// HasTierCheck reports whether the requirement includes a tier check.
func (r Requirement) HasTierCheck() bool {
	return r.MinTier != ""
}

// HasSecretCheck reports whether the requirement includes a secret-flag check.
func (r Requirement) HasSecretCheck() bool {
	return r.SecretFlag != ""
}
