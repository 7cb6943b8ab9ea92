// AngelaMos | 2026
// features.go

package entitlement

// Feature names a gated product surface.
type Feature string

const (
	// FeatureJobListFull shows the complete job list instead of the
	// truncated free teaser.
	FeatureJobListFull Feature = "job_list_full"

	// FeatureSalaryInsights shows the per-job salary score badge.
	FeatureSalaryInsights Feature = "salary_insights"

	// FeatureEmployerContacts shows employer contact details on a posting.
	FeatureEmployerContacts Feature = "employer_contacts"

	// FeatureMarketCharts shows the market trend chart data.
	FeatureMarketCharts Feature = "market_charts"

	// FeatureAdvancedSearch unlocks the advanced search filters. Satisfied
	// by pro tier or by the nofilter secret unlock, whichever comes first.
	FeatureAdvancedSearch Feature = "advanced_search"

	// FeatureNoFilter is the unfiltered job feed, gated purely behind the
	// device-scoped secret unlock.
	FeatureNoFilter Feature = "nofilter"
)

// FlagNoFilter is the secret-unlock flag name shared by nofilter-gated
// surfaces. Also the fixed persistence key suffix in the unlock store.
const FlagNoFilter = "nofilter"

var featureRequirements = map[Feature]Requirement{
	FeatureJobListFull:      {MinTier: TierStarter, AllowPreview: true},
	FeatureSalaryInsights:   {MinTier: TierStarter, AllowPreview: true},
	FeatureEmployerContacts: {MinTier: TierPro},
	FeatureMarketCharts:     {MinTier: TierPremium, AllowPreview: true},
	FeatureAdvancedSearch:   {MinTier: TierPro, SecretFlag: FlagNoFilter},
	FeatureNoFilter:         {SecretFlag: FlagNoFilter},
}

// RequirementFor returns the requirement for a feature. Unknown features
// fail closed: premium tier, no preview.
func RequirementFor(feature Feature) Requirement {
	if req, ok := featureRequirements[feature]; ok {
		return req
	}
	return Requirement{MinTier: TierPremium}
}

// Features lists every registered gated feature.
func Features() []Feature {
	return []Feature{
		FeatureJobListFull,
		FeatureSalaryInsights,
		FeatureEmployerContacts,
		FeatureMarketCharts,
		FeatureAdvancedSearch,
		FeatureNoFilter,
	}
}

// SecretFlags lists the distinct secret-unlock flag names the registry
// references.
func SecretFlags() []string {
	seen := make(map[string]struct{})
	var flags []string
	for _, feature := range Features() {
		req := featureRequirements[feature]
		if req.SecretFlag == "" {
			continue
		}
		if _, ok := seen[req.SecretFlag]; ok {
			continue
		}
		seen[req.SecretFlag] = struct{}{}
		flags = append(flags, req.SecretFlag)
	}
	return flags
}

// DecideFeature is Decide with the registry lookup folded in.
func DecideFeature(snapshot Snapshot, feature Feature) Decision {
	return Decide(snapshot, RequirementFor(feature))
}
