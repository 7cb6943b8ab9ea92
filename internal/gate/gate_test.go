// AngelaMos | 2026
// gate_test.go

package gate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursebridge/api/internal/entitlement"
)

func authedSnapshot(tier entitlement.Tier) entitlement.Snapshot {
	return entitlement.Snapshot{Session: entitlement.NewSession("user-1", tier, 0)}
}

func TestFullBlockAllow(t *testing.T) {
	region := FullBlock(
		authedSnapshot(entitlement.TierPro),
		entitlement.FeatureEmployerContacts,
		func() string { return "recruiter@hospital.example" },
		nil,
	)

	assert.Equal(t, entitlement.Allow, region.Decision)
	assert.Equal(t, "recruiter@hospital.example", region.Content)
	assert.Nil(t, region.CTA)
}

// On Deny the content producer must not even run: denied data is never
// materialized, let alone serialized.
func TestFullBlockDenyNeverProducesContent(t *testing.T) {
	produced := false
	region := FullBlock(
		authedSnapshot(entitlement.TierFree),
		entitlement.FeatureEmployerContacts,
		func() string { produced = true; return "secret contact" },
		nil,
	)

	assert.Equal(t, entitlement.Deny, region.Decision)
	assert.False(t, produced, "content producer ran on a denied gate")
	assert.Nil(t, region.Content)

	raw, err := json.Marshal(region)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret contact")
}

func TestFullBlockPreviewSendsTeaserOnly(t *testing.T) {
	produced := false
	region := FullBlock(
		authedSnapshot(entitlement.TierPro),
		entitlement.FeatureMarketCharts,
		func() []int { produced = true; return []int{98, 101, 105} },
		[]int{50, 50, 50},
	)

	assert.Equal(t, entitlement.Preview, region.Decision)
	assert.False(t, produced)
	assert.Equal(t, []int{50, 50, 50}, region.Teaser)
	require.NotNil(t, region.CTA)
	assert.Equal(t, CTAUpgrade, region.CTA.Kind)
}

func TestCTAKindBySessionState(t *testing.T) {
	anon := FullBlock(
		entitlement.AnonymousSnapshot(),
		entitlement.FeatureEmployerContacts,
		func() string { return "" },
		nil,
	)
	require.NotNil(t, anon.CTA)
	assert.Equal(t, CTASignup, anon.CTA.Kind, "anonymous viewers are asked to sign up")

	authed := FullBlock(
		authedSnapshot(entitlement.TierFree),
		entitlement.FeatureEmployerContacts,
		func() string { return "" },
		nil,
	)
	require.NotNil(t, authed.CTA)
	assert.Equal(t, CTAUpgrade, authed.CTA.Kind, "authenticated viewers are asked to upgrade")
}

func TestInlineBlurAllow(t *testing.T) {
	v := InlineBlur(
		authedSnapshot(entitlement.TierStarter),
		entitlement.FeatureSalaryInsights,
		func() string { return "87" },
	)

	assert.Equal(t, "87", v.Value)
	assert.False(t, v.Masked)
}

// The blur placeholder is fixed: nothing about it, not even the width,
// derives from the real value.
func TestInlineBlurPlaceholderIndependentOfValue(t *testing.T) {
	short := InlineBlur(authedSnapshot(entitlement.TierFree),
		entitlement.FeatureSalaryInsights, func() string { return "7" })
	long := InlineBlur(authedSnapshot(entitlement.TierFree),
		entitlement.FeatureSalaryInsights, func() string { return "a much longer value" })

	assert.True(t, short.Masked)
	assert.Equal(t, short.Value, long.Value)
	assert.NotContains(t, short.Value, "7")
}

func TestTruncateListAllow(t *testing.T) {
	items := []string{"icu", "er", "l&d", "peds", "onc"}
	out := TruncateList(
		authedSnapshot(entitlement.TierStarter),
		entitlement.FeatureJobListFull,
		items, 3, len(items),
	)

	assert.Equal(t, entitlement.Allow, out.Decision)
	assert.Len(t, out.Items, 5)
	assert.Equal(t, 5, out.Total)
	assert.Zero(t, out.Hidden)
	assert.Nil(t, out.CTA)
}

func TestTruncateListPreview(t *testing.T) {
	items := []string{"icu", "er", "l&d", "peds", "onc"}
	out := TruncateList(
		authedSnapshot(entitlement.TierFree),
		entitlement.FeatureJobListFull,
		items, 3, len(items),
	)

	assert.Equal(t, entitlement.Preview, out.Decision)
	assert.Equal(t, []string{"icu", "er", "l&d"}, out.Items)
	assert.Equal(t, 5, out.Total)
	assert.Equal(t, 2, out.Hidden)
	require.NotNil(t, out.CTA)

	// The hidden tail must be absent from the wire form.
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "peds")
	assert.NotContains(t, string(raw), "onc")
}

func TestTruncateListBounds(t *testing.T) {
	items := []string{"a", "b"}

	all := TruncateList(entitlement.AnonymousSnapshot(),
		entitlement.FeatureJobListFull, items, 10, 2)
	assert.Len(t, all.Items, 2, "visible beyond length clamps to length")
	assert.Zero(t, all.Hidden)

	none := TruncateList(entitlement.AnonymousSnapshot(),
		entitlement.FeatureJobListFull, items, -1, 2)
	assert.Empty(t, none.Items, "negative visible clamps to zero")
	assert.Equal(t, 2, none.Hidden)

	empty := TruncateList(entitlement.AnonymousSnapshot(),
		entitlement.FeatureJobListFull, []string{}, 3, 0)
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.Hidden)

	undercounted := TruncateList(entitlement.AnonymousSnapshot(),
		entitlement.FeatureJobListFull, items, 1, 0)
	assert.Equal(t, 2, undercounted.Total, "total below item count clamps up")
	assert.Equal(t, 1, undercounted.Hidden)
}

// The hidden count runs against the whole collection, not the page the
// caller happens to hold: 3 visible of a 50-job board reads "+47 more".
func TestTruncateListCountsWholeCollection(t *testing.T) {
	page := []string{"icu", "er", "l&d", "peds", "onc"}

	out := TruncateList(
		authedSnapshot(entitlement.TierFree),
		entitlement.FeatureJobListFull,
		page, 3, 50,
	)
	assert.Equal(t, entitlement.Preview, out.Decision)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 50, out.Total)
	assert.Equal(t, 47, out.Hidden)

	granted := TruncateList(
		authedSnapshot(entitlement.TierStarter),
		entitlement.FeatureJobListFull,
		page, 3, 50,
	)
	assert.Len(t, granted.Items, 5, "allow sends the full page")
	assert.Equal(t, 50, granted.Total)
	assert.Zero(t, granted.Hidden, "pagination, not the gate, hides the rest")
}

// Marshaling the whole page envelope with a denied region and an allowed
// one keeps them independent: real data appears exactly where granted.
func TestMixedRegionsSerialization(t *testing.T) {
	snapshot := authedSnapshot(entitlement.TierStarter)

	page := map[string]any{
		"salary": InlineBlur(snapshot, entitlement.FeatureSalaryInsights,
			func() string { return "92" }),
		"contacts": FullBlock(snapshot, entitlement.FeatureEmployerContacts,
			func() string { return "hidden-contact" }, nil),
	}

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	body := string(raw)

	assert.True(t, strings.Contains(body, "92"))
	assert.False(t, strings.Contains(body, "hidden-contact"))
}
