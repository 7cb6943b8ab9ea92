// AngelaMos | 2026
// gate.go

package gate

import (
	"github.com/nursebridge/api/internal/entitlement"
)

// CTAKind distinguishes the two deny affordances: anonymous viewers are
// asked to sign up, authenticated ones to upgrade.
type CTAKind string

const (
	CTASignup  CTAKind = "signup"
	CTAUpgrade CTAKind = "upgrade"
)

type CallToAction struct {
	Kind    CTAKind `json:"kind"`
	Feature string  `json:"feature"`
	Message string  `json:"message"`
}

func ctaFor(snapshot entitlement.Snapshot, feature entitlement.Feature) *CallToAction {
	if !snapshot.Session.IsAuthenticated {
		return &CallToAction{
			Kind:    CTASignup,
			Feature: string(feature),
			Message: "Sign up to see this",
		}
	}
	return &CallToAction{
		Kind:    CTAUpgrade,
		Feature: string(feature),
		Message: "Upgrade your plan to see this",
	}
}

// Region is the full-block render of one guarded surface. Content is
// present only on Allow; on Preview only the supplied static teaser and
// the call-to-action go out. Real data never rides along as a hidden or
// obscured copy on Deny/Preview: what isn't in this struct was never
// serialized.
type Region struct {
	Decision entitlement.Decision `json:"decision"`
	Content  any                  `json:"content,omitempty"`
	Teaser   any                  `json:"teaser,omitempty"`
	CTA      *CallToAction        `json:"cta,omitempty"`
}

// FullBlock renders a guarded region. The content producer runs only on
// Allow, so denied data is not even materialized. The teaser must be
// static sample data that is already allowed to leave the server.
func FullBlock[T any](
	snapshot entitlement.Snapshot,
	feature entitlement.Feature,
	content func() T,
	teaser any,
) Region {
	decision := entitlement.DecideFeature(snapshot, feature)

	switch decision {
	case entitlement.Allow:
		return Region{Decision: decision, Content: content()}
	case entitlement.Preview:
		return Region{
			Decision: decision,
			Teaser:   teaser,
			CTA:      ctaFor(snapshot, feature),
		}
	default:
		return Region{Decision: decision, CTA: ctaFor(snapshot, feature)}
	}
}

// BlurredValue is the inline render of one small guarded value, e.g. a
// score badge. The placeholder is a fixed glyph run of constant width:
// deriving it from the real value (even its length) would leak.
type BlurredValue struct {
	Decision entitlement.Decision `json:"decision"`
	Value    string               `json:"value,omitempty"`
	Masked   bool                 `json:"masked"`
}

const blurPlaceholder = "•••"

// InlineBlur renders a single guarded value, producing it only on Allow.
func InlineBlur(
	snapshot entitlement.Snapshot,
	feature entitlement.Feature,
	value func() string,
) BlurredValue {
	decision := entitlement.DecideFeature(snapshot, feature)

	if decision.Granted() {
		return BlurredValue{Decision: decision, Value: value()}
	}

	return BlurredValue{
		Decision: decision,
		Value:    blurPlaceholder,
		Masked:   true,
	}
}

// TruncatedList is the list-preview render: the first k real items plus
// a "+N more" affordance. The hidden tail is cut before serialization.
type TruncatedList[T any] struct {
	Decision entitlement.Decision `json:"decision"`
	Items    []T                  `json:"items"`
	Total    int                  `json:"total"`
	Hidden   int                  `json:"hidden"`
	CTA      *CallToAction        `json:"cta,omitempty"`
}

// TruncateList renders a guarded list. On Allow every item goes out; on
// Preview/Deny only the first visible items do. Leading items of a job
// list are public teaser content, which is what makes this gate a
// truncation rather than a full block.
//
// total is the full collection size, which may exceed len(items) when
// the caller holds one page of a larger result set. The "+N more"
// affordance counts against the whole collection, not the page.
func TruncateList[T any](
	snapshot entitlement.Snapshot,
	feature entitlement.Feature,
	items []T,
	visible, total int,
) TruncatedList[T] {
	if total < len(items) {
		total = len(items)
	}

	decision := entitlement.DecideFeature(snapshot, feature)

	if decision.Granted() {
		return TruncatedList[T]{
			Decision: decision,
			Items:    items,
			Total:    total,
		}
	}

	if visible < 0 {
		visible = 0
	}
	if visible > len(items) {
		visible = len(items)
	}

	return TruncatedList[T]{
		Decision: decision,
		Items:    items[:visible:visible],
		Total:    total,
		Hidden:   total - visible,
		CTA:      ctaFor(snapshot, feature),
	}
}
