// AngelaMos | 2026
// handler.go

package gate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nursebridge/api/internal/core"
	"github.com/nursebridge/api/internal/entitlement"
	"github.com/nursebridge/api/internal/middleware"
)

// Handler serves the resolved entitlement snapshot so the front end can
// paint every gate on a page from one consistent state.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/entitlements", h.GetEntitlements)
}

type TrialBanner struct {
	Variant       entitlement.TrialBannerVariant `json:"variant"`
	DaysRemaining int                            `json:"days_remaining"`
}

type EntitlementsResponse struct {
	Session          entitlement.Session             `json:"session"`
	IsPaid           bool                            `json:"is_paid"`
	IsProOrAbove     bool                            `json:"is_pro_or_above"`
	IsPremiumOrAbove bool                            `json:"is_premium_or_above"`
	AdminUnlocked    bool                            `json:"admin_unlocked"`
	UnlockedFlags    []string                        `json:"unlocked_flags"`
	Features         map[string]entitlement.Decision `json:"features"`
	TrialBanner      TrialBanner                     `json:"trial_banner"`
}

func (h *Handler) GetEntitlements(w http.ResponseWriter, r *http.Request) {
	snapshot := middleware.GetSnapshot(r.Context())

	features := make(map[string]entitlement.Decision)
	for _, feature := range entitlement.Features() {
		features[string(feature)] = entitlement.DecideFeature(snapshot, feature)
	}

	core.OK(w, EntitlementsResponse{
		Session:          snapshot.Session,
		IsPaid:           snapshot.IsPaid(),
		IsProOrAbove:     snapshot.IsProOrAbove(),
		IsPremiumOrAbove: snapshot.IsPremiumOrAbove(),
		AdminUnlocked:    snapshot.IsAdminUnlocked(),
		UnlockedFlags:    snapshot.Flags(),
		Features:         features,
		TrialBanner: TrialBanner{
			Variant:       snapshot.TrialBanner(),
			DaysRemaining: snapshot.Session.TrialDaysRemaining,
		},
	})
}
