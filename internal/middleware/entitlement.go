// AngelaMos | 2026
// entitlement.go

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/nursebridge/api/internal/core"
	"github.com/nursebridge/api/internal/entitlement"
)

const SnapshotKey contextKey = "entitlement_snapshot"

// SnapshotSource produces the entitlement snapshot for a principal.
// Satisfied by *entitlement.Cache.
type SnapshotSource interface {
	Get(
		ctx context.Context,
		p entitlement.Principal,
		now time.Time,
	) entitlement.Snapshot
}

// EntitlementSnapshot resolves the viewer's snapshot once per request and
// threads it through the context, so every gate on the page decides
// against the same state. Works for anonymous viewers too.
func EntitlementSnapshot(source SnapshotSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := entitlement.Principal{
				UserID:   GetUserID(r.Context()),
				DeviceID: GetDeviceID(r.Context()),
			}

			snapshot := source.Get(r.Context(), p, time.Now())

			ctx := context.WithValue(r.Context(), SnapshotKey, snapshot)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSnapshot returns the snapshot resolved for this request. The
// fail-closed anonymous snapshot is returned when resolution never ran.
func GetSnapshot(ctx context.Context) entitlement.Snapshot {
	if snapshot, ok := ctx.Value(SnapshotKey).(entitlement.Snapshot); ok {
		return snapshot
	}
	return entitlement.AnonymousSnapshot()
}

// RequireFeature rejects requests whose snapshot does not grant a
// feature outright. Preview does not pass: endpoints behind this
// middleware return real data only. The rendering layer mirrors the same
// decision; this is the server-side backstop for clients that bypass it.
func RequireFeature(feature entitlement.Feature) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snapshot := GetSnapshot(r.Context())

			if !entitlement.DecideFeature(snapshot, feature).Granted() {
				core.JSONError(
					w,
					core.UpgradeRequiredError(string(feature)),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTier rejects requests whose resolved tier ranks below required.
func RequireTier(required entitlement.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snapshot := GetSnapshot(r.Context())

			if snapshot.AdminOverride ||
				snapshot.Session.Tier.Meets(required) {
				next.ServeHTTP(w, r)
				return
			}

			core.JSONError(
				w,
				core.UpgradeRequiredError(string(required)+" tier"),
			)
		})
	}
}
