// AngelaMos | 2026
// entitlement_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursebridge/api/internal/entitlement"
)

type stubSnapshots struct {
	snapshot  entitlement.Snapshot
	principal entitlement.Principal
}

func (s *stubSnapshots) Get(
	_ context.Context,
	p entitlement.Principal,
	_ time.Time,
) entitlement.Snapshot {
	s.principal = p
	return s.snapshot
}

func okHandler(seen *entitlement.Snapshot) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = GetSnapshot(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestEntitlementSnapshotInjection(t *testing.T) {
	source := &stubSnapshots{
		snapshot: entitlement.Snapshot{
			Session: entitlement.NewSession("user-1", entitlement.TierPro, 0),
		},
	}

	var seen entitlement.Snapshot
	handler := EntitlementSnapshot(source)(okHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, "user-1"))
	req = req.WithContext(context.WithValue(req.Context(), DeviceIDKey, "device-abc1"))

	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, entitlement.TierPro, seen.Session.Tier)
	assert.Equal(t, "user-1", source.principal.UserID)
	assert.Equal(t, "device-abc1", source.principal.DeviceID)
}

// Without the middleware, GetSnapshot hands out the fail-closed
// anonymous snapshot instead of a zero value or a panic.
func TestGetSnapshotFallback(t *testing.T) {
	snapshot := GetSnapshot(context.Background())

	assert.False(t, snapshot.Session.IsAuthenticated)
	assert.Equal(t, entitlement.TierFree, snapshot.Session.Tier)
	assert.Equal(t, entitlement.Deny,
		entitlement.DecideFeature(snapshot, entitlement.FeatureEmployerContacts))
}

func TestRequireFeature(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequireFeature(entitlement.FeatureEmployerContacts)(next)

	serve := func(snapshot entitlement.Snapshot) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(
			context.WithValue(req.Context(), SnapshotKey, snapshot),
		)
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		return rec
	}

	pro := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierPro, 0)}
	assert.Equal(t, http.StatusOK, serve(pro).Code)

	free := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierFree, 0)}
	rec := serve(free)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "UPGRADE_REQUIRED")
}

// Preview grants a teaser render, not the data itself: a previewable
// feature behind RequireFeature still returns 403 below the tier bar.
func TestRequireFeaturePreviewDoesNotPass(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequireFeature(entitlement.FeatureMarketCharts)(next)

	snapshot := entitlement.Snapshot{
		Session: entitlement.NewSession("u", entitlement.TierPro, 0),
	}
	require.Equal(t, entitlement.Preview,
		entitlement.DecideFeature(snapshot, entitlement.FeatureMarketCharts))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), SnapshotKey, snapshot))
	rec := httptest.NewRecorder()
	guard.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireTier(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequireTier(entitlement.TierPro)(next)

	serve := func(snapshot entitlement.Snapshot) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(
			context.WithValue(req.Context(), SnapshotKey, snapshot),
		)
		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, req)
		return rec.Code
	}

	pro := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierPro, 0)}
	assert.Equal(t, http.StatusOK, serve(pro))

	starter := entitlement.Snapshot{Session: entitlement.NewSession("u", entitlement.TierStarter, 0)}
	assert.Equal(t, http.StatusForbidden, serve(starter))

	override := entitlement.AnonymousSnapshot()
	override.AdminOverride = true
	assert.Equal(t, http.StatusOK, serve(override), "override passes tier guards")
}

func TestDeviceIDMiddleware(t *testing.T) {
	var got string
	handler := DeviceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetDeviceID(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid id", "device-abc123", "device-abc123"},
		{"underscores ok", "a_b_c_d_e_1", "a_b_c_d_e_1"},
		{"missing header", "", ""},
		{"too short", "short", ""},
		{"too long", strings.Repeat("x", 80), ""},
		{"bad characters", "device abc 123!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-Device-ID", tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}
