// AngelaMos | 2026
// handler_test.go

package unlock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursebridge/api/internal/entitlement"
	"github.com/nursebridge/api/internal/middleware"
)

type recordingInvalidator struct {
	calls []entitlement.Principal
}

func (r *recordingInvalidator) Invalidate(p entitlement.Principal) {
	r.calls = append(r.calls, p)
}

func newTestHandler(t *testing.T) (*Handler, *recordingInvalidator) {
	t.Helper()
	svc, _ := newTestService(t)
	inv := &recordingInvalidator{}
	return NewHandler(svc, inv), inv
}

func serve(
	h *Handler,
	deviceID, method, target, body string,
) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	if deviceID != "" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := context.WithValue(req.Context(), middleware.DeviceIDKey, deviceID)
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestSubmitEndpoint(t *testing.T) {
	h, inv := newTestHandler(t)

	rec := serve(h, "device-abc1", http.MethodPost, "/unlock",
		`{"code":"`+testCode+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unlocked":true`)
	assert.Contains(t, rec.Body.String(), `"flag":"nofilter"`,
		"flag defaults to nofilter when omitted")

	require.Len(t, inv.calls, 1)
	assert.Equal(t, "device-abc1", inv.calls[0].DeviceID)
}

func TestSubmitEndpointWrongCode(t *testing.T) {
	h, inv := newTestHandler(t)

	rec := serve(h, "device-abc1", http.MethodPost, "/unlock",
		`{"code":"guess"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid code")
	assert.Empty(t, inv.calls, "failed attempts must not invalidate snapshots")
}

func TestSubmitEndpointRequiresDevice(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, "", http.MethodPost, "/unlock",
		`{"code":"`+testCode+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "device")
}

func TestSubmitEndpointMalformedBody(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h, "device-abc1", http.MethodPost, "/unlock", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, "device-abc1", http.MethodPost, "/unlock", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "code is required")
}

func TestLockEndpoint(t *testing.T) {
	h, inv := newTestHandler(t)

	rec := serve(h, "device-abc1", http.MethodPost, "/unlock",
		`{"code":"`+testCode+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, "device-abc1", http.MethodDelete, "/unlock/nofilter", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, inv.calls, 2, "re-lock invalidates the snapshot too")

	assert.False(t, h.service.IsUnlocked(
		context.Background(), "device-abc1", entitlement.FlagNoFilter))
}
