// AngelaMos | 2026
// device.go

package middleware

import (
	"context"
	"net/http"
)

const DeviceIDKey contextKey = "device_id"

const (
	deviceIDHeader = "X-Device-ID"
	maxDeviceIDLen = 64
	minDeviceIDLen = 8
)

// DeviceID extracts the client-generated device identifier that scopes
// secret-unlock flags. The ID lives in the browser's durable per-origin
// storage, so it identifies a device/browser profile, not an account.
// Requests without a usable ID simply carry no device scope.
func DeviceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deviceID := r.Header.Get(deviceIDHeader)
		if !validDeviceID(deviceID) {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), DeviceIDKey, deviceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetDeviceID(ctx context.Context) string {
	if id, ok := ctx.Value(DeviceIDKey).(string); ok {
		return id
	}
	return ""
}

func validDeviceID(id string) bool {
	if len(id) < minDeviceIDLen || len(id) > maxDeviceIDLen {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
