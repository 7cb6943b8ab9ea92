// AngelaMos | 2026
// service.go

package unlock

import (
	"context"
	"errors"
	"fmt"

	"github.com/nursebridge/api/internal/core"
)

// ErrInvalidCode is the only failure an unlock attempt surfaces. It
// reveals neither the expected code nor how many attempts were made.
var ErrInvalidCode = errors.New("invalid code")

// Service validates secret codes and manages the persisted flags.
// Codes are configured as sha256 digests per flag, so the expected
// plaintext never lives in process memory or config files.
type Service struct {
	store Store
	codes map[string]string
}

// NewService takes flag → sha256-hex mappings from configuration.
func NewService(store Store, codes map[string]string) *Service {
	return &Service{store: store, codes: codes}
}

// Submit compares the candidate against the configured code for the
// flag. A mismatch changes no state anywhere; a match persists the
// device-scoped flag. Comparison is constant-time over digests.
func (s *Service) Submit(
	ctx context.Context,
	deviceID, flag, candidate string,
) error {
	expected, ok := s.codes[flag]
	if !ok {
		return ErrInvalidCode
	}

	if !core.CompareTokenHash(candidate, expected) {
		return ErrInvalidCode
	}

	if err := s.store.Set(ctx, deviceID, flag); err != nil {
		return fmt.Errorf("unlock %s: %w", flag, err)
	}

	return nil
}

// IsUnlocked reads the persisted flag. False when never set or when
// storage is unavailable; never an error.
func (s *Service) IsUnlocked(ctx context.Context, deviceID, flag string) bool {
	return s.store.Has(ctx, deviceID, flag)
}

// Lock removes the persisted flag; subsequent IsUnlocked calls return
// false immediately.
func (s *Service) Lock(ctx context.Context, deviceID, flag string) error {
	if err := s.store.Remove(ctx, deviceID, flag); err != nil {
		return fmt.Errorf("lock %s: %w", flag, err)
	}
	return nil
}

// UnlockedFlags satisfies entitlement.FlagSource.
func (s *Service) UnlockedFlags(ctx context.Context, deviceID string) []string {
	return s.store.UnlockedFlags(ctx, deviceID)
}
