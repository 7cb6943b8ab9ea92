// AngelaMos | 2026
// store.go

package unlock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nursebridge/api/internal/entitlement"
)

// Store persists device-scoped unlock flags. One fixed key per flag per
// device, value "true" or absent. Reads must degrade to locked when the
// backing store is unreachable; they never surface errors to gating.
type Store interface {
	Set(ctx context.Context, deviceID, flag string) error
	Has(ctx context.Context, deviceID, flag string) bool
	Remove(ctx context.Context, deviceID, flag string) error
	UnlockedFlags(ctx context.Context, deviceID string) []string
}

type redisStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisStore{client: client, logger: logger}
}

func unlockKey(deviceID, flag string) string {
	return fmt.Sprintf("unlock:device:%s:%s", deviceID, flag)
}

// Set persists the flag with no expiry. Unlocks are sticky until an
// explicit re-lock.
func (s *redisStore) Set(ctx context.Context, deviceID, flag string) error {
	err := s.client.Set(ctx, unlockKey(deviceID, flag), "true", 0).Err()
	if err != nil {
		return fmt.Errorf("persist unlock flag: %w", err)
	}
	return nil
}

func (s *redisStore) Has(ctx context.Context, deviceID, flag string) bool {
	val, err := s.client.Get(ctx, unlockKey(deviceID, flag)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("unlock store read failed, treating as locked",
				"flag", flag,
				"error", err,
			)
		}
		return false
	}
	return val == "true"
}

func (s *redisStore) Remove(ctx context.Context, deviceID, flag string) error {
	if err := s.client.Del(ctx, unlockKey(deviceID, flag)).Err(); err != nil {
		return fmt.Errorf("remove unlock flag: %w", err)
	}
	return nil
}

// UnlockedFlags checks each registered secret flag for the device. The
// flag namespace is small and fixed, so point reads beat a SCAN.
func (s *redisStore) UnlockedFlags(
	ctx context.Context,
	deviceID string,
) []string {
	var unlocked []string
	for _, flag := range entitlement.SecretFlags() {
		if s.Has(ctx, deviceID, flag) {
			unlocked = append(unlocked, flag)
		}
	}
	return unlocked
}
