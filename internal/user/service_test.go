// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nursebridge/api/internal/core"
	"github.com/nursebridge/api/internal/entitlement"
)

type memoryRepo struct {
	users map[string]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*User)}
}

func (m *memoryRepo) Create(_ context.Context, user *User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryRepo) Update(_ context.Context, user *User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memoryRepo) UpdatePassword(_ context.Context, id, hash string) error {
	if user, ok := m.users[id]; ok {
		user.PasswordHash = hash
	}
	return nil
}

func (m *memoryRepo) IncrementTokenVersion(_ context.Context, id string) error {
	if user, ok := m.users[id]; ok {
		user.TokenVersion++
	}
	return nil
}

func (m *memoryRepo) SoftDelete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *memoryRepo) List(_ context.Context, _ ListUsersParams) ([]User, int, error) {
	var out []User
	for _, user := range m.users {
		out = append(out, *user)
	}
	return out, len(out), nil
}

func (m *memoryRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func TestCreateStartsTrialClock(t *testing.T) {
	svc := NewService(newMemoryRepo(), 14)

	info, err := svc.Create(context.Background(), "Nurse@Example.com", "hash", "Nurse")
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), info.ID)
	require.NoError(t, err)

	assert.Equal(t, "nurse@example.com", user.Email)
	assert.Equal(t, TierFree, user.Tier)
	require.NotNil(t, user.TrialEndsAt)

	expected := time.Now().AddDate(0, 0, 14)
	assert.WithinDuration(t, expected, *user.TrialEndsAt, time.Minute)
}

func TestCreateWithoutTrial(t *testing.T) {
	svc := NewService(newMemoryRepo(), 0)

	info, err := svc.Create(context.Background(), "a@example.com", "hash", "A")
	require.NoError(t, err)

	user, err := svc.GetUser(context.Background(), info.ID)
	require.NoError(t, err)
	assert.Nil(t, user.TrialEndsAt)
}

func TestUpdateUserTier(t *testing.T) {
	svc := NewService(newMemoryRepo(), 0)
	info, err := svc.Create(context.Background(), "a@example.com", "hash", "A")
	require.NoError(t, err)

	for _, tier := range []string{TierStarter, TierPro, TierPremium, TierFree} {
		updated, err := svc.UpdateUserTier(context.Background(), info.ID, tier)
		require.NoError(t, err)
		assert.Equal(t, tier, updated.Tier)
	}

	_, err = svc.UpdateUserTier(context.Background(), info.ID, "gold")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestFetchProfile(t *testing.T) {
	svc := NewService(newMemoryRepo(), 7)
	info, err := svc.Create(context.Background(), "a@example.com", "hash", "A")
	require.NoError(t, err)

	profile, err := svc.FetchProfile(context.Background(), info.ID)
	require.NoError(t, err)
	assert.Equal(t, TierFree, profile.Tier)
	require.NotNil(t, profile.TrialEndsAt)

	_, err = svc.FetchProfile(context.Background(), "missing")
	assert.Error(t, err)
}

func TestEffectiveTierNormalizes(t *testing.T) {
	u := &User{Tier: " PRO "}
	assert.Equal(t, entitlement.TierPro, u.EffectiveTier())

	u.Tier = "corrupted"
	assert.Equal(t, entitlement.TierFree, u.EffectiveTier())
}
