// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/nursebridge/api/internal/entitlement"
)

type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	Role         string     `db:"role"`
	Tier         string     `db:"tier"`
	TrialEndsAt  *time.Time `db:"trial_ends_at"`
	TokenVersion int        `db:"token_version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EffectiveTier normalizes the stored tier string; anything malformed
// reads as free.
func (u *User) EffectiveTier() entitlement.Tier {
	return entitlement.ParseTier(u.Tier)
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	TierFree    = string(entitlement.TierFree)
	TierStarter = string(entitlement.TierStarter)
	TierPro     = string(entitlement.TierPro)
	TierPremium = string(entitlement.TierPremium)
)
