package entity

import (
	"database/sql"

	"golang.org/x/exp/slices"
)

type GlobalRole string

var (
	RoleSuperAdmin = GlobalRole("super_admin")
	RoleAdmin      = GlobalRole("admin")
	RoleUser       = GlobalRole("user")

	GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}
)

type User struct {
	Base

	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         GlobalRole `gorm:"default:user"`
	IsActive     bool       `gorm:"default:true"`

	// TotalPoints only ever increases; the share ledger is its sole writer.
	TotalPoints int64 `gorm:"index"`
	SharesCount int64

	// DefaultRank is assigned exactly once at registration, according to
	// the signup order among non-admin users. CurrentRank is recomputed by
	// the ranking engine whenever points change and equals DefaultRank
	// while the user has no points. Both stay null for admins.
	DefaultRank sql.NullInt64 `gorm:"index"`
	CurrentRank sql.NullInt64 `gorm:"index"`
}

func (u *User) IsAdmin() bool {
	return slices.Contains(GlobalAdminRoles, u.Role)
}
