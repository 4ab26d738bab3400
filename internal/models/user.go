package models

import "time"

// Role is the closed set of platform roles. Transition policies consume the
// role value directly instead of predicate methods on the user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCourier  Role = "courier"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleCourier || r == RoleOwner || r == RoleAdmin
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"index" json:"email"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"not null;default:'customer'" json:"role"`
	OIDCID       string `gorm:"index" json:"-"` // OpenID Connect subject, empty for password accounts
	CreatedAt    time.Time `json:"created_at"`
}
