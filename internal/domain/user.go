package domain

import "time"

// Role determines what a user may act on. Brand users belong to exactly
// one brand; admins may act on any brand's tickets.
type Role string

const (
	RoleUser  Role = "user"
	RoleBrand Role = "brand"
	RoleAdmin Role = "admin"
)

// User is the domain model for every account: complainants, brand staff
// and administrators. BrandID is set only for brand staff.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	City         *string
	PasswordHash string
	Role         Role
	BrandID      *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
