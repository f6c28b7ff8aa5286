package domain

import "time"

// Roles a user account can carry. The role is stored at registration and
// reserved for future authorization checks; nothing enforces it yet.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is the domain entity for a user account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
