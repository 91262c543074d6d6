package userservice

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole string

const (
	// RoleGuest is a guest role (ie. view)
	RoleGuest UserRole = "guest"
	// RoleMember is a member (i.e. view, edit)
	RoleMember UserRole = "member"
	// RoleAdmin is an admin role (i.e. view, edit, create)
	RoleAdmin UserRole = "admin"
)

// User is the user model. The password hash never leaves the service;
// outward facing responses go through UserDTO.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"role,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// UserDTO is the outward facing user shape
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      UserRole   `json:"role,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// NewUserDTO maps a stored record to its response shape
func NewUserDTO(user *User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// Principal is the authenticated identity bound to a request while it is
// being handled. It is derived from a validated token or a credential check
// and is never persisted.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   UserRole
}

// NewPrincipal builds the request identity for a user record
func NewPrincipal(user *User) *Principal {
	return &Principal{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}
}
