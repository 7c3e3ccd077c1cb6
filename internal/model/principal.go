package model

import "github.com/google/uuid"

type Role string

const (
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Principal identifies the authenticated user behind a request. It is passed
// explicitly in service inputs rather than read from ambient state.
type Principal struct {
	UserID   uuid.UUID
	FullName string
	Role     Role
}

func (p Principal) IsManager() bool {
	return p.Role == RoleManager
}
