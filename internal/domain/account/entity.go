package account

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN" // Full access, bypasses permission checks
	RoleAdmin      Role = "ADMIN"       // Manages accounts, reports, metrics
	RoleManager    Role = "MANAGER"     // Owns a team and its tasks
	RoleEmployee   Role = "EMPLOYEE"    // Tracks own attendance, breaks, tasks
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// IsStaff reports whether the role signs in with a code and access code.
func (r Role) IsStaff() bool {
	return r == RoleManager || r == RoleEmployee
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

type Account struct {
	ID             string
	Role           Role
	Code           string
	Email          *string
	Firstname      string
	Lastname       string
	Telephone      *string
	Address        *string
	CredentialHash string
	PasswordSet    bool
	Status         Status
	Department     *string
	ManagerID      *string
	CreatedBy      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (a *Account) IsActive() bool {
	return a.Status == StatusActive
}

func (a *Account) FullName() string {
	if a.Lastname == "" {
		return a.Firstname
	}
	return a.Firstname + " " + a.Lastname
}

// SameDepartment is false when either side has no department.
func SameDepartment(a, b *string) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
