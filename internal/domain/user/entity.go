package user

import "time"

type Role string

const (
	RoleEmployee  Role = "employee"   // Regular employee
	RoleHRManager Role = "hr_manager" // Can manage profiles, salaries, payroll
	RoleAdmin     Role = "admin"      // Full access
)

func IsValidRole(r Role) bool {
	return r == RoleEmployee || r == RoleHRManager || r == RoleAdmin
}

// User mirrors an identity-provider account. SubjectID is the provider's
// stable subject identifier and the primary key; rows are created by JIT
// provisioning or the sync webhook and deactivated rather than deleted.
type User struct {
	SubjectID string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsHR checks if user can manage HR data
func (u *User) IsHR() bool {
	return u.Role == RoleHRManager || u.Role == RoleAdmin
}

// IsAdmin checks if user has full access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
