package department

import "time"

// Department groups employees. Manager is an optional reference to a user;
// deleting the manager leaves the department unmanaged, not deleted.
type Department struct {
	ID               string
	Name             string
	ManagerSubjectID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	ManagerEmail *string
}
