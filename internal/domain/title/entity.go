package title

import "time"

// TitleHistory records one stretch of an employee holding a job title.
// A nil EndDate marks the ongoing entry; an employee has at most one.
type TitleHistory struct {
	ID                string
	EmployeeSubjectID string
	JobTitle          string
	StartDate         time.Time
	EndDate           *time.Time
	CreatedAt         time.Time
}
