package employee

import (
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
)

type OnboardingStatus string

const (
	OnboardingPending    OnboardingStatus = "Pending"
	OnboardingScheduled  OnboardingStatus = "Scheduled"
	OnboardingInProgress OnboardingStatus = "InProgress"
	OnboardingCompleted  OnboardingStatus = "Completed"
	OnboardingCancelled  OnboardingStatus = "Cancelled"
)

func IsValidOnboardingStatus(s OnboardingStatus) bool {
	switch s {
	case OnboardingPending, OnboardingScheduled, OnboardingInProgress, OnboardingCompleted, OnboardingCancelled:
		return true
	}
	return false
}

// PendingOnboardingStatuses are the non-terminal states shown on the HR
// onboarding queue.
var PendingOnboardingStatuses = []OnboardingStatus{
	OnboardingPending,
	OnboardingScheduled,
	OnboardingInProgress,
}

// DefaultJobTitle is assigned to JIT-provisioned profiles until HR sets one.
const DefaultJobTitle = "Pending Assignment"

// Profile is the one-to-one employment record of a user. It shares the
// user's subject id as primary key and does not survive user removal.
type Profile struct {
	SubjectID           string
	DepartmentID        *string
	JobTitle            string
	HireDate            *time.Time
	PhoneNumber         string
	Address             string
	OnboardingStatus    OnboardingStatus
	OnboardingStartDate *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields
	User           user.User
	DepartmentName *string
}
