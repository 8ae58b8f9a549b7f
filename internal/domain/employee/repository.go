package employee

import "context"

type EmployeeRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (Profile, error)
	Create(ctx context.Context, newProfile Profile) error
	// EnsureExists creates a default profile when none exists yet.
	EnsureExists(ctx context.Context, subjectID string) error
	// Update applies the non-nil fields of req. Date strings are validated
	// by the caller.
	Update(ctx context.Context, subjectID string, req UpdateProfileRequest) error
	Search(ctx context.Context, filter DirectoryFilter) ([]DirectoryEntry, error)
	ListActive(ctx context.Context) ([]Profile, error)
	ListByOnboardingStatus(ctx context.Context, statuses []OnboardingStatus) ([]Profile, error)
}
