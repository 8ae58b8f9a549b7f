package employee

import "context"

// EmployeeService defines business logic for profile and directory operations
type EmployeeService interface {
	// GetProfile retrieves a full profile including current salary and title
	GetProfile(ctx context.Context, subjectID string) (ProfileResponse, error)

	// UpdateProfile applies an HR partial update; a job title change also
	// rolls the title history forward
	UpdateProfile(ctx context.Context, subjectID string, req UpdateProfileRequest) (ProfileResponse, error)

	// SearchDirectory lists active employees matching the filter
	SearchDirectory(ctx context.Context, filter DirectoryFilter) ([]DirectoryEntry, error)

	// ListPendingOnboarding lists profiles in non-terminal onboarding states
	ListPendingOnboarding(ctx context.Context) ([]ProfileResponse, error)
}
