package title

import (
	"context"
	"time"
)

type TitleRepository interface {
	Create(ctx context.Context, t TitleHistory) (TitleHistory, error)
	GetByID(ctx context.Context, id string) (TitleHistory, error)
	List(ctx context.Context, filter TitleFilter) ([]TitleHistory, error)
	Update(ctx context.Context, id string, req UpdateTitleHistoryRequest) (TitleHistory, error)
	Delete(ctx context.Context, id string) error
	// GetLatest returns the employee's most recent entry by start date.
	GetLatest(ctx context.Context, employeeSubjectID string) (TitleHistory, error)
	// CloseEntry sets the end date of an open-ended entry.
	CloseEntry(ctx context.Context, id string, endDate time.Time) error
}
