package title

import (
	"context"
	"fmt"

	"github.com/peoplehq/hrms-backend-go/internal/domain/title"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type TitleServiceImpl struct {
	titleRepo title.TitleRepository
}

func NewTitleService(titleRepo title.TitleRepository) title.TitleService {
	return &TitleServiceImpl{titleRepo: titleRepo}
}

// Create implements title.TitleService.
func (s *TitleServiceImpl) Create(ctx context.Context, req title.CreateTitleHistoryRequest) (title.TitleHistoryResponse, error) {
	if err := req.Validate(); err != nil {
		return title.TitleHistoryResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	entry := title.TitleHistory{
		EmployeeSubjectID: req.EmployeeSubjectID,
		JobTitle:          req.JobTitle,
		StartDate:         startDate,
	}
	if req.EndDate != nil {
		endDate, _ := validator.IsValidDate(*req.EndDate)
		entry.EndDate = &endDate
	}

	created, err := s.titleRepo.Create(ctx, entry)
	if err != nil {
		return title.TitleHistoryResponse{}, err
	}
	return title.ToTitleHistoryResponse(created), nil
}

// Get implements title.TitleService.
func (s *TitleServiceImpl) Get(ctx context.Context, id string) (title.TitleHistoryResponse, error) {
	entry, err := s.titleRepo.GetByID(ctx, id)
	if err != nil {
		return title.TitleHistoryResponse{}, err
	}
	return title.ToTitleHistoryResponse(entry), nil
}

// List implements title.TitleService.
func (s *TitleServiceImpl) List(ctx context.Context, filter title.TitleFilter) ([]title.TitleHistoryResponse, error) {
	entries, err := s.titleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list title history: %w", err)
	}

	responses := make([]title.TitleHistoryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, title.ToTitleHistoryResponse(entry))
	}
	return responses, nil
}

// Update implements title.TitleService.
func (s *TitleServiceImpl) Update(ctx context.Context, id string, req title.UpdateTitleHistoryRequest) (title.TitleHistoryResponse, error) {
	if err := req.Validate(); err != nil {
		return title.TitleHistoryResponse{}, err
	}

	updated, err := s.titleRepo.Update(ctx, id, req)
	if err != nil {
		return title.TitleHistoryResponse{}, err
	}
	return title.ToTitleHistoryResponse(updated), nil
}

// Delete implements title.TitleService.
func (s *TitleServiceImpl) Delete(ctx context.Context, id string) error {
	return s.titleRepo.Delete(ctx, id)
}
