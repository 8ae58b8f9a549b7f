package title

import "context"

type TitleService interface {
	Create(ctx context.Context, req CreateTitleHistoryRequest) (TitleHistoryResponse, error)
	Get(ctx context.Context, id string) (TitleHistoryResponse, error)
	List(ctx context.Context, filter TitleFilter) ([]TitleHistoryResponse, error)
	Update(ctx context.Context, id string, req UpdateTitleHistoryRequest) (TitleHistoryResponse, error)
	Delete(ctx context.Context, id string) error
}
