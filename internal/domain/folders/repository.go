package folders

import "context"

type Repository interface {
	Create(ctx context.Context, f Folder) error
	Update(ctx context.Context, f Folder) error
	GetByID(ctx context.Context, id string) (Folder, error)
	ListByProject(ctx context.Context, projectID string) ([]Folder, error)
}
