package consents

import "context"

type Repository interface {
	Create(ctx context.Context, c ConsentDocument) error
	Update(ctx context.Context, c ConsentDocument) error
	GetByID(ctx context.Context, id string) (ConsentDocument, error)
	List(ctx context.Context) ([]ConsentDocument, error)
}
