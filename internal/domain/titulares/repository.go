package titulares

import "context"

type Repository interface {
	Create(ctx context.Context, t Titular) error
	// Update escribe el registro completo (data + completitud + consents)
	// como una sola actualización atómica.
	Update(ctx context.Context, t Titular) error
	GetByID(ctx context.Context, id string) (Titular, error)
	GetByAccessKey(ctx context.Context, accessKey string) (Titular, error)
	GetByAccessCode(ctx context.Context, accessCode string) (Titular, error)
	ListByFolder(ctx context.Context, folderID string) ([]Titular, error)
}
