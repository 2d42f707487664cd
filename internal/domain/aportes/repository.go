package aportes

import "context"

type Repository interface {
	Create(ctx context.Context, a Aporte) error
	Update(ctx context.Context, a Aporte) error
	GetByID(ctx context.Context, id string) (Aporte, error)
	ListByStatus(ctx context.Context, status Status) ([]Aporte, error)
	ListByTitular(ctx context.Context, titularID string) ([]Aporte, error)
}
