package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"titulares-admin/internal/domain/aportes"
)

type aportesRepo struct {
	mu   sync.RWMutex
	byID map[string]aportes.Aporte
}

func NewAportesRepo() aportes.Repository {
	return &aportesRepo{
		byID: make(map[string]aportes.Aporte),
	}
}

func (r *aportesRepo) Create(ctx context.Context, a aportes.Aporte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("aporte id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("aporte already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *aportesRepo) Update(ctx context.Context, a aportes.Aporte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("aporte id required")
	}
	if _, exists := r.byID[a.ID]; !exists {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *aportesRepo) GetByID(ctx context.Context, id string) (aportes.Aporte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return aportes.Aporte{}, ErrNotFound
	}
	return a, nil
}

func (r *aportesRepo) ListByStatus(ctx context.Context, status aportes.Status) ([]aportes.Aporte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]aportes.Aporte, 0)
	for _, a := range r.byID {
		if a.Status == status {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *aportesRepo) ListByTitular(ctx context.Context, titularID string) ([]aportes.Aporte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]aportes.Aporte, 0)
	for _, a := range r.byID {
		if a.TitularID == titularID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
