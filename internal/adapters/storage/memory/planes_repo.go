package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"titulares-admin/internal/domain/planes"
)

type planesRepo struct {
	mu   sync.RWMutex
	byID map[string]planes.Plan
}

func NewPlanesRepo() planes.Repository {
	return &planesRepo{
		byID: make(map[string]planes.Plan),
	}
}

func (r *planesRepo) Create(ctx context.Context, p planes.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("plan id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("plan already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *planesRepo) Update(ctx context.Context, p planes.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("plan id required")
	}
	if _, exists := r.byID[p.ID]; !exists {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *planesRepo) GetByID(ctx context.Context, id string) (planes.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return planes.Plan{}, ErrNotFound
	}
	return p, nil
}

func (r *planesRepo) List(ctx context.Context) ([]planes.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]planes.Plan, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
