package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"titulares-admin/internal/domain/consents"
)

type consentsRepo struct {
	mu   sync.RWMutex
	byID map[string]consents.ConsentDocument
}

func NewConsentsRepo() consents.Repository {
	return &consentsRepo{
		byID: make(map[string]consents.ConsentDocument),
	}
}

func (r *consentsRepo) Create(ctx context.Context, c consents.ConsentDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("consent id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("consent already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *consentsRepo) Update(ctx context.Context, c consents.ConsentDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("consent id required")
	}
	if _, exists := r.byID[c.ID]; !exists {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *consentsRepo) GetByID(ctx context.Context, id string) (consents.ConsentDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return consents.ConsentDocument{}, ErrNotFound
	}
	return c, nil
}

func (r *consentsRepo) List(ctx context.Context) ([]consents.ConsentDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]consents.ConsentDocument, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
