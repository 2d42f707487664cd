package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"titulares-admin/internal/domain/titulares"
)

type titularesRepo struct {
	mu   sync.RWMutex
	byID map[string]titulares.Titular
}

func NewTitularesRepo() titulares.Repository {
	return &titularesRepo{
		byID: make(map[string]titulares.Titular),
	}
}

func (r *titularesRepo) Create(ctx context.Context, t titulares.Titular) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("titular id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("titular already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *titularesRepo) Update(ctx context.Context, t titulares.Titular) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("titular id required")
	}
	if _, exists := r.byID[t.ID]; !exists {
		return ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *titularesRepo) GetByID(ctx context.Context, id string) (titulares.Titular, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return titulares.Titular{}, ErrNotFound
	}
	return t, nil
}

func (r *titularesRepo) GetByAccessKey(ctx context.Context, accessKey string) (titulares.Titular, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.byID {
		if t.AccessKey == accessKey {
			return t, nil
		}
	}
	return titulares.Titular{}, ErrNotFound
}

func (r *titularesRepo) GetByAccessCode(ctx context.Context, accessCode string) (titulares.Titular, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.byID {
		if t.AccessCode == accessCode {
			return t, nil
		}
	}
	return titulares.Titular{}, ErrNotFound
}

func (r *titularesRepo) ListByFolder(ctx context.Context, folderID string) ([]titulares.Titular, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]titulares.Titular, 0)
	for _, t := range r.byID {
		if t.FolderID == folderID {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
