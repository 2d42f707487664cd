package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"titulares-admin/internal/domain/folders"
)

var (
	ErrNotFound = errors.New("not found")
)

type foldersRepo struct {
	mu   sync.RWMutex
	byID map[string]folders.Folder
}

func NewFoldersRepo() folders.Repository {
	return &foldersRepo{
		byID: make(map[string]folders.Folder),
	}
}

func (r *foldersRepo) Create(ctx context.Context, f folders.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(f.ID) == "" {
		return errors.New("folder id required")
	}
	if _, exists := r.byID[f.ID]; exists {
		return errors.New("folder already exists")
	}
	r.byID[f.ID] = f
	return nil
}

func (r *foldersRepo) Update(ctx context.Context, f folders.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(f.ID) == "" {
		return errors.New("folder id required")
	}
	if _, exists := r.byID[f.ID]; !exists {
		return ErrNotFound
	}
	r.byID[f.ID] = f
	return nil
}

func (r *foldersRepo) GetByID(ctx context.Context, id string) (folders.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok {
		return folders.Folder{}, ErrNotFound
	}
	return f, nil
}

func (r *foldersRepo) ListByProject(ctx context.Context, projectID string) ([]folders.Folder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]folders.Folder, 0)
	for _, f := range r.byID {
		if f.ProjectID == projectID {
			out = append(out, f)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
