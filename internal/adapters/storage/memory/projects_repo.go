package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"titulares-admin/internal/domain/projects"
)

type projectsRepo struct {
	mu   sync.RWMutex
	byID map[string]projects.Project
}

func NewProjectsRepo() projects.Repository {
	return &projectsRepo{
		byID: make(map[string]projects.Project),
	}
}

func (r *projectsRepo) Create(ctx context.Context, p projects.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("project id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("project already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *projectsRepo) GetByID(ctx context.Context, id string) (projects.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return projects.Project{}, ErrNotFound
	}
	return p, nil
}

func (r *projectsRepo) List(ctx context.Context) ([]projects.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]projects.Project, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
