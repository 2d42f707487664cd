package folders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	ProjectID   string
	Name        string
	Description string
	Schema      any // estructura cruda; se parsea tolerante
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Folder, error) {
	if strings.TrimSpace(in.ProjectID) == "" {
		return Folder{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Folder{}, ErrInvalidInput
	}

	now := s.now()

	sch := ParseSchema(in.Schema)
	if sch.Version == "" {
		sch.Version = "1"
	}
	sch.LastModified = now.UTC().Format(time.RFC3339)

	f := Folder{
		ID:          uuid.NewString(),
		ProjectID:   strings.TrimSpace(in.ProjectID),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Schema:      sch,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return Folder{}, err
	}
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Folder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Folder{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Folder, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// UpdateSchema reemplaza el esquema completo de la carpeta. La versión la
// asigna el caller (string libre, sin semver): dos esquemas distintos con la
// misma versión son una inconsistencia posible que no se detecta acá.
// Si el payload no trae versión se conserva la anterior.
func (s *Service) UpdateSchema(ctx context.Context, folderID string, raw any) (Folder, error) {
	f, err := s.GetByID(ctx, folderID)
	if err != nil {
		return Folder{}, err
	}

	sch := ParseSchema(raw)
	if sch.Version == "" {
		sch.Version = f.Schema.Version
	}

	now := s.now()
	sch.LastModified = now.UTC().Format(time.RFC3339)

	f.Schema = sch
	f.UpdatedAt = now

	if err := s.repo.Update(ctx, f); err != nil {
		return Folder{}, err
	}
	return f, nil
}
