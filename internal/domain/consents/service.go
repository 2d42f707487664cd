package consents

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInactive     = errors.New("consent inactive")
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
	Title string
	Body  string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (ConsentDocument, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Body) == "" {
		return ConsentDocument{}, ErrInvalidInput
	}

	now := s.now()
	c := ConsentDocument{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		Version:   "1",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return ConsentDocument{}, err
	}
	return c, nil
}

// Publish reemplaza el texto del documento incrementando la versión. Las
// aceptaciones previas conservan la versión contra la que se firmaron.
func (s *Service) Publish(ctx context.Context, id, body string) (ConsentDocument, error) {
	if strings.TrimSpace(body) == "" {
		return ConsentDocument{}, ErrInvalidInput
	}

	c, err := s.GetByID(ctx, id)
	if err != nil {
		return ConsentDocument{}, ErrNotFound
	}

	c.Body = body
	c.Version = nextVersion(c.Version)
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return ConsentDocument{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (ConsentDocument, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ConsentDocument{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]ConsentDocument, error) {
	return s.repo.List(ctx)
}

// VersionOf devuelve la versión vigente de un documento activo. Es lo que
// el portal registra junto a cada aceptación.
func (s *Service) VersionOf(ctx context.Context, consentID string) (string, error) {
	c, err := s.GetByID(ctx, consentID)
	if err != nil {
		return "", ErrNotFound
	}
	if !c.Active {
		return "", ErrInactive
	}
	return c.Version, nil
}

func nextVersion(v string) string {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return "2"
	}
	return strconv.Itoa(n + 1)
}
