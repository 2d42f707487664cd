package planes

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

const defaultCurrency = "ARS"

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
	Name          string
	Description   string
	MonthlyAmount float64
	Currency      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Plan, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Plan{}, ErrInvalidInput
	}
	if in.MonthlyAmount < 0 {
		return Plan{}, ErrInvalidInput
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	now := s.now()
	p := Plan{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		MonthlyAmount: in.MonthlyAmount,
		Currency:      currency,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Plan, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Plan{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Plan, error) {
	return s.repo.List(ctx)
}

// Deactivate deja el plan fuera de uso para nuevos aportes. Idempotente.
func (s *Service) Deactivate(ctx context.Context, id string) (Plan, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Plan{}, ErrNotFound
	}

	if !p.Active {
		return p, nil
	}

	p.Active = false
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Plan{}, err
	}
	return p, nil
}
