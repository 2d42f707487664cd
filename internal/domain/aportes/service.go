package aportes

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"titulares-admin/internal/domain/planes"
	"titulares-admin/internal/domain/titulares"
	"titulares-admin/internal/ports/filestore"
	"titulares-admin/internal/ports/mailer"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyReviewed = errors.New("aporte already reviewed")
	ErrPlanInactive    = errors.New("plan inactive")
)

// Extensiones aceptadas para comprobantes.
var receiptMIMEs = []string{"application/pdf", "image/jpeg", "image/png"}

// TitularSource resuelve titulares para el alta desde el portal y para las
// notificaciones de revisión.
type TitularSource interface {
	GetByID(ctx context.Context, id string) (titulares.Titular, error)
	GetByAccessKey(ctx context.Context, accessKey string) (titulares.Titular, error)
}

// PlanSource resuelve el plan al que se asocia un aporte aprobado.
type PlanSource interface {
	GetByID(ctx context.Context, id string) (planes.Plan, error)
}

type Service struct {
	repo  Repository
	tits  TitularSource
	plans PlanSource
	files filestore.Store
	mail  mailer.Mailer

	now func() time.Time
}

func NewService(repo Repository, tits TitularSource, plans PlanSource, files filestore.Store, mail mailer.Mailer) *Service {
	return &Service{
		repo:  repo,
		tits:  tits,
		plans: plans,
		files: files,
		mail:  mail,
		now:   time.Now,
	}
}

// Receipt es el comprobante adjunto al registrar un aporte.
type Receipt struct {
	Filename string
	Content  []byte
}

type RegisterInput struct {
	TitularID string
	Amount    float64
	Currency  string
	Period    string
	Receipt   *Receipt
}

// Register da de alta un aporte en estado pending. El comprobante se guarda
// en el almacenamiento de archivos; si el tipo no es un comprobante válido
// (pdf, jpg, png) o el guardado falla, el aporte queda sin comprobante en
// vez de fallar el alta.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Aporte, error) {
	if strings.TrimSpace(in.TitularID) == "" {
		return Aporte{}, ErrInvalidInput
	}
	if in.Amount <= 0 {
		return Aporte{}, ErrInvalidInput
	}
	if !validPeriod(in.Period) {
		return Aporte{}, ErrInvalidInput
	}

	if _, err := s.tits.GetByID(ctx, in.TitularID); err != nil {
		return Aporte{}, ErrInvalidInput
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "ARS"
	}

	now := s.now()
	a := Aporte{
		ID:        uuid.NewString(),
		TitularID: strings.TrimSpace(in.TitularID),
		Amount:    in.Amount,
		Currency:  currency,
		Period:    strings.TrimSpace(in.Period),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.Receipt != nil && len(in.Receipt.Content) > 0 {
		a.ReceiptPath = s.saveReceipt(ctx, a, *in.Receipt, now)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Aporte{}, err
	}
	return a, nil
}

// RegisterFromPortal resuelve al titular por su access key y registra el
// aporte a su nombre.
func (s *Service) RegisterFromPortal(ctx context.Context, accessKey string, in RegisterInput) (Aporte, error) {
	t, err := s.tits.GetByAccessKey(ctx, accessKey)
	if err != nil {
		return Aporte{}, ErrNotFound
	}
	in.TitularID = t.ID
	return s.Register(ctx, in)
}

// Approve pasa un aporte pending a approved, opcionalmente asociándolo a un
// plan activo. Avisa al titular por correo (best-effort).
func (s *Service) Approve(ctx context.Context, id, reviewerID, planID string) (Aporte, error) {
	a, err := s.pendingByID(ctx, id)
	if err != nil {
		return Aporte{}, err
	}

	planID = strings.TrimSpace(planID)
	if planID != "" {
		p, err := s.plans.GetByID(ctx, planID)
		if err != nil {
			return Aporte{}, ErrInvalidInput
		}
		if !p.Active {
			return Aporte{}, ErrPlanInactive
		}
		a.PlanID = &p.ID
	}

	now := s.now()
	a.Status = StatusApproved
	a.ReviewedBy = strings.TrimSpace(reviewerID)
	a.ReviewedAt = &now
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return Aporte{}, err
	}

	s.notifyReview(ctx, a, "Tu aporte fue aprobado",
		fmt.Sprintf("Tu aporte de %.2f %s (período %s) fue aprobado.", a.Amount, a.Currency, a.Period))

	return a, nil
}

// Reject pasa un aporte pending a rejected con el motivo del revisor.
func (s *Service) Reject(ctx context.Context, id, reviewerID, note string) (Aporte, error) {
	a, err := s.pendingByID(ctx, id)
	if err != nil {
		return Aporte{}, err
	}

	now := s.now()
	a.Status = StatusRejected
	a.ReviewedBy = strings.TrimSpace(reviewerID)
	a.ReviewedAt = &now
	a.Note = strings.TrimSpace(note)
	a.UpdatedAt = now

	if err := s.repo.Update(ctx, a); err != nil {
		return Aporte{}, err
	}

	body := fmt.Sprintf("Tu aporte de %.2f %s (período %s) fue rechazado.", a.Amount, a.Currency, a.Period)
	if a.Note != "" {
		body += "\nMotivo: " + a.Note
	}
	s.notifyReview(ctx, a, "Tu aporte fue rechazado", body)

	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Aporte, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Aporte{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Aporte, error) {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return s.repo.ListByStatus(ctx, status)
	default:
		return nil, ErrInvalidInput
	}
}

func (s *Service) ListByTitular(ctx context.Context, titularID string) ([]Aporte, error) {
	return s.repo.ListByTitular(ctx, titularID)
}

func (s *Service) pendingByID(ctx context.Context, id string) (Aporte, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Aporte{}, ErrNotFound
	}
	if a.Status != StatusPending {
		return Aporte{}, ErrAlreadyReviewed
	}
	return a, nil
}

func (s *Service) saveReceipt(ctx context.Context, a Aporte, rec Receipt, now time.Time) string {
	if s.files == nil {
		return ""
	}

	mt := mimetype.Detect(rec.Content)
	ok := false
	for _, allowed := range receiptMIMEs {
		if mt.Is(allowed) {
			ok = true
			break
		}
	}
	if !ok {
		return ""
	}

	ext := strings.ToLower(filepath.Ext(rec.Filename))
	if ext == "" {
		ext = mt.Extension()
	}

	path := fmt.Sprintf("aportes/%s/receipt_%d%s", a.TitularID, now.UnixNano(), ext)
	if err := s.files.Save(ctx, path, rec.Content); err != nil {
		return ""
	}
	return path
}

func (s *Service) notifyReview(ctx context.Context, a Aporte, subject, body string) {
	if s.mail == nil {
		return
	}
	t, err := s.tits.GetByID(ctx, a.TitularID)
	if err != nil || t.Email == "" {
		return
	}
	_ = s.mail.Send(ctx, mailer.Message{
		To:      t.Email,
		Subject: subject,
		Body:    fmt.Sprintf("Hola %s:\n\n%s\n\nGracias.", t.FullName, body),
	})
}

// validPeriod acepta AAAA-MM.
func validPeriod(p string) bool {
	_, err := time.Parse("2006-01", strings.TrimSpace(p))
	return err == nil
}
