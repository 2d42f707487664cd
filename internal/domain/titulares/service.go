package titulares

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"titulares-admin/internal/domain/folders"
	"titulares-admin/internal/ports/filestore"
	"titulares-admin/internal/ports/mailer"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// FolderSource expone el esquema vigente de una carpeta.
// Interfaz chica para no acoplar este módulo al servicio de folders.
type FolderSource interface {
	SchemaOf(ctx context.Context, folderID string) (folders.Schema, error)
}

type Service struct {
	repo    Repository
	folders FolderSource
	files   filestore.Store
	mail    mailer.Mailer

	portalBaseURL string

	now     func() time.Time
	newCode func() string
}

func NewService(repo Repository, src FolderSource, files filestore.Store, mail mailer.Mailer, portalBaseURL string) *Service {
	return &Service{
		repo:          repo,
		folders:       src,
		files:         files,
		mail:          mail,
		portalBaseURL: strings.TrimRight(strings.TrimSpace(portalBaseURL), "/"),
		now:           time.Now,
		newCode:       randomAccessCode,
	}
}

type CreateInput struct {
	ProjectID string
	FolderID  string
	FullName  string
	Email     string
}

// Create da de alta un titular con data vacía, fijando la versión del
// esquema vigente de su carpeta. Genera el código de 6 dígitos y la clave
// de URL única del portal, y manda el correo de bienvenida (best-effort).
func (s *Service) Create(ctx context.Context, in CreateInput) (Titular, error) {
	if strings.TrimSpace(in.ProjectID) == "" {
		return Titular{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.FolderID) == "" {
		return Titular{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.FullName) == "" {
		return Titular{}, ErrInvalidInput
	}

	sch, err := s.folders.SchemaOf(ctx, in.FolderID)
	if err != nil {
		return Titular{}, ErrInvalidInput
	}

	now := s.now()
	pct := CompletionPercentage(sch, nil)

	t := Titular{
		ID:                   uuid.NewString(),
		ProjectID:            strings.TrimSpace(in.ProjectID),
		FolderID:             strings.TrimSpace(in.FolderID),
		FolderVersion:        sch.Version,
		FullName:             strings.TrimSpace(in.FullName),
		Email:                strings.ToLower(strings.TrimSpace(in.Email)),
		AccessCode:           s.newCode(),
		AccessKey:            strings.ReplaceAll(uuid.NewString(), "-", ""),
		Data:                 map[string]any{},
		CompletionPercentage: pct,
		Status:               StatusFor(pct),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Titular{}, err
	}

	if s.mail != nil && t.Email != "" {
		_ = s.mail.Send(ctx, s.welcomeMessage(t))
	}

	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Titular, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Titular{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByFolder(ctx context.Context, folderID string) ([]Titular, error) {
	return s.repo.ListByFolder(ctx, folderID)
}

// GetByAccessKey resuelve al titular desde su URL única del portal.
func (s *Service) GetByAccessKey(ctx context.Context, accessKey string) (Titular, error) {
	accessKey = strings.TrimSpace(accessKey)
	if accessKey == "" {
		return Titular{}, ErrNotFound
	}
	t, err := s.repo.GetByAccessKey(ctx, accessKey)
	if err != nil {
		return Titular{}, ErrNotFound
	}
	return t, nil
}

// PortalLogin resuelve al titular por código de 6 dígitos + email.
func (s *Service) PortalLogin(ctx context.Context, email, accessCode string) (Titular, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	accessCode = strings.TrimSpace(accessCode)
	if email == "" || accessCode == "" {
		return Titular{}, ErrInvalidInput
	}

	t, err := s.repo.GetByAccessCode(ctx, accessCode)
	if err != nil || t.Email != email {
		return Titular{}, ErrNotFound
	}
	return t, nil
}

// SaveResult es la salida de un guardado: o bien el titular actualizado, o
// bien los errores de validación por campo (y el titular queda como estaba).
type SaveResult struct {
	Titular Titular
	Errors  FieldErrors
}

// SavePortalData es el guardado de autoservicio del titular:
// strip de campos admin_hidden -> persistencia de uploads -> validación y
// merge -> recomputo de completitud y estado -> una actualización atómica.
// Last-write-wins entre guardados concurrentes del mismo titular.
func (s *Service) SavePortalData(ctx context.Context, accessKey string, payload map[string]any, files map[string]Upload) (SaveResult, error) {
	t, err := s.GetByAccessKey(ctx, accessKey)
	if err != nil {
		return SaveResult{}, err
	}

	sch := s.schemaFor(ctx, t)

	incoming := folders.StripHiddenFields(sch, payload)
	incoming = ProcessUploads(ctx, s.files, sch, t.ID, incoming, stripHiddenUploads(sch, files), s.now())

	return s.applySave(ctx, t, sch, incoming)
}

// stripHiddenUploads aplica a los archivos el mismo strip que
// StripHiddenFields aplica al payload escalar: un upload con la clave de un
// campo admin_hidden se descarta antes de persistir nada.
func stripHiddenUploads(sch folders.Schema, files map[string]Upload) map[string]Upload {
	if len(files) == 0 {
		return files
	}

	hidden := map[string]struct{}{}
	for _, f := range sch.Fields() {
		if f.VisibleOnlyForAdmin() {
			hidden[f.Name] = struct{}{}
		}
	}

	out := make(map[string]Upload, len(files))
	for k, up := range files {
		if _, ok := hidden[k]; ok {
			continue
		}
		out[k] = up
	}
	return out
}

// SaveAdminData es el guardado de staff. A diferencia del sistema original,
// acá el filtro de campos AdminEditable se aplica también del lado servidor,
// sin confiar en la UI.
func (s *Service) SaveAdminData(ctx context.Context, titularID string, payload map[string]any) (SaveResult, error) {
	t, err := s.GetByID(ctx, titularID)
	if err != nil {
		return SaveResult{}, ErrNotFound
	}

	sch := s.schemaFor(ctx, t)
	incoming := folders.FilterAdminEditable(sch, payload)

	return s.applySave(ctx, t, sch, incoming)
}

func (s *Service) applySave(ctx context.Context, t Titular, sch folders.Schema, incoming map[string]any) (SaveResult, error) {
	merged, verrs := ValidateAndMerge(ctx, sch, t.Data, incoming)
	if verrs != nil {
		return SaveResult{Titular: t, Errors: verrs}, nil
	}

	now := s.now()
	t.Data = merged
	t.CompletionPercentage = CompletionPercentage(sch, merged)
	t.Status = StatusFor(t.CompletionPercentage)
	t.UpdatedAt = now

	if err := s.repo.Update(ctx, t); err != nil {
		return SaveResult{}, err
	}

	return SaveResult{Titular: t}, nil
}

// AcceptConsent agrega un registro de aceptación. No deduplica: cada
// aceptación es un registro legal puntual.
func (s *Service) AcceptConsent(ctx context.Context, accessKey string, acc ConsentAcceptance) (Titular, error) {
	if strings.TrimSpace(acc.ConsentID) == "" {
		return Titular{}, ErrInvalidInput
	}

	t, err := s.GetByAccessKey(ctx, accessKey)
	if err != nil {
		return Titular{}, err
	}

	acc.AcceptedAt = s.now()
	t.Consents = append(t.Consents, acc)
	t.UpdatedAt = acc.AcceptedAt

	if err := s.repo.Update(ctx, t); err != nil {
		return Titular{}, err
	}
	return t, nil
}

// PortalView es lo que ve el titular al entrar a su URL: el esquema sin los
// campos admin_hidden (ocultar, además de filtrar el envío) y sus datos
// también filtrados.
type PortalView struct {
	Titular Titular
	Schema  folders.Schema
	Data    map[string]any
}

func (s *Service) GetPortalView(ctx context.Context, accessKey string) (PortalView, error) {
	t, err := s.GetByAccessKey(ctx, accessKey)
	if err != nil {
		return PortalView{}, err
	}

	sch := s.schemaFor(ctx, t)

	return PortalView{
		Titular: t,
		Schema:  folders.TitularView(sch),
		Data:    folders.StripHiddenFields(sch, t.Data),
	}, nil
}

// schemaFor carga el esquema vigente de la carpeta del titular. Si la
// carpeta no aparece, degrada a esquema vacío: sin reglas, completitud
// vacua (fail-open, igual que el resto de las operaciones de esquema).
func (s *Service) schemaFor(ctx context.Context, t Titular) folders.Schema {
	sch, err := s.folders.SchemaOf(ctx, t.FolderID)
	if err != nil {
		return folders.Schema{}
	}
	return sch
}

func (s *Service) welcomeMessage(t Titular) mailer.Message {
	portalURL := t.AccessKey
	if s.portalBaseURL != "" {
		portalURL = s.portalBaseURL + "/portal/" + t.AccessKey
	}

	return mailer.Message{
		To:      t.Email,
		Subject: "Bienvenido/a: acceso a tu formulario",
		Body: fmt.Sprintf(
			"Hola %s:\n\nYa podés completar tus datos.\n\nAcceso directo: %s\nCódigo de acceso: %s\n\nGracias.",
			t.FullName, portalURL, t.AccessCode,
		),
	}
}

func randomAccessCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
