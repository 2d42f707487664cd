package titulares

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"titulares-admin/internal/domain/folders"
	"titulares-admin/internal/ports/mailer"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Titular
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Titular{}}
}

func (r *testRepo) Create(ctx context.Context, t Titular) error {
	if t.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[t.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) Update(ctx context.Context, t Titular) error {
	if _, ok := r.byID[t.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Titular, error) {
	t, ok := r.byID[id]
	if !ok {
		return Titular{}, errRepoNotFound
	}
	return t, nil
}

func (r *testRepo) GetByAccessKey(ctx context.Context, accessKey string) (Titular, error) {
	for _, t := range r.byID {
		if t.AccessKey == accessKey {
			return t, nil
		}
	}
	return Titular{}, errRepoNotFound
}

func (r *testRepo) GetByAccessCode(ctx context.Context, accessCode string) (Titular, error) {
	for _, t := range r.byID {
		if t.AccessCode == accessCode {
			return t, nil
		}
	}
	return Titular{}, errRepoNotFound
}

func (r *testRepo) ListByFolder(ctx context.Context, folderID string) ([]Titular, error) {
	out := make([]Titular, 0)
	for _, t := range r.byID {
		if t.FolderID == folderID {
			out = append(out, t)
		}
	}
	return out, nil
}

// -------------------------
// Fakes
// -------------------------

type testFolderSource struct {
	schemas map[string]folders.Schema
}

func (s *testFolderSource) SchemaOf(ctx context.Context, folderID string) (folders.Schema, error) {
	sch, ok := s.schemas[folderID]
	if !ok {
		return folders.Schema{}, errors.New("folder not found")
	}
	return sch, nil
}

type testMailer struct {
	sent []mailer.Message
}

func (m *testMailer) Send(ctx context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func serviceSchema() folders.Schema {
	return folders.Schema{
		Version: "2",
		Sections: []folders.Section{{
			Name: "Datos",
			Fields: []folders.FieldDefinition{
				{Name: "nombre", Type: folders.FieldText, Required: true},
				{Name: "telefono", Type: folders.FieldText},
				{Name: "nota_interna", Type: folders.FieldTextarea, Ownership: folders.OwnershipAdminHidden},
			},
		}},
	}
}

func newTestService(t *testing.T) (*Service, *testRepo, *testMailer) {
	t.Helper()

	repo := newTestRepo()
	mail := &testMailer{}
	src := &testFolderSource{schemas: map[string]folders.Schema{
		"folder-1": serviceSchema(),
	}}

	svc := NewService(repo, src, nil, mail, "https://portal.example.org")
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	svc.newCode = func() string { return "123456" }

	return svc, repo, mail
}

func TestCreate_GeneratesAccessAndSendsWelcome(t *testing.T) {
	svc, repo, mail := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		ProjectID: "proj-1",
		FolderID:  "folder-1",
		FullName:  "Ana Pérez",
		Email:     "Ana@Example.org",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.AccessCode != "123456" {
		t.Fatalf("expected access code 123456, got %q", created.AccessCode)
	}
	if created.AccessKey == "" || strings.Contains(created.AccessKey, "-") {
		t.Fatalf("expected access key without dashes, got %q", created.AccessKey)
	}
	if created.FolderVersion != "2" {
		t.Fatalf("expected pinned folder version 2, got %q", created.FolderVersion)
	}
	if created.Email != "ana@example.org" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.Status != StatusPending || created.CompletionPercentage != 0 {
		t.Fatalf("expected pending/0, got %s/%d", created.Status, created.CompletionPercentage)
	}

	if _, ok := repo.byID[created.ID]; !ok {
		t.Fatal("expected titular persisted")
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected 1 welcome mail, got %d", len(mail.sent))
	}
	msg := mail.sent[0]
	if msg.To != "ana@example.org" {
		t.Fatalf("welcome mail to %q", msg.To)
	}
	if !strings.Contains(msg.Body, "https://portal.example.org/portal/"+created.AccessKey) {
		t.Fatalf("welcome mail missing portal url: %s", msg.Body)
	}
	if !strings.Contains(msg.Body, "123456") {
		t.Fatalf("welcome mail missing access code: %s", msg.Body)
	}
}

func TestCreate_UnknownFolderRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{
		ProjectID: "proj-1",
		FolderID:  "nope",
		FullName:  "Ana",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPortalLogin(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		ProjectID: "proj-1",
		FolderID:  "folder-1",
		FullName:  "Ana",
		Email:     "ana@example.org",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.PortalLogin(context.Background(), "ANA@example.org", "123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("login resolved wrong titular")
	}

	// código correcto pero email ajeno: mismo not found
	if _, err := svc.PortalLogin(context.Background(), "otra@example.org", "123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong email, got %v", err)
	}
}

func TestSavePortalData_StripsHiddenAndRecomputes(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		ProjectID: "proj-1",
		FolderID:  "folder-1",
		FullName:  "Ana",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.SavePortalData(context.Background(), created.AccessKey, map[string]any{
		"nombre":       "Ana Pérez",
		"nota_interna": "inyectado por el titular",
	}, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Errors != nil {
		t.Fatalf("unexpected validation errors: %v", res.Errors)
	}

	saved := repo.byID[created.ID]
	if saved.Data["nombre"] != "Ana Pérez" {
		t.Fatalf("expected nombre saved, got %v", saved.Data)
	}
	if _, ok := saved.Data["nota_interna"]; ok {
		t.Fatal("hidden field must not be writable from portal")
	}

	// nota_interna es admin_hidden: no cuenta en el denominador (2 campos)
	if saved.CompletionPercentage != 50 {
		t.Fatalf("expected 50%%, got %d", saved.CompletionPercentage)
	}
	if saved.Status != StatusInProgress {
		t.Fatalf("expected in_progress, got %s", saved.Status)
	}
}

func TestSavePortalData_ValidationErrorLeavesDataUntouched(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		ProjectID: "proj-1",
		FolderID:  "folder-1",
		FullName:  "Ana",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.SavePortalData(context.Background(), created.AccessKey, map[string]any{
		"nombre": "",
	}, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Errors == nil {
		t.Fatal("expected validation errors for empty required field")
	}
	if _, ok := res.Errors["nombre"]; !ok {
		t.Fatalf("expected error keyed by field, got %v", res.Errors)
	}

	saved := repo.byID[created.ID]
	if len(saved.Data) != 0 {
		t.Fatalf("data must stay untouched on validation error, got %v", saved.Data)
	}
}

func TestSavePortalData_HiddenFileFieldNotWritable(t *testing.T) {
	repo := newTestRepo()
	store := newRecordingStore()
	src := &testFolderSource{schemas: map[string]folders.Schema{
		"folder-1": {
			Sections: []folders.Section{{
				Name: "Docs",
				Fields: []folders.FieldDefinition{
					{Name: "nombre", Type: folders.FieldText},
					{Name: "informe_interno", Type: folders.FieldFile, Ownership: folders.OwnershipAdminHidden},
				},
			}},
		},
	}}

	svc := NewService(repo, src, store, &testMailer{}, "")
	svc.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	svc.newCode = func() string { return "123456" }

	created, err := svc.Create(context.Background(), CreateInput{
		ProjectID: "proj-1",
		FolderID:  "folder-1",
		FullName:  "Ana",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// el strip de admin_hidden cubre también los archivos, no solo el payload
	res, err := svc.SavePortalData(context.Background(), created.AccessKey, map[string]any{
		"nombre": "Ana Pérez",
	}, map[string]Upload{
		"informe_interno": {Filename: "informe.pdf", Content: pdfContent},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Errors != nil {
		t.Fatalf("unexpected validation errors: %v", res.Errors)
	}

	saved := repo.byID[created.ID]
	if _, ok := saved.Data["informe_interno"]; ok {
		t.Fatal("hidden file field must not be writable from portal")
	}
	if len(store.saved) != 0 {
		t.Fatalf("hidden field upload must not be persisted, got %v", store.saved)
	}
	if saved.Data["nombre"] != "Ana Pérez" {
		t.Fatalf("expected visible field saved, got %v", saved.Data)
	}
}

func TestSaveAdminData_FiltersToAdminEditable(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		ProjectID: "proj-1",
		FolderID:  "folder-1",
		FullName:  "Ana",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.SaveAdminData(context.Background(), created.ID, map[string]any{
		"nombre":       "hackeado", // titular-only: el server lo descarta
		"nota_interna": "seguimiento",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Errors != nil {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	saved := repo.byID[created.ID]
	if _, ok := saved.Data["nombre"]; ok {
		t.Fatal("titular-only field must not be writable from admin path")
	}
	if saved.Data["nota_interna"] != "seguimiento" {
		t.Fatalf("expected hidden field saved by admin, got %v", saved.Data)
	}
}

func TestAcceptConsent_AppendsWithoutDedup(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		ProjectID: "proj-1",
		FolderID:  "folder-1",
		FullName:  "Ana",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	acc := ConsentAcceptance{ConsentID: "c1", Version: "1", IPAddress: "10.0.0.1", UserAgent: "test"}
	if _, err := svc.AcceptConsent(context.Background(), created.AccessKey, acc); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := svc.AcceptConsent(context.Background(), created.AccessKey, acc); err != nil {
		t.Fatalf("accept twice: %v", err)
	}

	saved := repo.byID[created.ID]
	if len(saved.Consents) != 2 {
		t.Fatalf("expected 2 acceptance records, got %d", len(saved.Consents))
	}
	if saved.Consents[0].AcceptedAt.IsZero() {
		t.Fatal("expected accepted_at set by service")
	}
}

func TestGetPortalView_HidesAdminOnly(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		ProjectID: "proj-1",
		FolderID:  "folder-1",
		FullName:  "Ana",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// staff carga un campo oculto; el portal no debe mostrarlo
	withData := repo.byID[created.ID]
	withData.Data = map[string]any{"nombre": "Ana", "nota_interna": "secreto"}
	repo.byID[created.ID] = withData

	view, err := svc.GetPortalView(context.Background(), created.AccessKey)
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	for _, f := range view.Schema.Fields() {
		if f.Name == "nota_interna" {
			t.Fatal("hidden field leaked into portal schema")
		}
	}
	if _, ok := view.Data["nota_interna"]; ok {
		t.Fatal("hidden value leaked into portal data")
	}
	if view.Data["nombre"] != "Ana" {
		t.Fatalf("expected visible data, got %v", view.Data)
	}
}
