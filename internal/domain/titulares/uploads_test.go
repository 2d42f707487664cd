package titulares

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"titulares-admin/internal/domain/folders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contenidos mínimos reconocibles por el sniffer
var (
	pdfContent = []byte("%PDF-1.4\n%fake\n")
	txtContent = []byte("hola, soy texto plano")
)

type recordingStore struct {
	saved  map[string][]byte
	failOn string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{saved: map[string][]byte{}}
}

func (s *recordingStore) Save(ctx context.Context, path string, content []byte) error {
	if s.failOn != "" && path == s.failOn {
		return errors.New("disk full")
	}
	s.saved[path] = content
	return nil
}

func (s *recordingStore) Open(ctx context.Context, path string) ([]byte, error) {
	b, ok := s.saved[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func uploadsSchema(validation ...string) folders.Schema {
	return folders.Schema{
		Sections: []folders.Section{{
			Name: "Docs",
			Fields: []folders.FieldDefinition{
				{Name: "dni_scan", Type: folders.FieldFile, Validation: validation},
				{Name: "nombre", Type: folders.FieldText},
			},
		}},
	}
}

func TestProcessUploads_SavesAndInjectsPath(t *testing.T) {
	store := newRecordingStore()
	now := time.Unix(1700000000, 42)

	out := ProcessUploads(context.Background(), store, uploadsSchema("mimes:pdf,jpg"), "t1",
		map[string]any{"nombre": "Ana"},
		map[string]Upload{"dni_scan": {Filename: "dni.pdf", Content: pdfContent}},
		now,
	)

	wantPath := fmt.Sprintf("titulares/t1/dni_scan_%d.pdf", now.UnixNano())
	assert.Equal(t, wantPath, out["dni_scan"])
	assert.Equal(t, "Ana", out["nombre"])

	require.Contains(t, store.saved, wantPath)
	assert.Equal(t, pdfContent, store.saved[wantPath])
}

func TestProcessUploads_MimeMismatchSkippedSilently(t *testing.T) {
	store := newRecordingStore()

	// texto plano disfrazado de pdf: el sniffer mira el contenido real
	out := ProcessUploads(context.Background(), store, uploadsSchema("mimes:pdf"), "t1",
		map[string]any{"dni_scan": "path/anterior.pdf"},
		map[string]Upload{"dni_scan": {Filename: "dni.pdf", Content: txtContent}},
		time.Now(),
	)

	assert.Equal(t, "path/anterior.pdf", out["dni_scan"])
	assert.Empty(t, store.saved)
}

func TestProcessUploads_MaxKilobytesSkipped(t *testing.T) {
	store := newRecordingStore()

	big := make([]byte, 3*1024)
	copy(big, pdfContent)

	out := ProcessUploads(context.Background(), store, uploadsSchema("max:2"), "t1",
		map[string]any{},
		map[string]Upload{"dni_scan": {Filename: "dni.pdf", Content: big}},
		time.Now(),
	)

	assert.NotContains(t, out, "dni_scan")
	assert.Empty(t, store.saved)
}

func TestProcessUploads_SaveErrorKeepsPreviousValue(t *testing.T) {
	now := time.Unix(1700000000, 0)
	store := newRecordingStore()
	store.failOn = fmt.Sprintf("titulares/t1/dni_scan_%d.pdf", now.UnixNano())

	out := ProcessUploads(context.Background(), store, uploadsSchema(), "t1",
		map[string]any{"dni_scan": "path/anterior.pdf"},
		map[string]Upload{"dni_scan": {Filename: "dni.pdf", Content: pdfContent}},
		now,
	)

	assert.Equal(t, "path/anterior.pdf", out["dni_scan"])
}

func TestProcessUploads_NilStoreIsNoop(t *testing.T) {
	out := ProcessUploads(context.Background(), nil, uploadsSchema(), "t1",
		map[string]any{"nombre": "Ana"},
		map[string]Upload{"dni_scan": {Filename: "dni.pdf", Content: pdfContent}},
		time.Now(),
	)

	assert.Equal(t, map[string]any{"nombre": "Ana"}, out)
}

func TestProcessUploads_ExtensionFromSniffWhenMissing(t *testing.T) {
	store := newRecordingStore()
	now := time.Unix(1700000000, 0)

	out := ProcessUploads(context.Background(), store, uploadsSchema(), "t1",
		map[string]any{},
		map[string]Upload{"dni_scan": {Filename: "sinextension", Content: pdfContent}},
		now,
	)

	wantPath := fmt.Sprintf("titulares/t1/dni_scan_%d.pdf", now.UnixNano())
	assert.Equal(t, wantPath, out["dni_scan"])
}
