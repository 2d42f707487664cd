package titulares

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"titulares-admin/internal/domain/folders"
	"titulares-admin/internal/ports/filestore"

	"github.com/gabriel-vasile/mimetype"
)

// Upload es el contenido binario recibido para un campo file.
type Upload struct {
	Filename string
	Content  []byte
}

// ProcessUploads persiste los archivos subidos para campos file del esquema
// e inyecta sus paths en una copia del payload.
//
// Subir es opcional por guardado: un campo file sin archivo conserva el
// valor que tuviera. Un archivo que no cumple las restricciones del campo
// (mimes:/max:) se saltea en silencio y el campo queda como estaba; las
// restricciones son advisory en esta capa y se exigen más arriba.
//
// El path queda namespaceado por titular y campo, con el timestamp como
// desambiguador, así dos subidas al mismo campo nunca colisionan:
// titulares/<id>/<campo>_<nanos>.<ext>
func ProcessUploads(ctx context.Context, store filestore.Store, s folders.Schema, titularID string, data map[string]any, files map[string]Upload, now time.Time) map[string]any {
	out := make(map[string]any, len(data)+len(files))
	for k, v := range data {
		out[k] = v
	}

	if store == nil || len(files) == 0 {
		return out
	}

	for _, f := range s.Fields() {
		if f.Type != folders.FieldFile || f.Name == "" {
			continue
		}

		up, ok := files[f.Name]
		if !ok || len(up.Content) == 0 {
			continue
		}
		if !uploadAllowed(f, up) {
			continue
		}

		ext := strings.ToLower(filepath.Ext(up.Filename))
		if ext == "" {
			ext = mimetype.Detect(up.Content).Extension()
		}

		path := fmt.Sprintf("titulares/%s/%s_%d%s", titularID, f.Name, now.UnixNano(), ext)
		if err := store.Save(ctx, path, up.Content); err != nil {
			// mismo trato que una restricción incumplida: el campo conserva
			// su valor anterior y el resto del guardado sigue
			continue
		}

		out[f.Name] = path
	}

	return out
}

// uploadAllowed chequea el contenido contra los tokens de archivo del campo.
func uploadAllowed(f folders.FieldDefinition, up Upload) bool {
	for _, tok := range f.Validation {
		name, param := tok, ""
		if i := strings.Index(tok, ":"); i >= 0 {
			name, param = tok[:i], tok[i+1:]
		}

		switch strings.TrimSpace(name) {
		case "mimes", "mimetypes":
			if !contentMatches(up.Content, strings.Split(param, ",")) {
				return false
			}
		case "max":
			// Laravel mide archivos en kilobytes
			kb, err := strconv.Atoi(strings.TrimSpace(param))
			if err == nil && len(up.Content) > kb*1024 {
				return false
			}
		case "image":
			if !strings.HasPrefix(mimetype.Detect(up.Content).String(), "image/") {
				return false
			}
		}
	}
	return true
}

// contentMatches sniffea el contenido real (no confía en la extensión del
// nombre original) y lo compara contra las extensiones permitidas.
func contentMatches(content []byte, allowed []string) bool {
	detected := strings.TrimPrefix(mimetype.Detect(content).Extension(), ".")

	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if a == detected {
			return true
		}
		// jpg/jpeg son el mismo contenido
		if (a == "jpg" && detected == "jpeg") || (a == "jpeg" && detected == "jpg") {
			return true
		}
	}
	return false
}
