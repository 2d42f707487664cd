package folders

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"titulares-admin/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/folders", func(fr chi.Router) {
		fr.Post("/", createFolderHandler(svc))
		fr.Get("/", listFoldersHandler(svc))
		fr.Get("/{folderID}", getFolderHandler(svc))

		// Reemplazo completo del esquema (staff)
		fr.Put("/{folderID}/schema", updateSchemaHandler(svc))
	})
}

type createFolderRequest struct {
	ProjectID   string          `json:"project_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"` // estructura cruda del esquema
}

type folderResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schema      Schema    `json:"schema"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createFolderHandler godoc
// @Summary Crear carpeta
// @Description Crea una carpeta (plantilla de formulario) para un proyecto. El esquema es opcional y se parsea tolerante: secciones con campos, o lista plana legacy. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags folders
// @Accept json
// @Produce json
// @Param payload body createFolderRequest true "Datos de la carpeta"
// @Success 201 {object} folderResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /folders [post]
func createFolderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createFolderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var rawSchema any
		if len(req.Schema) > 0 {
			// Malformado => esquema vacío; el parseo es fail-open.
			_ = json.Unmarshal(req.Schema, &rawSchema)
		}

		f, err := svc.Create(r.Context(), CreateInput{
			ProjectID:   req.ProjectID,
			Name:        req.Name,
			Description: req.Description,
			Schema:      rawSchema,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toFolderResponse(f))
	}
}

// listFoldersHandler godoc
// @Summary Listar carpetas de un proyecto
// @Tags folders
// @Produce json
// @Param project_id query string true "ID del proyecto"
// @Success 200 {array} folderResponse
// @Failure 401 {string} string "unauthorized"
// @Router /folders [get]
func listFoldersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByProject(r.Context(), r.URL.Query().Get("project_id"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]folderResponse, 0, len(items))
		for _, f := range items {
			out = append(out, toFolderResponse(f))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getFolderHandler godoc
// @Summary Obtener carpeta
// @Tags folders
// @Produce json
// @Param folderID path string true "ID de la carpeta"
// @Success 200 {object} folderResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "folder not found"
// @Router /folders/{folderID} [get]
func getFolderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f, err := svc.GetByID(r.Context(), chi.URLParam(r, "folderID"))
		if err != nil {
			http.Error(w, "folder not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toFolderResponse(f))
	}
}

// updateSchemaHandler godoc
// @Summary Reemplazar esquema de carpeta
// @Description Reemplaza el esquema completo. El body es la estructura cruda del esquema ({version, sections: [...]} o lista plana legacy). La versión la asigna el caller; si falta se conserva la anterior.
// @Tags folders
// @Accept json
// @Produce json
// @Param folderID path string true "ID de la carpeta"
// @Param payload body object true "Esquema crudo"
// @Success 200 {object} folderResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "folder not found"
// @Router /folders/{folderID}/schema [put]
func updateSchemaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var raw any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		f, err := svc.UpdateSchema(r.Context(), chi.URLParam(r, "folderID"), raw)
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "folder not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toFolderResponse(f))
	}
}

func toFolderResponse(f Folder) folderResponse {
	return folderResponse{
		ID:          f.ID,
		ProjectID:   f.ProjectID,
		Name:        f.Name,
		Description: f.Description,
		Schema:      f.Schema,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
