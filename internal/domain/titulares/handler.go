package titulares

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"titulares-admin/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/titulares", func(tr chi.Router) {
		tr.Post("/", createTitularHandler(svc))
		tr.Get("/", listTitularesHandler(svc))
		tr.Get("/{titularID}", getTitularHandler(svc))

		// Edición de datos de carpeta por staff (solo campos AdminEditable)
		tr.Patch("/{titularID}/data", adminSaveDataHandler(svc))
	})
}

type createTitularRequest struct {
	ProjectID string `json:"project_id"`
	FolderID  string `json:"folder_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

type titularResponse struct {
	ID                   string              `json:"id"`
	ProjectID            string              `json:"project_id"`
	FolderID             string              `json:"folder_id"`
	FolderVersion        string              `json:"folder_version"`
	FullName             string              `json:"full_name"`
	Email                string              `json:"email"`
	AccessCode           string              `json:"access_code"`
	AccessKey            string              `json:"access_key"`
	Data                 map[string]any      `json:"data"`
	CompletionPercentage int                 `json:"completion_percentage"`
	Status               Status              `json:"status"`
	Consents             []ConsentAcceptance `json:"consents"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

type saveDataRequest struct {
	Data map[string]any `json:"data"`
}

type saveErrorsResponse struct {
	Errors FieldErrors `json:"errors"`
}

// createTitularHandler godoc
// @Summary Dar de alta un titular
// @Description Crea el titular con data vacía, fija la versión vigente del esquema de su carpeta, genera código de acceso y URL única, y envía el correo de bienvenida. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags titulares
// @Accept json
// @Produce json
// @Param payload body createTitularRequest true "Datos del alta"
// @Success 201 {object} titularResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /titulares [post]
func createTitularHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createTitularRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), CreateInput{
			ProjectID: req.ProjectID,
			FolderID:  req.FolderID,
			FullName:  req.FullName,
			Email:     req.Email,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toTitularResponse(t))
	}
}

// listTitularesHandler godoc
// @Summary Listar titulares de una carpeta
// @Tags titulares
// @Produce json
// @Param folder_id query string true "ID de la carpeta"
// @Success 200 {array} titularResponse
// @Failure 401 {string} string "unauthorized"
// @Router /titulares [get]
func listTitularesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByFolder(r.Context(), r.URL.Query().Get("folder_id"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]titularResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTitularResponse(t))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getTitularHandler godoc
// @Summary Obtener titular
// @Tags titulares
// @Produce json
// @Param titularID path string true "ID del titular"
// @Success 200 {object} titularResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "titular not found"
// @Router /titulares/{titularID} [get]
func getTitularHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "titularID"))
		if err != nil {
			http.Error(w, "titular not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toTitularResponse(t))
	}
}

// adminSaveDataHandler godoc
// @Summary Editar datos de carpeta de un titular (staff)
// @Description Guarda valores de campos del formulario. El servidor filtra a campos AdminEditable antes de validar y mergear; las claves restantes se ignoran. 422 con errores por campo si la validación falla.
// @Tags titulares
// @Accept json
// @Produce json
// @Param titularID path string true "ID del titular"
// @Param payload body saveDataRequest true "Valores a guardar"
// @Success 200 {object} titularResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "titular not found"
// @Failure 422 {object} saveErrorsResponse
// @Router /titulares/{titularID}/data [patch]
func adminSaveDataHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req saveDataRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.SaveAdminData(r.Context(), chi.URLParam(r, "titularID"), req.Data)
		if err != nil {
			if err == ErrNotFound {
				http.Error(w, "titular not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if res.Errors != nil {
			writeJSON(w, http.StatusUnprocessableEntity, saveErrorsResponse{Errors: res.Errors})
			return
		}

		writeJSON(w, http.StatusOK, toTitularResponse(res.Titular))
	}
}

func toTitularResponse(t Titular) titularResponse {
	return titularResponse{
		ID:                   t.ID,
		ProjectID:            t.ProjectID,
		FolderID:             t.FolderID,
		FolderVersion:        t.FolderVersion,
		FullName:             t.FullName,
		Email:                t.Email,
		AccessCode:           t.AccessCode,
		AccessKey:            t.AccessKey,
		Data:                 t.Data,
		CompletionPercentage: t.CompletionPercentage,
		Status:               t.Status,
		Consents:             t.Consents,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
