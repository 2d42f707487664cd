package projects

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"titulares-admin/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/projects", func(pr chi.Router) {
		pr.Post("/", createProjectHandler(svc))
		pr.Get("/", listProjectsHandler(svc))
		pr.Get("/{projectID}", getProjectHandler(svc))
	})
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// createProjectHandler godoc
// @Summary Crear proyecto
// @Tags projects
// @Accept json
// @Produce json
// @Param payload body createProjectRequest true "Datos del proyecto"
// @Success 201 {object} projectResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /projects [post]
func createProjectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toProjectResponse(p))
	}
}

// listProjectsHandler godoc
// @Summary Listar proyectos
// @Tags projects
// @Produce json
// @Success 200 {array} projectResponse
// @Failure 401 {string} string "unauthorized"
// @Router /projects [get]
func listProjectsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]projectResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toProjectResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getProjectHandler godoc
// @Summary Obtener proyecto
// @Tags projects
// @Produce json
// @Param projectID path string true "ID del proyecto"
// @Success 200 {object} projectResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "project not found"
// @Router /projects/{projectID} [get]
func getProjectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "projectID"))
		if err != nil {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toProjectResponse(p))
	}
}

func toProjectResponse(p Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
