package planes

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"titulares-admin/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/planes", func(pr chi.Router) {
		pr.Post("/", createPlanHandler(svc))
		pr.Get("/", listPlanesHandler(svc))
		pr.Get("/{planID}", getPlanHandler(svc))
		pr.Post("/{planID}/deactivate", deactivatePlanHandler(svc))
	})
}

type createPlanRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	MonthlyAmount float64 `json:"monthly_amount"`
	Currency      string  `json:"currency"`
}

type planResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	MonthlyAmount float64   `json:"monthly_amount"`
	Currency      string    `json:"currency"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// createPlanHandler godoc
// @Summary Crear plan
// @Tags planes
// @Accept json
// @Produce json
// @Param payload body createPlanRequest true "Datos del plan"
// @Success 201 {object} planResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /planes [post]
func createPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:          req.Name,
			Description:   req.Description,
			MonthlyAmount: req.MonthlyAmount,
			Currency:      req.Currency,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPlanResponse(p))
	}
}

// listPlanesHandler godoc
// @Summary Listar planes
// @Tags planes
// @Produce json
// @Success 200 {array} planResponse
// @Failure 401 {string} string "unauthorized"
// @Router /planes [get]
func listPlanesHandler(svc *Service) http.HandlerFunc {
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

		out := make([]planResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPlanResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPlanHandler godoc
// @Summary Obtener plan
// @Tags planes
// @Produce json
// @Param planID path string true "ID del plan"
// @Success 200 {object} planResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "plan not found"
// @Router /planes/{planID} [get]
func getPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "planID"))
		if err != nil {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPlanResponse(p))
	}
}

// deactivatePlanHandler godoc
// @Summary Desactivar plan
// @Description Deja el plan fuera de uso para nuevos aportes. Idempotente.
// @Tags planes
// @Produce json
// @Param planID path string true "ID del plan"
// @Success 200 {object} planResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "plan not found"
// @Router /planes/{planID}/deactivate [post]
func deactivatePlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Deactivate(r.Context(), chi.URLParam(r, "planID"))
		if err != nil {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPlanResponse(p))
	}
}

func toPlanResponse(p Plan) planResponse {
	return planResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		MonthlyAmount: p.MonthlyAmount,
		Currency:      p.Currency,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
