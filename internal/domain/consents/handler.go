package consents

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"titulares-admin/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/consents", func(cr chi.Router) {
		cr.Post("/", createConsentHandler(svc))
		cr.Get("/", listConsentsHandler(svc))
		cr.Get("/{consentID}", getConsentHandler(svc))
		cr.Post("/{consentID}/publish", publishConsentHandler(svc))
	})
}

type createConsentRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type publishConsentRequest struct {
	Body string `json:"body"`
}

type consentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Version   string    `json:"version"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createConsentHandler godoc
// @Summary Crear documento de consentimiento
// @Tags consents
// @Accept json
// @Produce json
// @Param payload body createConsentRequest true "Título y texto"
// @Success 201 {object} consentResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /consents [post]
func createConsentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createConsentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{Title: req.Title, Body: req.Body})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toConsentResponse(c))
	}
}

// listConsentsHandler godoc
// @Summary Listar documentos de consentimiento
// @Tags consents
// @Produce json
// @Success 200 {array} consentResponse
// @Failure 401 {string} string "unauthorized"
// @Router /consents [get]
func listConsentsHandler(svc *Service) http.HandlerFunc {
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

		out := make([]consentResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toConsentResponse(c))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getConsentHandler godoc
// @Summary Obtener documento de consentimiento
// @Tags consents
// @Produce json
// @Param consentID path string true "ID del documento"
// @Success 200 {object} consentResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "consent not found"
// @Router /consents/{consentID} [get]
func getConsentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "consentID"))
		if err != nil {
			http.Error(w, "consent not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toConsentResponse(c))
	}
}

// publishConsentHandler godoc
// @Summary Publicar una versión nueva del documento
// @Description Reemplaza el texto e incrementa la versión. Las aceptaciones previas conservan su versión.
// @Tags consents
// @Accept json
// @Produce json
// @Param consentID path string true "ID del documento"
// @Param payload body publishConsentRequest true "Texto nuevo"
// @Success 200 {object} consentResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "consent not found"
// @Router /consents/{consentID}/publish [post]
func publishConsentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req publishConsentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		c, err := svc.Publish(r.Context(), chi.URLParam(r, "consentID"), req.Body)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "consent not found", http.StatusNotFound)
				return
			}
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toConsentResponse(c))
	}
}

func toConsentResponse(c ConsentDocument) consentResponse {
	return consentResponse{
		ID:        c.ID,
		Title:     c.Title,
		Body:      c.Body,
		Version:   c.Version,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
