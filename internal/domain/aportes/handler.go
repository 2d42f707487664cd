package aportes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"titulares-admin/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Tope para el comprobante subido desde el portal.
const maxReceiptBytes = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/aportes", func(ar chi.Router) {
		ar.Get("/", listAportesHandler(svc))
		ar.Get("/{aporteID}", getAporteHandler(svc))
		ar.Post("/{aporteID}/approve", approveAporteHandler(svc))
		ar.Post("/{aporteID}/reject", rejectAporteHandler(svc))
	})
}

// RegisterPortalRoutes registra el alta de aportes desde el portal del
// titular. No pasa por el middleware de staff.
func RegisterPortalRoutes(r chi.Router, svc *Service) {
	r.Post("/portal/{accessKey}/aportes", portalRegisterAporteHandler(svc))
}

type aporteResponse struct {
	ID          string     `json:"id"`
	TitularID   string     `json:"titular_id"`
	PlanID      *string    `json:"plan_id,omitempty"`
	Amount      float64    `json:"amount"`
	Currency    string     `json:"currency"`
	Period      string     `json:"period"`
	ReceiptPath string     `json:"receipt_path,omitempty"`
	Status      Status     `json:"status"`
	ReviewedBy  string     `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type approveAporteRequest struct {
	PlanID string `json:"plan_id"`
}

type rejectAporteRequest struct {
	Note string `json:"note"`
}

type registerAporteRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Period   string  `json:"period"`
}

// listAportesHandler godoc
// @Summary Listar aportes
// @Description Filtra por estado (?status=pending|approved|rejected, default pending) o por titular (?titular_id=).
// @Tags aportes
// @Produce json
// @Param status query string false "Estado" Enums(pending, approved, rejected)
// @Param titular_id query string false "ID del titular"
// @Success 200 {array} aporteResponse
// @Failure 400 {string} string "invalid status"
// @Failure 401 {string} string "unauthorized"
// @Router /aportes [get]
func listAportesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			items []Aporte
			err   error
		)
		if titularID := r.URL.Query().Get("titular_id"); titularID != "" {
			items, err = svc.ListByTitular(r.Context(), titularID)
		} else {
			status := Status(r.URL.Query().Get("status"))
			if status == "" {
				status = StatusPending
			}
			items, err = svc.ListByStatus(r.Context(), status)
		}
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]aporteResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAporteResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getAporteHandler godoc
// @Summary Obtener aporte
// @Tags aportes
// @Produce json
// @Param aporteID path string true "ID del aporte"
// @Success 200 {object} aporteResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "aporte not found"
// @Router /aportes/{aporteID} [get]
func getAporteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "aporteID"))
		if err != nil {
			http.Error(w, "aporte not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toAporteResponse(a))
	}
}

// approveAporteHandler godoc
// @Summary Aprobar aporte
// @Description Pasa un aporte pending a approved, opcionalmente asociándolo a un plan activo.
// @Tags aportes
// @Accept json
// @Produce json
// @Param aporteID path string true "ID del aporte"
// @Param payload body approveAporteRequest false "Plan opcional"
// @Success 200 {object} aporteResponse
// @Failure 400 {string} string "invalid plan"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "aporte not found"
// @Failure 409 {string} string "aporte already reviewed"
// @Router /aportes/{aporteID}/approve [post]
func approveAporteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req approveAporteRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		a, err := svc.Approve(r.Context(), chi.URLParam(r, "aporteID"), claims.UserID, req.PlanID)
		if err != nil {
			writeReviewError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAporteResponse(a))
	}
}

// rejectAporteHandler godoc
// @Summary Rechazar aporte
// @Tags aportes
// @Accept json
// @Produce json
// @Param aporteID path string true "ID del aporte"
// @Param payload body rejectAporteRequest false "Motivo"
// @Success 200 {object} aporteResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "aporte not found"
// @Failure 409 {string} string "aporte already reviewed"
// @Router /aportes/{aporteID}/reject [post]
func rejectAporteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req rejectAporteRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		a, err := svc.Reject(r.Context(), chi.URLParam(r, "aporteID"), claims.UserID, req.Note)
		if err != nil {
			writeReviewError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAporteResponse(a))
	}
}

// portalRegisterAporteHandler godoc
// @Summary Declarar un aporte desde el portal
// @Description Acepta JSON (amount, currency, period) o multipart/form-data con esos campos más un archivo "receipt". El aporte queda pending hasta la revisión del staff.
// @Tags portal
// @Accept json
// @Accept mpfd
// @Produce json
// @Param accessKey path string true "Access key del portal"
// @Success 201 {object} aporteResponse
// @Failure 400 {string} string "datos inválidos"
// @Failure 404 {string} string "titular not found"
// @Router /portal/{accessKey}/aportes [post]
func portalRegisterAporteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeRegisterAporte(w, r)
		if !ok {
			return
		}

		a, err := svc.RegisterFromPortal(r.Context(), chi.URLParam(r, "accessKey"), in)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "titular not found", http.StatusNotFound)
				return
			}
			http.Error(w, "invalid input", http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAporteResponse(a))
	}
}

// decodeRegisterAporte soporta JSON puro y multipart con comprobante.
func decodeRegisterAporte(w http.ResponseWriter, r *http.Request) (RegisterInput, bool) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/") {
		if err := r.ParseMultipartForm(maxReceiptBytes); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return RegisterInput{}, false
		}

		amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
		if err != nil {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return RegisterInput{}, false
		}

		in := RegisterInput{
			Amount:   amount,
			Currency: r.FormValue("currency"),
			Period:   r.FormValue("period"),
		}

		if src, fh, err := r.FormFile("receipt"); err == nil {
			content, rerr := io.ReadAll(io.LimitReader(src, maxReceiptBytes))
			_ = src.Close()
			if rerr == nil && len(content) > 0 {
				in.Receipt = &Receipt{Filename: fh.Filename, Content: content}
			}
		}

		return in, true
	}

	var req registerAporteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return RegisterInput{}, false
	}

	return RegisterInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Period:   req.Period,
	}, true
}

func writeReviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "aporte not found", http.StatusNotFound)
	case errors.Is(err, ErrAlreadyReviewed):
		http.Error(w, "aporte already reviewed", http.StatusConflict)
	case errors.Is(err, ErrPlanInactive), errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid plan", http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAporteResponse(a Aporte) aporteResponse {
	return aporteResponse{
		ID:          a.ID,
		TitularID:   a.TitularID,
		PlanID:      a.PlanID,
		Amount:      a.Amount,
		Currency:    a.Currency,
		Period:      a.Period,
		ReceiptPath: a.ReceiptPath,
		Status:      a.Status,
		ReviewedBy:  a.ReviewedBy,
		ReviewedAt:  a.ReviewedAt,
		Note:        a.Note,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
