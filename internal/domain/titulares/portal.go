package titulares

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"titulares-admin/internal/domain/folders"

	"github.com/go-chi/chi/v5"
)

// Tope por archivo subido desde el portal.
const maxUploadBytes = 10 << 20

// ConsentSource resuelve la versión vigente de un documento de
// consentimiento. Interfaz chica para no importar el módulo consents.
type ConsentSource interface {
	VersionOf(ctx context.Context, consentID string) (string, error)
}

// RegisterPortalRoutes registra las rutas de autoservicio del titular.
// No pasan por el middleware de staff: el titular se resuelve por access key.
func RegisterPortalRoutes(r chi.Router, svc *Service, consentsSrc ConsentSource) {
	r.Route("/portal", func(pr chi.Router) {
		pr.Post("/login", portalLoginHandler(svc))
		pr.Get("/{accessKey}", portalViewHandler(svc))
		pr.Post("/{accessKey}/data", portalSaveDataHandler(svc))
		pr.Post("/{accessKey}/consents/{consentID}", portalAcceptConsentHandler(svc, consentsSrc))
	})
}

type portalLoginRequest struct {
	Email      string `json:"email"`
	AccessCode string `json:"access_code"`
}

type portalLoginResponse struct {
	AccessKey string `json:"access_key"`
}

type portalViewResponse struct {
	FullName             string         `json:"full_name"`
	Schema               folders.Schema `json:"schema"`
	Data                 map[string]any `json:"data"`
	CompletionPercentage int            `json:"completion_percentage"`
	Status               Status         `json:"status"`
}

type portalSaveResponse struct {
	CompletionPercentage int `json:"completion_percentage"`
}

// portalLoginHandler godoc
// @Summary Login del titular por código
// @Description Intercambia email + código de 6 dígitos por la access key del portal.
// @Tags portal
// @Accept json
// @Produce json
// @Param payload body portalLoginRequest true "Credenciales"
// @Success 200 {object} portalLoginResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "titular not found"
// @Router /portal/login [post]
func portalLoginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req portalLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.PortalLogin(r.Context(), req.Email, req.AccessCode)
		if err != nil {
			// mismo 404 para código o email incorrectos: no filtramos cuál
			http.Error(w, "titular not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, portalLoginResponse{AccessKey: t.AccessKey})
	}
}

// portalViewHandler godoc
// @Summary Vista del formulario del titular
// @Description Devuelve el esquema sin campos visibles solo para staff, los datos propios (también filtrados) y la completitud.
// @Tags portal
// @Produce json
// @Param accessKey path string true "Access key del portal"
// @Success 200 {object} portalViewResponse
// @Failure 404 {string} string "titular not found"
// @Router /portal/{accessKey} [get]
func portalViewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.GetPortalView(r.Context(), chi.URLParam(r, "accessKey"))
		if err != nil {
			http.Error(w, "titular not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, portalViewResponse{
			FullName:             view.Titular.FullName,
			Schema:               view.Schema,
			Data:                 view.Data,
			CompletionPercentage: view.Titular.CompletionPercentage,
			Status:               view.Titular.Status,
		})
	}
}

// portalSaveDataHandler godoc
// @Summary Guardar datos del titular
// @Description Acepta JSON ({"data": {...}}) o multipart/form-data con un campo "data" (JSON) más archivos por field_name. Los campos visibles solo para staff se descartan del envío. 200 con la completitud nueva, o 422 con errores por campo.
// @Tags portal
// @Accept json
// @Accept mpfd
// @Produce json
// @Param accessKey path string true "Access key del portal"
// @Success 200 {object} portalSaveResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "titular not found"
// @Failure 422 {object} saveErrorsResponse
// @Router /portal/{accessKey}/data [post]
func portalSaveDataHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, files, ok := decodePortalSave(w, r)
		if !ok {
			return
		}

		res, err := svc.SavePortalData(r.Context(), chi.URLParam(r, "accessKey"), payload, files)
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

		writeJSON(w, http.StatusOK, portalSaveResponse{
			CompletionPercentage: res.Titular.CompletionPercentage,
		})
	}
}

// portalAcceptConsentHandler godoc
// @Summary Aceptar un consentimiento
// @Description Registra la aceptación con la versión vigente del documento, IP y user agent. Append-only: aceptaciones repetidas generan registros repetidos.
// @Tags portal
// @Produce json
// @Param accessKey path string true "Access key del portal"
// @Param consentID path string true "ID del documento de consentimiento"
// @Success 200 {object} portalSaveResponse
// @Failure 404 {string} string "titular not found / consent not found"
// @Router /portal/{accessKey}/consents/{consentID} [post]
func portalAcceptConsentHandler(svc *Service, consentsSrc ConsentSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consentID := chi.URLParam(r, "consentID")

		version, err := consentsSrc.VersionOf(r.Context(), consentID)
		if err != nil {
			http.Error(w, "consent not found", http.StatusNotFound)
			return
		}

		t, err := svc.AcceptConsent(r.Context(), chi.URLParam(r, "accessKey"), ConsentAcceptance{
			ConsentID: consentID,
			Version:   version,
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
		})
		if err != nil {
			http.Error(w, "titular not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, portalSaveResponse{
			CompletionPercentage: t.CompletionPercentage,
		})
	}
}

// decodePortalSave soporta los dos content types del portal: JSON puro y
// multipart (campo "data" con el JSON + archivos por field_name).
func decodePortalSave(w http.ResponseWriter, r *http.Request) (map[string]any, map[string]Upload, bool) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return nil, nil, false
		}

		payload := map[string]any{}
		if raw := r.FormValue("data"); strings.TrimSpace(raw) != "" {
			if err := json.Unmarshal([]byte(raw), &payload); err != nil {
				http.Error(w, "invalid json in data field", http.StatusBadRequest)
				return nil, nil, false
			}
		}

		files := map[string]Upload{}
		if r.MultipartForm != nil {
			for field, headers := range r.MultipartForm.File {
				if len(headers) == 0 {
					continue
				}
				fh := headers[0]

				src, err := fh.Open()
				if err != nil {
					continue
				}
				content, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
				_ = src.Close()
				if err != nil || len(content) == 0 {
					continue
				}

				files[field] = Upload{Filename: fh.Filename, Content: content}
			}
		}

		return payload, files, true
	}

	var req saveDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return nil, nil, false
	}
	if req.Data == nil {
		req.Data = map[string]any{}
	}

	return req.Data, nil, true
}

// clientIP confía en chi/middleware.RealIP, que ya normalizó RemoteAddr.
func clientIP(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 && !strings.HasSuffix(host, "]") {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
