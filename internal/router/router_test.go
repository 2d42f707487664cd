package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"titulares-admin/internal/router"
)

func TestHTTP_EndToEnd_PortalFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	adminID := "admin-1"

	// 1) Staff crea proyecto y carpeta con esquema
	projectID := createResource(t, ts.URL, "/projects", adminID, map[string]any{
		"name": "Plan Hogar",
	})

	folderID := createResource(t, ts.URL, "/folders", adminID, map[string]any{
		"project_id": projectID,
		"name":       "Carpeta básica",
		"schema": map[string]any{
			"version": "1",
			"sections": []any{
				map[string]any{
					"name":  "Datos personales",
					"order": 0,
					"fields": []any{
						map[string]any{"field_name": "nombre", "type": "text", "required": true, "order": 0},
						map[string]any{"field_name": "email_contacto", "type": "email", "order": 1},
						map[string]any{
							"field_name":             "evaluacion_interna",
							"type":                   "textarea",
							"visible_only_for_admin": true,
							"order":                  2,
						},
					},
				},
			},
		},
	})

	// 2) Staff da de alta un titular; recibe access code y key
	var titular struct {
		ID         string `json:"id"`
		AccessCode string `json:"access_code"`
		AccessKey  string `json:"access_key"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/titulares", adminID, map[string]any{
			"project_id": projectID,
			"folder_id":  folderID,
			"full_name":  "Ana Pérez",
			"email":      "ana@example.org",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create titular, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &titular)
		if titular.AccessKey == "" || len(titular.AccessCode) != 6 {
			t.Fatalf("missing portal access data: %+v", titular)
		}
	}

	// 3) Sin auth de staff no se ve nada
	{
		st, _ := doReq(t, ts.URL, "GET", "/titulares/"+titular.ID, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without staff auth, got %d", st)
		}
	}

	// 4) Login del portal por email + código
	{
		st, body := doReq(t, ts.URL, "POST", "/portal/login", "", map[string]any{
			"email":       "ana@example.org",
			"access_code": titular.AccessCode,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 portal login, got %d body=%s", st, string(body))
		}
		var resp struct {
			AccessKey string `json:"access_key"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.AccessKey != titular.AccessKey {
			t.Fatalf("login returned wrong access key")
		}
	}

	// 5) La vista del portal no incluye el campo oculto
	{
		st, body := doReq(t, ts.URL, "GET", "/portal/"+titular.AccessKey, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 portal view, got %d body=%s", st, string(body))
		}
		if bytes.Contains(body, []byte("evaluacion_interna")) {
			t.Fatalf("hidden field leaked into portal view: %s", string(body))
		}
	}

	// 6) Guardado con email inválido => 422 con errores por campo
	{
		st, body := doReq(t, ts.URL, "POST", "/portal/"+titular.AccessKey+"/data", "", map[string]any{
			"data": map[string]any{"email_contacto": "no-es-email"},
		})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 invalid email, got %d body=%s", st, string(body))
		}
		var resp struct {
			Errors map[string][]string `json:"errors"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Errors["email_contacto"]) == 0 {
			t.Fatalf("expected field error, got %s", string(body))
		}
	}

	// 7) Guardado parcial válido => completitud 50 (2 campos visibles, 1 cargado)
	{
		st, body := doReq(t, ts.URL, "POST", "/portal/"+titular.AccessKey+"/data", "", map[string]any{
			"data": map[string]any{"nombre": "Ana Pérez"},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 portal save, got %d body=%s", st, string(body))
		}
		var resp struct {
			CompletionPercentage int `json:"completion_percentage"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.CompletionPercentage != 50 {
			t.Fatalf("expected 50%% completion, got %d", resp.CompletionPercentage)
		}
	}

	// 8) El staff edita el campo oculto; el titular sigue sin verlo
	{
		st, body := doReq(t, ts.URL, "PATCH", "/titulares/"+titular.ID+"/data", adminID, map[string]any{
			"data": map[string]any{"evaluacion_interna": "apto"},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin save, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/portal/"+titular.AccessKey, "", nil)
		if st != http.StatusOK || bytes.Contains(body, []byte("apto")) {
			t.Fatalf("hidden value visible in portal: %d %s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/titulares/"+titular.ID, adminID, nil)
		if st != http.StatusOK || !bytes.Contains(body, []byte("apto")) {
			t.Fatalf("staff view missing hidden value: %d %s", st, string(body))
		}
	}

	// 9) Consentimiento: staff publica, titular acepta dos veces (append-only)
	consentID := createResource(t, ts.URL, "/consents", adminID, map[string]any{
		"title": "Tratamiento de datos",
		"body":  "Acepto el tratamiento de mis datos personales.",
	})
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "POST", "/portal/"+titular.AccessKey+"/consents/"+consentID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept consent, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/titulares/"+titular.ID, adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get titular, got %d", st)
		}
		var resp struct {
			Consents []struct {
				ConsentID string `json:"consent_id"`
				Version   string `json:"version"`
			} `json:"consents"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Consents) != 2 {
			t.Fatalf("expected 2 acceptance records, got %d body=%s", len(resp.Consents), string(body))
		}
		if resp.Consents[0].Version != "1" {
			t.Fatalf("expected acceptance against version 1, got %q", resp.Consents[0].Version)
		}
	}
}

func TestHTTP_EndToEnd_AportesReview(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	adminID := "admin-1"

	projectID := createResource(t, ts.URL, "/projects", adminID, map[string]any{"name": "Plan Hogar"})
	folderID := createResource(t, ts.URL, "/folders", adminID, map[string]any{
		"project_id": projectID,
		"name":       "Carpeta",
	})

	var titular struct {
		ID        string `json:"id"`
		AccessKey string `json:"access_key"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/titulares", adminID, map[string]any{
			"project_id": projectID,
			"folder_id":  folderID,
			"full_name":  "Ana Pérez",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create titular, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &titular)
	}

	planID := createResource(t, ts.URL, "/planes", adminID, map[string]any{
		"name":           "Plan A",
		"monthly_amount": 1500.0,
	})

	// Titular declara un aporte desde el portal
	var aporteID string
	{
		st, body := doReq(t, ts.URL, "POST", "/portal/"+titular.AccessKey+"/aportes", "", map[string]any{
			"amount": 1500.0,
			"period": "2026-07",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 register aporte, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "pending" {
			t.Fatalf("expected pending aporte, got %q", resp.Status)
		}
		aporteID = resp.ID
	}

	// Aparece en la bandeja pending del staff
	{
		st, body := doReq(t, ts.URL, "GET", "/aportes", adminID, nil)
		if st != http.StatusOK || !bytes.Contains(body, []byte(aporteID)) {
			t.Fatalf("expected aporte in pending list: %d %s", st, string(body))
		}
	}

	// Aprobación con plan
	{
		st, body := doReq(t, ts.URL, "POST", "/aportes/"+aporteID+"/approve", adminID, map[string]any{
			"plan_id": planID,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string  `json:"status"`
			PlanID *string `json:"plan_id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "approved" || resp.PlanID == nil || *resp.PlanID != planID {
			t.Fatalf("unexpected approved aporte: %s", string(body))
		}
	}

	// Segunda revisión => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/aportes/"+aporteID+"/reject", adminID, map[string]any{
			"note": "tarde",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 re-review, got %d", st)
		}
	}
}

func createResource(t *testing.T, baseURL, path, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
