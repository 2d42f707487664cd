package titulares

import "time"

// Status refleja el avance de carga del titular, derivado de la completitud.
// @Enum pending, in_progress, complete
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// StatusFor deriva el estado a partir del porcentaje de completitud.
func StatusFor(percentage int) Status {
	switch {
	case percentage >= 100:
		return StatusComplete
	case percentage > 0:
		return StatusInProgress
	default:
		return StatusPending
	}
}

// ConsentAcceptance es un registro legal puntual de aceptación de un
// consentimiento. Append-only: nunca se muta ni se deduplica; aceptar dos
// veces el mismo documento produce dos registros, y está bien que así sea.
type ConsentAcceptance struct {
	ConsentID  string    `json:"consent_id"`
	Version    string    `json:"version"`
	AcceptedAt time.Time `json:"accepted_at"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
}

// Titular representa al beneficiario cuyos datos personales se recolectan.
type Titular struct {
	ID        string
	ProjectID string

	// FolderID y FolderVersion se fijan al alta. La versión es solo
	// informativa: el esquema puede evolucionar después y las claves viejas
	// en Data se toleran (las operaciones guiadas por esquema las ignoran,
	// nunca las borran).
	FolderID      string
	FolderVersion string

	FullName string
	Email    string

	AccessCode string // código de 6 dígitos para login del portal
	AccessKey  string // token de URL única del portal

	// Data es la bolsa clave→valor del formulario: escalares, salvo los
	// campos file cuyo valor es el path de almacenamiento.
	Data map[string]any

	CompletionPercentage int
	Status               Status

	Consents []ConsentAcceptance

	CreatedAt time.Time
	UpdatedAt time.Time
}
