package aportes

import "time"

// Status es el estado de revisión de un aporte.
// pending -> approved | rejected; los estados finales no se revisitan.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Aporte es una contribución económica declarada por un titular, con su
// comprobante opcional, pendiente de revisión por el staff.
type Aporte struct {
	ID        string
	TitularID string

	// PlanID se asigna recién al aprobar, si el staff lo asocia a un plan.
	PlanID *string

	Amount   float64
	Currency string
	// Period es el período declarado, en formato AAAA-MM.
	Period string

	// ReceiptPath es la ruta del comprobante en el almacenamiento de
	// archivos. Vacío si el titular no adjuntó comprobante.
	ReceiptPath string

	Status     Status
	ReviewedBy string
	ReviewedAt *time.Time
	// Note es el motivo de rechazo o el comentario del revisor.
	Note string

	CreatedAt time.Time
	UpdatedAt time.Time
}
