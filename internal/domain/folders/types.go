package folders

import "strings"

// FieldType define los tipos de campo soportados por el esquema de una carpeta.
// @Enum text, textarea, email, number, date, datetime, select, file, section
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldDateTime FieldType = "datetime"
	FieldSelect   FieldType = "select"
	FieldFile     FieldType = "file"

	// FieldSection es un pseudo-campo: solo un encabezado visual.
	// No lleva datos; queda fuera de validación, completitud y permisos.
	FieldSection FieldType = "section"
)

// ParseFieldType normaliza el tipo crudo del esquema almacenado.
// Un tipo desconocido degrada a text: un esquema mal cargado no debe
// romper el formulario completo.
func ParseFieldType(s string) FieldType {
	switch t := FieldType(strings.ToLower(strings.TrimSpace(s))); t {
	case FieldText, FieldTextarea, FieldEmail, FieldNumber,
		FieldDate, FieldDateTime, FieldSelect, FieldFile, FieldSection:
		return t
	default:
		return FieldText
	}
}

// Ownership colapsa los tres booleanos del formato almacenado
// (filled_by_admin / editable_by_both / visible_only_for_admin) en un único
// estado. Las combinaciones ilegales dejan de ser representables.
type Ownership string

const (
	// OwnershipTitular: solo el titular carga el campo.
	OwnershipTitular Ownership = "titular"
	// OwnershipAdmin: lo carga el staff; el titular lo ve pero no debería editarlo.
	OwnershipAdmin Ownership = "admin"
	// OwnershipShared: lo pueden editar ambos.
	OwnershipShared Ownership = "shared"
	// OwnershipAdminHidden: el titular no lo ve ni puede escribirlo.
	OwnershipAdminHidden Ownership = "admin_hidden"
)

// ownershipFromFlags resuelve el estado a partir de los booleanos del formato
// almacenado. Prioridad: visible_only_for_admin > editable_by_both > filled_by_admin.
func ownershipFromFlags(filledByAdmin, editableByBoth, visibleOnlyForAdmin bool) Ownership {
	switch {
	case visibleOnlyForAdmin:
		return OwnershipAdminHidden
	case editableByBoth:
		return OwnershipShared
	case filledByAdmin:
		return OwnershipAdmin
	default:
		return OwnershipTitular
	}
}

// flags devuelve la representación en booleanos para el formato almacenado.
func (o Ownership) flags() (filledByAdmin, editableByBoth, visibleOnlyForAdmin bool) {
	switch o {
	case OwnershipAdmin:
		return true, false, false
	case OwnershipShared:
		return false, true, false
	case OwnershipAdminHidden:
		return false, false, true
	default:
		return false, false, false
	}
}
