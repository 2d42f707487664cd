package titulares

import (
	"math"

	"titulares-admin/internal/domain/folders"
)

// CompletionPercentage calcula qué porcentaje del formulario asignado tiene
// cargado el titular, en [0, 100].
//
// Cuentan todos los campos del recorrido canónico salvo las secciones, los
// campos sin nombre y los admin_hidden (un campo que el titular no ve no
// puede contar en su contra). Un valor cuenta como cargado si está presente,
// no es nil y no es string vacío; 0 y false cuentan como cargados.
//
// Redondeo al entero más cercano, empates lejos de cero. Con denominador
// cero (esquema sin campos contables) el resultado es 100: un formulario
// vacío está vacuamente completo. Es un caso borde deliberado.
func CompletionPercentage(s folders.Schema, data map[string]any) int {
	total := 0
	filled := 0

	for _, f := range s.Fields() {
		if f.Type == folders.FieldSection || f.Name == "" || f.VisibleOnlyForAdmin() {
			continue
		}
		total++
		if isFilled(data[f.Name]) {
			filled++
		}
	}

	if total == 0 {
		return 100
	}

	return int(math.Round(float64(filled) / float64(total) * 100))
}

func isFilled(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}
	return true
}
