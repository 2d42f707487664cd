package titulares

import (
	"testing"

	"titulares-admin/internal/domain/folders"

	"github.com/stretchr/testify/assert"
)

func completionSchema(fields ...folders.FieldDefinition) folders.Schema {
	return folders.Schema{
		Sections: []folders.Section{{Name: "Datos", Fields: fields}},
	}
}

func TestCompletionPercentage(t *testing.T) {
	text := func(name string) folders.FieldDefinition {
		return folders.FieldDefinition{Name: name, Type: folders.FieldText}
	}

	cases := []struct {
		name   string
		schema folders.Schema
		data   map[string]any
		expect int
	}{
		{
			name:   "esquema vacío: vacuamente completo",
			schema: folders.Schema{},
			data:   map[string]any{"lo que sea": "x"},
			expect: 100,
		},
		{
			name:   "sin datos",
			schema: completionSchema(text("a"), text("b")),
			data:   nil,
			expect: 0,
		},
		{
			name:   "mitad cargada redondea exacto",
			schema: completionSchema(text("a"), text("b")),
			data:   map[string]any{"a": "x"},
			expect: 50,
		},
		{
			name:   "un tercio redondea a 33",
			schema: completionSchema(text("a"), text("b"), text("c")),
			data:   map[string]any{"a": "x"},
			expect: 33,
		},
		{
			name:   "dos tercios redondea a 67",
			schema: completionSchema(text("a"), text("b"), text("c")),
			data:   map[string]any{"a": "x", "b": "y"},
			expect: 67,
		},
		{
			name: "secciones, sin nombre y admin_hidden no cuentan",
			schema: completionSchema(
				folders.FieldDefinition{Name: "titulo", Type: folders.FieldSection},
				folders.FieldDefinition{Name: "", Type: folders.FieldText},
				folders.FieldDefinition{Name: "oculto", Type: folders.FieldText, Ownership: folders.OwnershipAdminHidden},
				text("a"),
			),
			data:   map[string]any{"a": "x"},
			expect: 100,
		},
		{
			name:   "cero y false cuentan como cargados",
			schema: completionSchema(text("a"), text("b")),
			data:   map[string]any{"a": float64(0), "b": false},
			expect: 100,
		},
		{
			name:   "string vacío y nil no cuentan",
			schema: completionSchema(text("a"), text("b")),
			data:   map[string]any{"a": "", "b": nil},
			expect: 0,
		},
		{
			name:   "claves viejas fuera del esquema se ignoran",
			schema: completionSchema(text("a")),
			data:   map[string]any{"a": "x", "campo_viejo": "y"},
			expect: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, CompletionPercentage(tc.schema, tc.data))
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusPending, StatusFor(0))
	assert.Equal(t, StatusInProgress, StatusFor(1))
	assert.Equal(t, StatusInProgress, StatusFor(99))
	assert.Equal(t, StatusComplete, StatusFor(100))
}
