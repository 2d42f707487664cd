package folders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccessSchema() Schema {
	return Schema{
		Version: "1",
		Sections: []Section{
			{
				Name: "Datos",
				Fields: []FieldDefinition{
					{Name: "nombre", Type: FieldText, Ownership: OwnershipTitular},
					{Name: "cuota", Type: FieldNumber, Ownership: OwnershipAdmin},
					{Name: "telefono", Type: FieldText, Ownership: OwnershipShared},
					{Name: "nota_interna", Type: FieldTextarea, Ownership: OwnershipAdminHidden},
					{Name: "", Type: FieldText, Ownership: OwnershipAdminHidden},
					{Name: "titulo", Type: FieldSection},
				},
			},
		},
	}
}

func TestStripHiddenFields(t *testing.T) {
	data := map[string]any{
		"nombre":       "Ana",
		"nota_interna": "no deberia pasar",
		"desconocido":  "se conserva",
	}

	out := StripHiddenFields(testAccessSchema(), data)

	assert.Equal(t, map[string]any{
		"nombre":      "Ana",
		"desconocido": "se conserva",
	}, out)

	// el original no se toca
	assert.Contains(t, data, "nota_interna")
}

func TestFilterAdminEditable(t *testing.T) {
	data := map[string]any{
		"nombre":       "Ana",          // solo titular: afuera
		"cuota":        float64(100),   // admin: pasa
		"telefono":     "11-5555-0000", // shared: pasa
		"nota_interna": "visible solo staff, pero editable por staff",
		"desconocido":  "afuera",
	}

	out := FilterAdminEditable(testAccessSchema(), data)

	assert.Equal(t, map[string]any{
		"cuota":        float64(100),
		"telefono":     "11-5555-0000",
		"nota_interna": "visible solo staff, pero editable por staff",
	}, out)
}

func TestTitularView_HidesAdminOnlyFields(t *testing.T) {
	view := TitularView(testAccessSchema())

	require.Len(t, view.Sections, 1)
	names := make([]string, 0)
	for _, f := range view.Sections[0].Fields {
		names = append(names, f.Name)
	}
	// el encabezado section y los campos no ocultos quedan; admin_hidden no
	assert.Equal(t, []string{"nombre", "cuota", "telefono", "titulo"}, names)
	assert.Equal(t, "1", view.Version)
}
