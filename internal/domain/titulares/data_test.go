package titulares

import (
	"context"
	"testing"

	"titulares-admin/internal/domain/folders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeSchema() folders.Schema {
	return folders.Schema{
		Sections: []folders.Section{
			{
				Name: "Datos",
				Fields: []folders.FieldDefinition{
					{Name: "nombre", Type: folders.FieldText, Required: true},
					{Name: "email", Type: folders.FieldEmail},
					{Name: "edad", Type: folders.FieldNumber},
					{Name: "categoria", Type: folders.FieldSelect, Options: []string{"monotributo", "relacion_dependencia"}},
					{Name: "dni_scan", Type: folders.FieldFile, Validation: []string{"mimes:pdf,jpg"}},
				},
			},
		},
	}
}

func TestValidateAndMerge_PartialSavePreservesExisting(t *testing.T) {
	existing := map[string]any{
		"nombre": "Ana",
		"email":  "ana@example.org",
	}

	merged, errs := ValidateAndMerge(context.Background(), mergeSchema(), existing, map[string]any{
		"edad": float64(34),
	})

	require.Nil(t, errs)
	assert.Equal(t, map[string]any{
		"nombre": "Ana",
		"email":  "ana@example.org",
		"edad":   float64(34),
	}, merged)

	// el mapa original no se muta
	assert.NotContains(t, existing, "edad")
}

func TestValidateAndMerge_RequiredAbsentKeyPasses(t *testing.T) {
	// "nombre" es required pero no viene en el envío: guardado parcial válido
	merged, errs := ValidateAndMerge(context.Background(), mergeSchema(), map[string]any{}, map[string]any{
		"email": "ana@example.org",
	})

	require.Nil(t, errs)
	assert.Equal(t, "ana@example.org", merged["email"])
}

func TestValidateAndMerge_RequiredEmptyValueFails(t *testing.T) {
	existing := map[string]any{"nombre": "Ana"}

	merged, errs := ValidateAndMerge(context.Background(), mergeSchema(), existing, map[string]any{
		"nombre": "",
	})

	require.NotNil(t, errs)
	assert.Contains(t, errs, "nombre")
	// ante error, existing vuelve intacto
	assert.Equal(t, existing, merged)
}

func TestValidateAndMerge_FormatErrors(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
		field   string
	}{
		{"email inválido", map[string]any{"email": "no-es-email"}, "email"},
		{"numérico inválido", map[string]any{"edad": "treinta"}, "edad"},
		{"opción fuera del select", map[string]any{"categoria": "otro"}, "categoria"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := ValidateAndMerge(context.Background(), mergeSchema(), map[string]any{}, tc.payload)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tc.field)
			assert.NotEmpty(t, errs[tc.field])
		})
	}
}

func TestValidateAndMerge_OptionalEmptyFormatPasses(t *testing.T) {
	// campo opcional con valor vacío: omitempty evita el chequeo de formato
	merged, errs := ValidateAndMerge(context.Background(), mergeSchema(), map[string]any{}, map[string]any{
		"email": "",
	})

	require.Nil(t, errs)
	assert.Equal(t, "", merged["email"])
}

func TestValidateAndMerge_UnknownKeysDropped(t *testing.T) {
	merged, errs := ValidateAndMerge(context.Background(), mergeSchema(), map[string]any{}, map[string]any{
		"email":       "ana@example.org",
		"desconocido": "se descarta",
	})

	require.Nil(t, errs)
	assert.NotContains(t, merged, "desconocido")
}

func TestValidateAndMerge_FilePathForceCopied(t *testing.T) {
	// el paso de uploads inyecta el path; no pasa por el validador escalar
	merged, errs := ValidateAndMerge(context.Background(), mergeSchema(), map[string]any{}, map[string]any{
		"dni_scan": "titulares/t1/dni_scan_123.pdf",
	})

	require.Nil(t, errs)
	assert.Equal(t, "titulares/t1/dni_scan_123.pdf", merged["dni_scan"])
}

func TestValidateAndMerge_NumericValueAccepted(t *testing.T) {
	// el número llega como float64 del JSON; se valida stringificado
	merged, errs := ValidateAndMerge(context.Background(), mergeSchema(), map[string]any{}, map[string]any{
		"edad": float64(42),
	})

	require.Nil(t, errs)
	assert.Equal(t, float64(42), merged["edad"])
}

func TestBuildRules(t *testing.T) {
	rules := BuildRules(mergeSchema())

	assert.Equal(t, "required", rules["nombre"])
	assert.Equal(t, "omitempty,email", rules["email"])
	assert.Equal(t, "omitempty,numeric", rules["edad"])
	assert.Equal(t, "omitempty,oneof='monotributo' 'relacion_dependencia'", rules["categoria"])
	// los campos file no llevan reglas escalares
	assert.NotContains(t, rules, "dni_scan")
}
