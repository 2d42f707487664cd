package folders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchema_SectionsOrdered(t *testing.T) {
	raw := map[string]any{
		"version": "3",
		"sections": []any{
			map[string]any{
				"name":  "Laboral",
				"order": float64(2),
				"fields": []any{
					map[string]any{"field_name": "empresa", "type": "text", "order": float64(1)},
					map[string]any{"field_name": "cargo", "type": "text", "order": float64(0)},
				},
			},
			map[string]any{
				"name":  "Personal",
				"order": float64(1),
				"fields": []any{
					map[string]any{"field_name": "dni", "type": "text"},
				},
			},
		},
	}

	s := ParseSchema(raw)

	require.Len(t, s.Sections, 2)
	assert.Equal(t, "3", s.Version)
	assert.Equal(t, "Personal", s.Sections[0].Name)
	assert.Equal(t, "Laboral", s.Sections[1].Name)

	names := make([]string, 0)
	for _, f := range s.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"dni", "cargo", "empresa"}, names)
}

func TestParseSchema_LegacyFieldsList(t *testing.T) {
	for name, raw := range map[string]any{
		"mapa con fields": map[string]any{
			"fields": []any{
				map[string]any{"field_name": "nombre", "type": "text"},
			},
		},
		"lista directa": []any{
			map[string]any{"field_name": "nombre", "type": "text"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			s := ParseSchema(raw)

			require.Len(t, s.Sections, 1)
			assert.Equal(t, "Datos", s.Sections[0].Name)
			assert.Equal(t, 0, s.Sections[0].Order)
			require.Len(t, s.Sections[0].Fields, 1)
			assert.Equal(t, "nombre", s.Sections[0].Fields[0].Name)
		})
	}
}

func TestParseSchema_MalformedIsEmpty(t *testing.T) {
	for name, raw := range map[string]any{
		"nil":             nil,
		"string":          "no soy un esquema",
		"numero":          float64(42),
		"mapa sin listas": map[string]any{"version": "1"},
		"lista vacia":     []any{},
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, ParseSchema(raw).IsEmpty())
		})
	}
}

func TestParseSchema_FieldDefaults(t *testing.T) {
	raw := map[string]any{
		"sections": []any{
			map[string]any{
				"fields": []any{
					map[string]any{"field_name": "x", "type": "martian"},
					"no soy un campo",
				},
			},
		},
	}

	s := ParseSchema(raw)

	require.Len(t, s.Sections, 1)
	assert.Equal(t, "Sección", s.Sections[0].Name)
	require.Len(t, s.Sections[0].Fields, 1)
	// tipo desconocido degrada a text
	assert.Equal(t, FieldText, s.Sections[0].Fields[0].Type)
	assert.Equal(t, OwnershipTitular, s.Sections[0].Fields[0].Ownership)
}

func TestParseSchema_OwnershipPriority(t *testing.T) {
	cases := []struct {
		name   string
		field  map[string]any
		expect Ownership
	}{
		{"default", map[string]any{}, OwnershipTitular},
		{"admin", map[string]any{"filled_by_admin": true}, OwnershipAdmin},
		{"shared", map[string]any{"filled_by_admin": true, "editable_by_both": true}, OwnershipShared},
		{"hidden gana a todo", map[string]any{
			"filled_by_admin":        true,
			"editable_by_both":       true,
			"visible_only_for_admin": true,
		}, OwnershipAdminHidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.field["field_name"] = "x"
			tc.field["type"] = "text"
			s := ParseSchema([]any{tc.field})
			require.Len(t, s.Fields(), 1)
			assert.Equal(t, tc.expect, s.Fields()[0].Ownership)
		})
	}
}

func TestSchema_JSONRoundTrip(t *testing.T) {
	original := Schema{
		Version: "2",
		Sections: []Section{
			{
				Name:  "Datos",
				Order: 0,
				Fields: []FieldDefinition{
					{Name: "email", Type: FieldEmail, Required: true, Ownership: OwnershipTitular, Order: 0},
					{Name: "cuota", Type: FieldNumber, Ownership: OwnershipShared, Order: 1},
					{Name: "nota_interna", Type: FieldTextarea, Ownership: OwnershipAdminHidden, Order: 2},
					{Name: "categoria", Type: FieldSelect, Options: []string{"a", "b"}, Ownership: OwnershipAdmin, Order: 3},
				},
			},
		},
	}

	b, err := json.Marshal(original)
	require.NoError(t, err)

	// el wire format conserva los tres booleanos heredados
	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	sections := doc["sections"].([]any)
	fields := sections[0].(map[string]any)["fields"].([]any)
	hidden := fields[2].(map[string]any)
	assert.Equal(t, true, hidden["visible_only_for_admin"])
	shared := fields[1].(map[string]any)
	assert.Equal(t, true, shared["editable_by_both"])

	var parsed Schema
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.Equal(t, original.Version, parsed.Version)
	require.Len(t, parsed.Fields(), 4)
	assert.Equal(t, original.Fields(), parsed.Fields())
}

func TestSchema_UnmarshalGarbageDegradesToEmpty(t *testing.T) {
	var s Schema
	require.NoError(t, json.Unmarshal([]byte(`"garbage"`), &s))
	assert.True(t, s.IsEmpty())
}
