package folders

import (
	"encoding/json"
	"sort"
	"strings"
)

// FieldDefinition describe un campo configurable del formulario.
// Es un value type: una vez parseado no se muta.
type FieldDefinition struct {
	Name       string
	Label      string
	Type       FieldType
	Required   bool
	Validation []string // tokens crudos estilo "required", "max:100", "mimes:pdf,jpg"
	Options    []string // solo para select
	Ownership  Ownership
	HelpText   string
	Order      int
}

// Section agrupa campos bajo un nombre, con orden propio.
type Section struct {
	Name   string
	Order  int
	Fields []FieldDefinition
}

// Schema es la plantilla de formulario de una carpeta: secciones ordenadas
// de definiciones de campo, versionada por un string libre del caller.
type Schema struct {
	Version      string
	LastModified string
	Sections     []Section
}

const legacySectionName = "Datos"

// ParseSchema interpreta una estructura cruda (JSON deserializado, no
// confiable) y produce un Schema ordenado.
//
//   - {sections: [...]}: forma moderna; secciones ordenadas por order
//     (el índice de lista si falta), campos ordenados por order.
//   - {fields: [...]} o directamente una lista: forma legacy; se envuelve
//     en una única sección sintética "Datos" con order 0.
//   - cualquier otra cosa: esquema vacío.
//
// Nunca devuelve error: un esquema malformado degrada a vacío (fail-open),
// y una entrada malformada dentro de una lista simplemente se saltea.
func ParseSchema(raw any) Schema {
	s := Schema{}

	m, isMap := raw.(map[string]any)
	if isMap {
		s.Version = rawString(m["version"])
		s.LastModified = rawString(m["last_modified"])

		if secs, ok := m["sections"].([]any); ok {
			for i, entry := range secs {
				s.Sections = append(s.Sections, parseSection(entry, i))
			}
			sortSchema(&s)
			return s
		}

		if fields, ok := m["fields"].([]any); ok && len(fields) > 0 {
			s.Sections = []Section{legacySection(fields)}
			sortSchema(&s)
			return s
		}

		return s
	}

	if list, ok := raw.([]any); ok && len(list) > 0 {
		s.Sections = []Section{legacySection(list)}
		sortSchema(&s)
	}

	return s
}

// Fields aplana todas las secciones en el orden canónico
// (sección por order, campo por order; orden estable ante empates).
// Completitud, reglas de validación y permisos consumen ESTA lista;
// ninguno deriva su propio recorrido.
func (s Schema) Fields() []FieldDefinition {
	out := make([]FieldDefinition, 0)
	for _, sec := range s.Sections {
		out = append(out, sec.Fields...)
	}
	return out
}

// IsEmpty indica si el esquema no tiene secciones.
func (s Schema) IsEmpty() bool {
	return len(s.Sections) == 0
}

func legacySection(fields []any) Section {
	sec := Section{Name: legacySectionName, Order: 0}
	for _, entry := range fields {
		if f, ok := parseField(entry); ok {
			sec.Fields = append(sec.Fields, f)
		}
	}
	return sec
}

func parseSection(raw any, index int) Section {
	sec := Section{Name: "Sección", Order: index}

	m, ok := raw.(map[string]any)
	if !ok {
		return sec
	}

	if name := strings.TrimSpace(rawString(m["name"])); name != "" {
		sec.Name = name
	}
	if n, ok := rawInt(m["order"]); ok {
		sec.Order = n
	}

	if fields, ok := m["fields"].([]any); ok {
		for _, entry := range fields {
			if f, ok := parseField(entry); ok {
				sec.Fields = append(sec.Fields, f)
			}
		}
	}

	return sec
}

func parseField(raw any) (FieldDefinition, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return FieldDefinition{}, false
	}

	f := FieldDefinition{
		Name:       strings.TrimSpace(rawString(m["field_name"])),
		Label:      rawString(m["label"]),
		Type:       ParseFieldType(rawString(m["type"])),
		Required:   rawBool(m["required"]),
		Validation: rawStringList(m["validation"]),
		HelpText:   rawString(m["help_text"]),
		Ownership: ownershipFromFlags(
			rawBool(m["filled_by_admin"]),
			rawBool(m["editable_by_both"]),
			rawBool(m["visible_only_for_admin"]),
		),
	}
	if n, ok := rawInt(m["order"]); ok {
		f.Order = n
	}
	if f.Type == FieldSelect {
		f.Options = rawStringList(m["options"])
	}

	return f, true
}

func sortSchema(s *Schema) {
	sort.SliceStable(s.Sections, func(i, j int) bool {
		return s.Sections[i].Order < s.Sections[j].Order
	})
	for i := range s.Sections {
		fields := s.Sections[i].Fields
		sort.SliceStable(fields, func(a, b int) bool {
			return fields[a].Order < fields[b].Order
		})
	}
}

// --- formato almacenado (JSON) ---
// El wire format conserva los tres booleanos de permisos por compatibilidad
// con los esquemas ya cargados; Ownership existe solo en memoria.

type schemaDoc struct {
	Version      string       `json:"version,omitempty"`
	LastModified string       `json:"last_modified,omitempty"`
	Sections     []sectionDoc `json:"sections"`
}

type sectionDoc struct {
	Name   string     `json:"name"`
	Order  int        `json:"order"`
	Fields []fieldDoc `json:"fields"`
}

type fieldDoc struct {
	FieldName           string   `json:"field_name,omitempty"`
	Label               string   `json:"label,omitempty"`
	Type                string   `json:"type"`
	Required            bool     `json:"required,omitempty"`
	Validation          []string `json:"validation,omitempty"`
	Options             []string `json:"options,omitempty"`
	FilledByAdmin       bool     `json:"filled_by_admin,omitempty"`
	EditableByBoth      bool     `json:"editable_by_both,omitempty"`
	VisibleOnlyForAdmin bool     `json:"visible_only_for_admin,omitempty"`
	HelpText            string   `json:"help_text,omitempty"`
	Order               int      `json:"order"`
}

func (s Schema) MarshalJSON() ([]byte, error) {
	doc := schemaDoc{
		Version:      s.Version,
		LastModified: s.LastModified,
		Sections:     make([]sectionDoc, 0, len(s.Sections)),
	}

	for _, sec := range s.Sections {
		sd := sectionDoc{
			Name:   sec.Name,
			Order:  sec.Order,
			Fields: make([]fieldDoc, 0, len(sec.Fields)),
		}
		for _, f := range sec.Fields {
			filled, both, hidden := f.Ownership.flags()
			sd.Fields = append(sd.Fields, fieldDoc{
				FieldName:           f.Name,
				Label:               f.Label,
				Type:                string(f.Type),
				Required:            f.Required,
				Validation:          f.Validation,
				Options:             f.Options,
				FilledByAdmin:       filled,
				EditableByBoth:      both,
				VisibleOnlyForAdmin: hidden,
				HelpText:            f.HelpText,
				Order:               f.Order,
			})
		}
		doc.Sections = append(doc.Sections, sd)
	}

	return json.Marshal(doc)
}

func (s *Schema) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		// Un esquema ilegible degrada a vacío en vez de tumbar la operación.
		*s = Schema{}
		return nil
	}
	*s = ParseSchema(raw)
	return nil
}

// --- lectura tolerante de la estructura cruda ---

func rawString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func rawBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func rawInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}

func rawStringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
