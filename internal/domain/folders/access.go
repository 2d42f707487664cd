package folders

// Política de acceso por campo: quién puede escribir cada campo según el
// contexto de autenticación (staff vs titular).

// AdminEditable indica si el formulario de staff expone el campo como
// editable. Todo lo que no sea exclusivo del titular lo es.
func (f FieldDefinition) AdminEditable() bool {
	return f.Ownership == OwnershipAdmin ||
		f.Ownership == OwnershipShared ||
		f.Ownership == OwnershipAdminHidden
}

// TitularWritable indica si el titular puede escribir el campo desde su
// portal. La única exclusión dura del lado titular es admin_hidden: los
// campos filled_by_admin no ocultos siguen siendo técnicamente aceptados
// en el payload (comportamiento heredado del sistema original).
func (f FieldDefinition) TitularWritable() bool {
	return f.Ownership != OwnershipAdminHidden
}

// VisibleOnlyForAdmin indica si el titular no debe ver ni escribir el campo.
func (f FieldDefinition) VisibleOnlyForAdmin() bool {
	return f.Ownership == OwnershipAdminHidden
}

// StripHiddenFields devuelve una copia del payload sin las claves de campos
// admin_hidden. Se aplica SIEMPRE antes de validar o mergear un envío del
// titular: el titular no puede fijar esos valores aunque los incluya.
func StripHiddenFields(s Schema, data map[string]any) map[string]any {
	hidden := map[string]struct{}{}
	for _, f := range s.Fields() {
		if f.Type == FieldSection || f.Name == "" {
			continue
		}
		if f.VisibleOnlyForAdmin() {
			hidden[f.Name] = struct{}{}
		}
	}

	out := make(map[string]any, len(data))
	for k, v := range data {
		if _, ok := hidden[k]; ok {
			continue
		}
		out[k] = v
	}
	return out
}

// FilterAdminEditable devuelve una copia del payload solo con claves de
// campos AdminEditable. El camino de guardado de staff lo aplica en el
// servidor, sin confiar en que la UI haya restringido el formulario.
func FilterAdminEditable(s Schema, data map[string]any) map[string]any {
	editable := map[string]struct{}{}
	for _, f := range s.Fields() {
		if f.Type == FieldSection || f.Name == "" {
			continue
		}
		if f.AdminEditable() {
			editable[f.Name] = struct{}{}
		}
	}

	out := make(map[string]any, len(data))
	for k, v := range data {
		if _, ok := editable[k]; !ok {
			continue
		}
		out[k] = v
	}
	return out
}

// TitularView devuelve el esquema sin los campos admin_hidden, para
// renderizar el portal del titular: ocultar además de filtrar el envío.
func TitularView(s Schema) Schema {
	out := Schema{
		Version:      s.Version,
		LastModified: s.LastModified,
		Sections:     make([]Section, 0, len(s.Sections)),
	}

	for _, sec := range s.Sections {
		visible := Section{Name: sec.Name, Order: sec.Order}
		for _, f := range sec.Fields {
			if f.VisibleOnlyForAdmin() {
				continue
			}
			visible.Fields = append(visible.Fields, f)
		}
		out.Sections = append(out.Sections, visible)
	}

	return out
}
