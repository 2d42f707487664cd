package titulares

import (
	"strings"

	"titulares-admin/internal/domain/folders"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	estranslations "github.com/go-playground/validator/v10/translations/es"
)

// El validador es compartido y thread-safe. Los mensajes salen traducidos
// al español, que es lo que ven titulares y staff.
var (
	validate = validator.New()

	esLocale = es.New()
	uni      = ut.New(esLocale, esLocale)
	trans, _ = uni.GetTranslator("es")
)

func init() {
	_ = estranslations.RegisterDefaultTranslations(validate, trans)
}

// BuildRules arma el set de reglas escalares del esquema: para cada campo
// del recorrido canónico que no sea section ni file y tenga nombre, el tag
// de validación derivado del tipo y de sus tokens crudos. Los campos file
// quedan afuera: los valida el paso de uploads con sus propias reglas.
// Un campo sin ninguna regla efectiva no aparece en el mapa.
func BuildRules(s folders.Schema) map[string]any {
	rules := make(map[string]any)

	for _, f := range s.Fields() {
		if f.Type == folders.FieldSection || f.Type == folders.FieldFile || f.Name == "" {
			continue
		}
		if tag := fieldTag(f); tag != "" {
			rules[f.Name] = tag
		}
	}

	return rules
}

// fieldTag traduce tipo + tokens estilo Laravel al tag de go-playground.
// Tokens desconocidos se saltean (fail-open): una regla malformada no debe
// bloquear el formulario entero.
func fieldTag(f folders.FieldDefinition) string {
	tags := make([]string, 0, len(f.Validation)+2)

	add := func(t string) {
		if t == "" {
			return
		}
		for _, existing := range tags {
			if existing == t {
				return
			}
		}
		tags = append(tags, t)
	}

	required := f.Required

	switch f.Type {
	case folders.FieldEmail:
		add("email")
	case folders.FieldNumber:
		add("numeric")
	case folders.FieldDate:
		add("datetime=2006-01-02")
	case folders.FieldDateTime:
		add("datetime=2006-01-02 15:04")
	case folders.FieldSelect:
		add(oneofTag(f.Options))
	}

	for _, tok := range f.Validation {
		if strings.TrimSpace(tok) == "required" {
			required = true
			continue
		}
		add(translateToken(tok))
	}

	if len(tags) == 0 && !required {
		return ""
	}

	// Sin required, los chequeos de formato solo aplican si hay valor
	// (semántica de formulario: un campo opcional vacío no falla email/date).
	if required {
		tags = append([]string{"required"}, tags...)
	} else {
		tags = append([]string{"omitempty"}, tags...)
	}

	return strings.Join(tags, ",")
}

func translateToken(tok string) string {
	tok = strings.TrimSpace(tok)

	name, param := tok, ""
	if i := strings.Index(tok, ":"); i >= 0 {
		name, param = tok[:i], tok[i+1:]
	}

	switch name {
	case "numeric", "integer":
		return "numeric"
	case "email":
		return "email"
	case "url":
		return "url"
	case "alpha":
		return "alpha"
	case "alpha_num":
		return "alphanum"
	case "date":
		return "datetime=2006-01-02"
	case "max":
		if param != "" {
			return "max=" + param
		}
	case "min":
		if param != "" {
			return "min=" + param
		}
	case "size", "digits":
		if param != "" {
			return "len=" + param
		}
	case "in":
		return oneofTag(strings.Split(param, ","))
	case "string", "nullable", "sometimes":
		// modificadores sin chequeo propio
		return ""
	case "file", "image", "mimes", "mimetypes":
		// restricciones de archivo: las aplica el paso de uploads
		return ""
	}

	return ""
}

// oneofTag arma un oneof con opciones entre comillas simples. Opciones con
// comas o comillas romperían el parseo del tag, así que en ese caso no se
// genera regla (fail-open).
func oneofTag(options []string) string {
	if len(options) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" || strings.ContainsAny(opt, ",'") {
			return ""
		}
		quoted = append(quoted, "'"+opt+"'")
	}

	return "oneof=" + strings.Join(quoted, " ")
}
