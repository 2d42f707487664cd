package titulares

import (
	"context"
	"strconv"

	"titulares-admin/internal/domain/folders"

	"github.com/go-playground/validator/v10"
)

// FieldErrors mapea field_name -> mensajes de validación (en español).
type FieldErrors map[string][]string

// ValidateAndMerge valida el payload entrante contra las reglas derivadas
// del esquema y, si pasa, lo mergea superficialmente sobre los datos
// existentes.
//
// Las reglas se aplican solo a las claves presentes en el envío: las claves
// ausentes se conservan intactas desde existing, lo que habilita guardados
// parciales a lo largo de varias sesiones. Un required sí falla ante un
// valor presente pero vacío.
//
// Ante cualquier falla devuelve existing sin tocar y el mapa de errores por
// campo; la falla es local y recuperable, nunca fatal.
//
// Las claves que no pertenecen a ningún campo escalar del esquema se
// descartan del merge. Los campos file no pasan por el validador escalar:
// si su clave viene en el payload crudo (la inyectó el paso de uploads) se
// copia forzado al resultado para que el path sobreviva al merge.
func ValidateAndMerge(ctx context.Context, s folders.Schema, existing, incoming map[string]any) (map[string]any, FieldErrors) {
	rules := BuildRules(s)

	// Solo claves enviadas; el input llega como texto de formulario, así que
	// se valida sobre una copia stringificada.
	toCheck := make(map[string]any, len(incoming))
	checkRules := make(map[string]any, len(incoming))
	for k, v := range incoming {
		if tag, ok := rules[k]; ok {
			toCheck[k] = stringify(v)
			checkRules[k] = tag
		}
	}

	if len(checkRules) > 0 {
		if verrs := validate.ValidateMapCtx(ctx, toCheck, checkRules); len(verrs) > 0 {
			return existing, translateErrors(verrs)
		}
	}

	scalar := scalarFieldSet(s)

	merged := make(map[string]any, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range incoming {
		if _, ok := scalar[k]; ok {
			merged[k] = v
		}
	}

	for _, f := range s.Fields() {
		if f.Type != folders.FieldFile || f.Name == "" {
			continue
		}
		if v, ok := incoming[f.Name]; ok {
			merged[f.Name] = v
		}
	}

	return merged, nil
}

// scalarFieldSet junta los field_name mergeables por el validador escalar.
func scalarFieldSet(s folders.Schema) map[string]struct{} {
	out := map[string]struct{}{}
	for _, f := range s.Fields() {
		if f.Type == folders.FieldSection || f.Type == folders.FieldFile || f.Name == "" {
			continue
		}
		out[f.Name] = struct{}{}
	}
	return out
}

func translateErrors(verrs map[string]any) FieldErrors {
	out := FieldErrors{}
	for field, v := range verrs {
		fieldErrs, ok := v.(validator.ValidationErrors)
		if !ok {
			out[field] = append(out[field], "valor inválido")
			continue
		}
		for _, fe := range fieldErrs {
			out[field] = append(out[field], fe.Translate(trans))
		}
	}
	return out
}

// stringify normaliza un escalar JSON a texto para el validador.
// El merge conserva el valor original tal como vino.
func stringify(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case bool:
		return strconv.FormatBool(n)
	default:
		return v
	}
}
