package consents

import "time"

// ConsentDocument es un texto legal versionado que los titulares aceptan
// desde el portal. El documento nunca se edita in-place: publicar cambios
// crea una versión nueva, porque las aceptaciones registran contra qué
// versión se firmó.
type ConsentDocument struct {
	ID      string
	Title   string
	Body    string
	Version string
	Active  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
