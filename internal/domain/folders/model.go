package folders

import "time"

// Folder representa una plantilla reutilizable de formulario ("carpeta")
// dentro de un proyecto. No es una carpeta de filesystem.
type Folder struct {
	ID        string
	ProjectID string

	Name        string
	Description string

	Schema Schema

	CreatedAt time.Time
	UpdatedAt time.Time
}
