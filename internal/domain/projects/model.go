package projects

import "time"

// Project es un programa social/económico al que se enrolan titulares.
// Las carpetas y los titulares cuelgan de un proyecto.
type Project struct {
	ID string

	Name        string
	Description string
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
