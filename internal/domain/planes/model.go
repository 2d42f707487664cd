package planes

import "time"

// Plan es un programa financiero al que se puede asociar un aporte aprobado.
type Plan struct {
	ID string

	Name          string
	Description   string
	MonthlyAmount float64
	Currency      string

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
