package employee

import "time"

// Employee is a roster entry. JSON tags follow the field names used by
// the FIAS data files (funcionarios.json) so seed data loads directly.
type Employee struct {
	ID           int       `json:"id"`
	Code         string    `json:"codigo"`
	FullName     string    `json:"nombreCompleto"`
	GivenName    string    `json:"nombre"`
	FamilyName   string    `json:"apellido"`
	Title        string    `json:"cargo"`
	ProjectID    string    `json:"proyecto"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"telefono,omitempty"`
	Active       bool      `json:"activo"`
	RegisteredAt time.Time `json:"fechaRegistro"`
	ModifiedAt   time.Time `json:"fechaModificacion"`
}
