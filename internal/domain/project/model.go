package project

// Project is a roster project used for grouping and display coloring.
// Start and end dates are ISO calendar dates as stored in the FIAS data
// files (proyectos.json).
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
	Color       string `json:"codigoColor,omitempty"`
	StartDate   string `json:"fechaInicio,omitempty"`
	EndDate     string `json:"fechaFin,omitempty"`
	Active      bool   `json:"activo"`
}

// Summary is a lightweight representation for listing, with the number
// of employees currently assigned.
type Summary struct {
	Project
	EmployeeCount   int `json:"totalFuncionarios"`
	ActiveEmployees int `json:"funcionariosActivos"`
}
