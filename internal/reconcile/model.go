package reconcile

// Source identifies one of the two input channels.
type Source string

const (
	SourceTeams     Source = "Teams"
	SourceBiometric Source = "Biométrico"
)

// Event kinds. Biometric rows may carry their own label (e.g. a device
// status string); anything that is not an entry or exit is a generic
// mark. Classification for summaries is by substring, matching the
// labels found in real exports ("Entrada", "Salida tarde", ...).
const (
	KindEntry = "Entrada"
	KindExit  = "Salida"
	KindMark  = "Marcación"
)

// Event statuses set during a run.
const (
	StatusProcessed = "Procesado"
	StatusDuplicate = "Duplicado"
	StatusLate      = "Tardanza"
	StatusHoliday   = "Feriado"
	StatusWeekend   = "Fin de semana"
)

// RawRow is one spreadsheet line as handed back by the ingest layer:
// column header mapped to cell value. Absent and empty cells have no
// key. Values are strings for text cells and may be native types
// (time.Time, float64) when the reader preserves them.
type RawRow map[string]any

// Event is the canonical output unit of a reconciliation run: one
// check-in, check-out, or generic mark resolved to a roster employee.
// Events are immutable once emitted, except for the Status field which
// the validation pass may overwrite.
type Event struct {
	EmployeeID int    `json:"id"`
	Code       string `json:"codigo"`
	FullName   string `json:"nombreCompleto"`
	ProjectID  string `json:"proyecto"`
	Date       string `json:"fecha"` // YYYY-MM-DD
	Time       string `json:"hora"`  // HH:MM:SS
	Kind       string `json:"tipo"`
	Source     Source `json:"fuente"`
	Status     string `json:"estado"`
	Raw        RawRow `json:"rawData,omitempty"`
}

// ProcessingError describes one input row that could not be turned
// into an event. Line numbers are physical spreadsheet lines (the
// header is line 1).
type ProcessingError struct {
	Source  Source `json:"tipo"`
	Line    int    `json:"linea"`
	Message string `json:"mensaje"`
	Raw     RawRow `json:"datos,omitempty"`
}

// RunResult is the complete output of one reconciliation pass. It is
// owned by the caller and never retained by the engine.
type RunResult struct {
	Events  []Event           `json:"eventos"`
	Errors  []ProcessingError `json:"errores"`
	Summary Summary           `json:"resumen"`
}

// ProjectTotals counts events for one project (or for all projects
// combined, in the totals row).
type ProjectTotals struct {
	ProjectID string `json:"proyecto"`
	Total     int    `json:"total"`
	Entries   int    `json:"entradas"`
	Exits     int    `json:"salidas"`
	Teams     int    `json:"teams"`
	Biometric int    `json:"biometrico"`
}

// Summary holds per-project counts in display order plus a combined
// totals row.
type Summary struct {
	Projects []ProjectTotals `json:"porProyecto"`
	Totals   ProjectTotals   `json:"totales"`
}
