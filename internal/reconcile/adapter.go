package reconcile

import (
	"fmt"
	"strconv"
	"strings"
)

// Column alias defaults, matching the header variants of the known
// Teams and biometric terminal exports. Each logical field maps to an
// ordered list of accepted column names; the first one present in a
// row wins.
var (
	DefaultTeamsColumns = TeamsColumns{
		Identity:  []string{"Usuario", "Nombre", "Nombre Completo"},
		EntryTime: []string{"Hora de entrada"},
		ExitTime:  []string{"Hora de salida"},
	}
	DefaultBiometricColumns = BiometricColumns{
		Identity:  []string{"ID de Usuario", "ID"},
		Timestamp: []string{"Tiempo", "Fecha", "FechaHora"},
		Kind:      []string{"Evento", "Estado"},
	}
)

// TeamsColumns configures the column aliases of the Teams-like export.
type TeamsColumns struct {
	Identity  []string `yaml:"identidad"`
	EntryTime []string `yaml:"entrada"`
	ExitTime  []string `yaml:"salida"`
}

// BiometricColumns configures the column aliases of the biometric
// terminal export.
type BiometricColumns struct {
	Identity  []string `yaml:"identidad"`
	Timestamp []string `yaml:"tiempo"`
	Kind      []string `yaml:"evento"`
}

// TeamsAdapter turns Teams attendance rows into normalized events.
// Identity is resolved by name; a row carries independent entry and
// exit time fields and may therefore yield zero, one, or two events.
type TeamsAdapter struct {
	cols TeamsColumns
}

// NewTeamsAdapter creates a Teams adapter. Empty alias lists fall back
// to the defaults.
func NewTeamsAdapter(cols TeamsColumns) *TeamsAdapter {
	if len(cols.Identity) == 0 {
		cols.Identity = DefaultTeamsColumns.Identity
	}
	if len(cols.EntryTime) == 0 {
		cols.EntryTime = DefaultTeamsColumns.EntryTime
	}
	if len(cols.ExitTime) == 0 {
		cols.ExitTime = DefaultTeamsColumns.ExitTime
	}
	return &TeamsAdapter{cols: cols}
}

// Process consumes rows and appends the resulting events and errors to
// the batch. Errors never halt the batch; every present-but-unparseable
// time field is reported individually.
func (a *TeamsAdapter) Process(roster *Roster, rows []RawRow, b *batch) {
	for i, row := range rows {
		line := i + 2 // 1-based data row, after the header line
		processRow(b, SourceTeams, line, row, func() {
			raw, _ := firstPresent(row, a.cols.Identity)
			name := valueString(raw)
			emp, _, ok := roster.ResolveByName(name)
			if !ok {
				b.fail(SourceTeams, line, row, "Funcionario no encontrado: %s", name)
				return
			}

			slots := []struct {
				aliases []string
				kind    string
				label   string
			}{
				{a.cols.EntryTime, KindEntry, "Hora de entrada"},
				{a.cols.ExitTime, KindExit, "Hora de salida"},
			}
			for _, slot := range slots {
				v, ok := firstPresent(row, slot.aliases)
				if !ok {
					continue
				}
				dt, err := ParseStamp(v)
				if err != nil {
					b.fail(SourceTeams, line, row, "%s inválida: %v", slot.label, v)
					continue
				}
				b.emit(Event{
					EmployeeID: emp.ID,
					Code:       emp.Code,
					FullName:   emp.FullName,
					ProjectID:  emp.ProjectID,
					Date:       dt.Date,
					Time:       dt.Time,
					Kind:       slot.kind,
					Source:     SourceTeams,
					Status:     StatusProcessed,
					Raw:        row,
				})
			}
		})
	}
}

// BiometricAdapter turns biometric terminal rows into normalized
// events. Identity is resolved by numeric user ID; each row carries a
// single timestamp and yields exactly one event or one error.
type BiometricAdapter struct {
	cols BiometricColumns
}

// NewBiometricAdapter creates a biometric adapter. Empty alias lists
// fall back to the defaults.
func NewBiometricAdapter(cols BiometricColumns) *BiometricAdapter {
	if len(cols.Identity) == 0 {
		cols.Identity = DefaultBiometricColumns.Identity
	}
	if len(cols.Timestamp) == 0 {
		cols.Timestamp = DefaultBiometricColumns.Timestamp
	}
	if len(cols.Kind) == 0 {
		cols.Kind = DefaultBiometricColumns.Kind
	}
	return &BiometricAdapter{cols: cols}
}

// Process consumes rows and appends the resulting events and errors to
// the batch.
func (a *BiometricAdapter) Process(roster *Roster, rows []RawRow, b *batch) {
	for i, row := range rows {
		line := i + 2
		processRow(b, SourceBiometric, line, row, func() {
			id, rawID, ok := numericIdentity(row, a.cols.Identity)
			if !ok {
				b.fail(SourceBiometric, line, row, "ID de usuario no encontrado: %v", rawID)
				return
			}
			emp, found := roster.ResolveByID(id)
			if !found {
				b.fail(SourceBiometric, line, row, "ID de usuario no encontrado: %d", id)
				return
			}

			v, _ := firstPresent(row, a.cols.Timestamp)
			dt, err := ParseStamp(v)
			if err != nil {
				b.fail(SourceBiometric, line, row, "Marca de tiempo inválida: %v", v)
				return
			}

			kind := KindMark
			if kv, ok := firstPresent(row, a.cols.Kind); ok {
				kind = valueString(kv)
			}
			b.emit(Event{
				EmployeeID: emp.ID,
				Code:       emp.Code,
				FullName:   emp.FullName,
				ProjectID:  emp.ProjectID,
				Date:       dt.Date,
				Time:       dt.Time,
				Kind:       kind,
				Source:     SourceBiometric,
				Status:     StatusProcessed,
				Raw:        row,
			})
		})
	}
}

// processRow runs fn and converts any panic into a ProcessingError, so
// a malformed row can never take down the batch.
func processRow(b *batch, src Source, line int, row RawRow, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			b.fail(src, line, row, "Error procesando línea: %v", r)
		}
	}()
	fn()
}

// firstPresent returns the value of the first alias present in the row.
// Cells holding only an empty string count as absent.
func firstPresent(row RawRow, aliases []string) (any, bool) {
	for _, alias := range aliases {
		v, ok := row[alias]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// numericIdentity tries each identity alias in order until one parses
// as an integer, mirroring the lenient leading-integer reading of the
// original exports ("007", "12 - turno B"). On failure it reports the
// first present raw value for the error message.
func numericIdentity(row RawRow, aliases []string) (int, any, bool) {
	var firstRaw any
	for _, alias := range aliases {
		v, ok := firstPresent(row, []string{alias})
		if !ok {
			continue
		}
		if firstRaw == nil {
			firstRaw = v
		}
		if id, ok := leadingInt(v); ok {
			return id, v, true
		}
	}
	return 0, firstRaw, false
}

func leadingInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t == float64(int(t)) {
			return int(t), true
		}
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		end := 0
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if end == 0 {
			return 0, false
		}
		id, err := strconv.Atoi(s[:end])
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

func valueString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
