package reconcile

import (
	"strings"
	"unicode/utf8"

	"github.com/fias/marcaciones/internal/domain/employee"
	"github.com/fias/marcaciones/internal/domain/project"
)

// MatchStage tags which stage of the name matcher produced a hit, so
// resolution behavior stays reproducible and testable per stage.
type MatchStage string

const (
	// StageExact: normalized input equals the employee's full name.
	StageExact MatchStage = "exact"
	// StageToken: an input token longer than two runes appears inside
	// an employee's full name.
	StageToken MatchStage = "token"
	// StageFallback: cross-containment between the input and the
	// employee's given or family name.
	StageFallback MatchStage = "fallback"
)

// Roster is an immutable snapshot of the employee and project reference
// data taken at the start of a reconciliation run. Roster edits made
// while a run is in flight never affect it.
type Roster struct {
	employees []employee.Employee
	projects  map[string]project.Project
}

// NewRoster copies the given reference data into a snapshot. Employee
// order is preserved: the name matcher resolves ambiguity by first hit
// in stored order.
func NewRoster(employees []employee.Employee, projects []project.Project) *Roster {
	r := &Roster{
		employees: make([]employee.Employee, len(employees)),
		projects:  make(map[string]project.Project, len(projects)),
	}
	copy(r.employees, employees)
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r
}

// Employees returns the snapshot's employees in stored order.
func (r *Roster) Employees() []employee.Employee {
	return r.employees
}

// Project looks up a snapshot project by identifier.
func (r *Roster) Project(id string) (project.Project, bool) {
	p, ok := r.projects[id]
	return p, ok
}

// ProjectColor returns the display color configured for a project, or
// a neutral gray when the project is unknown or has no color.
func (r *Roster) ProjectColor(id string) string {
	if p, ok := r.projects[id]; ok && p.Color != "" {
		return p.Color
	}
	return "#cccccc"
}

// ResolveByID finds the active employee with the given numeric
// identifier. Inactive employees are never matched: a valid identifier
// belonging to a deactivated employee means "no longer tracked".
func (r *Roster) ResolveByID(id int) (*employee.Employee, bool) {
	for i := range r.employees {
		if r.employees[i].ID == id && r.employees[i].Active {
			return &r.employees[i], true
		}
	}
	return nil, false
}

// ResolveByName finds an active employee for a raw name string using a
// staged best-effort match: exact full name, then token containment,
// then cross-containment of given/family names. Ambiguity is resolved
// by first hit in roster order; short or shared name fragments can
// produce false positives, which callers must tolerate.
func (r *Roster) ResolveByName(raw string) (*employee.Employee, MatchStage, bool) {
	name := normalizeName(raw)
	if name == "" {
		return nil, "", false
	}

	for i := range r.employees {
		emp := &r.employees[i]
		if emp.Active && normalizeName(emp.FullName) == name {
			return emp, StageExact, true
		}
	}

	tokens := strings.Fields(name)
	for _, token := range tokens {
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		for i := range r.employees {
			emp := &r.employees[i]
			if emp.Active && strings.Contains(normalizeName(emp.FullName), token) {
				return emp, StageToken, true
			}
		}
	}

	first := ""
	if len(tokens) > 0 {
		first = tokens[0]
	}
	for i := range r.employees {
		emp := &r.employees[i]
		if !emp.Active {
			continue
		}
		given := normalizeName(emp.GivenName)
		family := normalizeName(emp.FamilyName)
		if containsName(name, given) || containsName(name, family) ||
			containsName(given, first) || containsName(family, first) {
			return emp, StageFallback, true
		}
	}

	return nil, "", false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsName is strings.Contains with empty operands excluded, so an
// employee with a blank given or family name cannot match everything.
func containsName(haystack, needle string) bool {
	if haystack == "" || needle == "" {
		return false
	}
	return strings.Contains(haystack, needle)
}
