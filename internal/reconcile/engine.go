package reconcile

import (
	"fmt"
	"log/slog"
)

// Engine orchestrates the source adapters over one pair of inputs. It
// holds no state between runs: every invocation starts from empty
// accumulators and returns a self-contained RunResult.
type Engine struct {
	teams  *TeamsAdapter
	bio    *BiometricAdapter
	logger *slog.Logger
}

// NewEngine creates a reconciliation engine with the given adapter
// configuration.
func NewEngine(teams TeamsColumns, bio BiometricColumns, logger *slog.Logger) *Engine {
	return &Engine{
		teams:  NewTeamsAdapter(teams),
		bio:    NewBiometricAdapter(bio),
		logger: logger,
	}
}

// batch accumulates adapter output during one run.
type batch struct {
	events []Event
	errors []ProcessingError
}

func (b *batch) emit(ev Event) {
	b.events = append(b.events, ev)
}

func (b *batch) fail(src Source, line int, row RawRow, format string, args ...any) {
	b.errors = append(b.errors, ProcessingError{
		Source:  src,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
		Raw:     row,
	})
}

// Run reconciles the two optional inputs against the roster snapshot.
// Teams rows are processed before biometric rows so emission order,
// and therefore the stable sort below, is deterministic. A run always
// completes: per-row failures land in the error list, never abort the
// batch.
func (e *Engine) Run(roster *Roster, teamsRows, bioRows []RawRow) RunResult {
	b := &batch{}

	if teamsRows != nil {
		e.teams.Process(roster, teamsRows, b)
	}
	if bioRows != nil {
		e.bio.Process(roster, bioRows, b)
	}

	SortEvents(b.events)

	result := RunResult{
		Events:  b.events,
		Errors:  b.errors,
		Summary: Summarize(b.events),
	}
	if result.Events == nil {
		result.Events = []Event{}
	}
	if result.Errors == nil {
		result.Errors = []ProcessingError{}
	}

	if e.logger != nil {
		e.logger.Info("reconciliation run completed",
			"teams_rows", len(teamsRows),
			"biometric_rows", len(bioRows),
			"events", len(result.Events),
			"errors", len(result.Errors),
		)
	}
	return result
}
