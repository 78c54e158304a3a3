package reconcile

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TotalsLabel is the project column value of the combined totals row.
const TotalsLabel = "TODOS"

// SortEvents orders events for display: project identifier, employee
// full name (Spanish collation), calendar date, time of day. The sort
// is stable, so events equal on all four keys keep their emission
// order.
func SortEvents(events []Event) {
	c := collate.New(language.Spanish)
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.ProjectID != b.ProjectID {
			return a.ProjectID < b.ProjectID
		}
		if a.FullName != b.FullName {
			return c.CompareString(a.FullName, b.FullName) < 0
		}
		if a.Date != b.Date {
			return a.Date < b.Date // ISO dates sort chronologically
		}
		return a.Time < b.Time
	})
}

// Summarize derives per-project and combined totals from a final event
// sequence. Projects appear in first-seen order, which for a sorted
// sequence is lexicographic.
func Summarize(events []Event) Summary {
	byProject := make(map[string]*ProjectTotals)
	var order []string

	for _, ev := range events {
		pt, ok := byProject[ev.ProjectID]
		if !ok {
			pt = &ProjectTotals{ProjectID: ev.ProjectID}
			byProject[ev.ProjectID] = pt
			order = append(order, ev.ProjectID)
		}
		count(pt, ev)
	}

	summary := Summary{
		Projects: make([]ProjectTotals, 0, len(order)),
		Totals:   ProjectTotals{ProjectID: TotalsLabel},
	}
	for _, id := range order {
		summary.Projects = append(summary.Projects, *byProject[id])
	}
	for _, ev := range events {
		count(&summary.Totals, ev)
	}
	return summary
}

func count(pt *ProjectTotals, ev Event) {
	pt.Total++
	kind := strings.ToLower(ev.Kind)
	if strings.Contains(kind, "entrada") {
		pt.Entries++
	}
	if strings.Contains(kind, "salida") {
		pt.Exits++
	}
	switch ev.Source {
	case SourceTeams:
		pt.Teams++
	case SourceBiometric:
		pt.Biometric++
	}
}
