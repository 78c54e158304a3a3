package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// Rules are the post-run validations applied to a sorted event
// sequence. They only rewrite event statuses; events are never dropped
// and counts never change.
type Rules struct {
	MarkDuplicates bool
	MarkLate       bool
	MarkHolidays   bool
	MarkWeekends   bool

	// StandardEntry is the scheduled entry time (HH:MM:SS);
	// EntryToleranceMin grace minutes are allowed past it.
	StandardEntry     string
	EntryToleranceMin int

	// WorkingDays uses time.Weekday numbering (Sunday = 0).
	WorkingDays []int
	// Holidays are ISO calendar dates.
	Holidays []string
}

// Apply runs the enabled validations over events in place. When a rule
// matches, the event status is overwritten; the first matching rule in
// the order duplicate, holiday, weekend, late wins.
func (r Rules) Apply(events []Event) {
	lateAfter := r.lateThreshold()
	holidays := make(map[string]struct{}, len(r.Holidays))
	for _, d := range r.Holidays {
		holidays[d] = struct{}{}
	}
	working := make(map[time.Weekday]struct{}, len(r.WorkingDays))
	for _, d := range r.WorkingDays {
		working[time.Weekday(d)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(events))
	for i := range events {
		ev := &events[i]

		if r.MarkDuplicates {
			key := fmt.Sprintf("%d|%s|%s|%s|%s", ev.EmployeeID, ev.Date, ev.Time, ev.Kind, ev.Source)
			if _, dup := seen[key]; dup {
				ev.Status = StatusDuplicate
				continue
			}
			seen[key] = struct{}{}
		}

		if r.MarkHolidays {
			if _, ok := holidays[ev.Date]; ok {
				ev.Status = StatusHoliday
				continue
			}
		}

		if r.MarkWeekends && len(working) > 0 {
			if day, err := time.Parse("2006-01-02", ev.Date); err == nil {
				if _, ok := working[day.Weekday()]; !ok {
					ev.Status = StatusWeekend
					continue
				}
			}
		}

		if r.MarkLate && lateAfter != "" && isEntry(ev.Kind) && ev.Time > lateAfter {
			ev.Status = StatusLate
		}
	}
}

// lateThreshold is the standard entry time plus tolerance, as HH:MM:SS,
// or empty when no standard entry time is configured.
func (r Rules) lateThreshold() string {
	if r.StandardEntry == "" {
		return ""
	}
	t, err := time.Parse("15:04:05", r.StandardEntry)
	if err != nil {
		return ""
	}
	return t.Add(time.Duration(r.EntryToleranceMin) * time.Minute).Format("15:04:05")
}

func isEntry(kind string) bool {
	return strings.Contains(strings.ToLower(kind), "entrada")
}
