package reconcile

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateTime is a normalized (calendar date, time of day) pair in the
// ambient local timezone: date as YYYY-MM-DD, time as HH:MM:SS.
type DateTime struct {
	Date string
	Time string
}

// excelEpoch is day zero of the 1900 date system used by spreadsheet
// serial numbers.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseStamp normalizes a raw cell value into a DateTime. It accepts
// native time values, spreadsheet serial numbers, and any string form
// a general date parser can interpret. Unparseable input is reported
// as ErrInvalidTimestamp, never a panic.
func ParseStamp(v any) (DateTime, error) {
	switch t := v.(type) {
	case nil:
		return DateTime{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	case time.Time:
		if t.IsZero() {
			return DateTime{}, fmt.Errorf("%w: zero time", ErrInvalidTimestamp)
		}
		return fromTime(t.In(time.Local)), nil
	case float64:
		return fromSerial(t)
	case float32:
		return fromSerial(float64(t))
	case int:
		return fromSerial(float64(t))
	case int64:
		return fromSerial(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return DateTime{}, fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
		}
		parsed, err := dateparse.ParseLocal(s)
		if err != nil {
			return DateTime{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
		}
		return fromTime(parsed), nil
	default:
		return DateTime{}, fmt.Errorf("%w: unsupported value %v", ErrInvalidTimestamp, v)
	}
}

// fromSerial converts a spreadsheet serial number (days since the 1900
// epoch, fraction is time of day) into a DateTime.
func fromSerial(serial float64) (DateTime, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 {
		return DateTime{}, fmt.Errorf("%w: serial %v", ErrInvalidTimestamp, serial)
	}
	days := math.Floor(serial)
	frac := serial - days
	t := excelEpoch.AddDate(0, 0, int(days)).
		Add(time.Duration(math.Round(frac * 24 * float64(time.Hour))))
	return fromTime(t), nil
}

func fromTime(t time.Time) DateTime {
	return DateTime{
		Date: t.Format("2006-01-02"),
		Time: t.Format("15:04:05"),
	}
}
