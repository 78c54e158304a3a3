package reconcile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fias/marcaciones/internal/reconcile"
)

func TestParseStamp_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		date  string
		time  string
	}{
		{"iso datetime", "2024-06-03 08:31:00", "2024-06-03", "08:31:00"},
		{"iso t separator", "2024-06-03T17:29:00", "2024-06-03", "17:29:00"},
		{"date only", "2024-06-03", "2024-06-03", "00:00:00"},
		{"slash date", "06/03/2024 9:05:07 AM", "2024-06-03", "09:05:07"},
		{"padded input", "  2024-06-03 08:31:00  ", "2024-06-03", "08:31:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, err := reconcile.ParseStamp(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.date, dt.Date)
			require.Equal(t, tt.time, dt.Time)
		})
	}
}

func TestParseStamp_NativeTime(t *testing.T) {
	in := time.Date(2024, 6, 3, 8, 31, 0, 0, time.Local)
	dt, err := reconcile.ParseStamp(in)
	require.NoError(t, err)
	require.Equal(t, "2024-06-03", dt.Date)
	require.Equal(t, "08:31:00", dt.Time)
}

func TestParseStamp_SerialNumber(t *testing.T) {
	// 45446 days past the 1900 epoch is 2024-06-03; .5 is noon.
	dt, err := reconcile.ParseStamp(45446.5)
	require.NoError(t, err)
	require.Equal(t, "2024-06-03", dt.Date)
	require.Equal(t, "12:00:00", dt.Time)
}

func TestParseStamp_Invalid(t *testing.T) {
	for _, input := range []any{
		nil,
		"",
		"   ",
		"not-a-date",
		float64(-1),
		time.Time{},
		struct{}{},
	} {
		_, err := reconcile.ParseStamp(input)
		require.ErrorIs(t, err, reconcile.ErrInvalidTimestamp, "input %v", input)
	}
}
