package time

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	want := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{name: "rfc3339", input: "2025-11-03T10:00:00Z", want: want, ok: true},
		{name: "postgrest timestamptz", input: "2025-11-03T10:00:00+00:00", want: want, ok: true},
		{name: "short zone", input: "2025-11-03 10:00:00+00", want: want, ok: true},
		{name: "fractional no zone", input: "2025-11-03T10:00:00.000123", want: want.Add(123 * time.Microsecond), ok: true},
		{name: "sql", input: " 2025-11-03 10:00:00 ", want: want, ok: true},
		{name: "date only", input: "2025-11-03", want: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}
