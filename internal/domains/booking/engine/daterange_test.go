package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inn/internal/domains/booking/engine"
)

func date(value string) time.Time {
	parsed, err := engine.ParseDate(value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid date", value: "2025-06-01"},
		{name: "leap day", value: "2024-02-29"},
		{name: "empty", value: "", wantErr: true},
		{name: "not a date", value: "june first", wantErr: true},
		{name: "wrong format", value: "01-06-2025", wantErr: true},
		{name: "time suffix rejected", value: "2025-06-01T10:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := engine.ParseDate(tt.value)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, time.UTC, parsed.Location())
			assert.Equal(t, 0, parsed.Hour())
		})
	}
}

func TestNormalize(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	local := time.Date(2025, 6, 1, 23, 30, 0, 0, jakarta)
	normalized := engine.Normalize(local)

	// 23:30 WIB on June 1 is 16:30 UTC the same day.
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), normalized)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                   string
		aIn, aOut, bIn, bOut   string
		want                   bool
	}{
		{name: "identical ranges", aIn: "2025-06-01", aOut: "2025-06-03", bIn: "2025-06-01", bOut: "2025-06-03", want: true},
		{name: "partial overlap", aIn: "2025-06-01", aOut: "2025-06-03", bIn: "2025-06-02", bOut: "2025-06-04", want: true},
		{name: "contained range", aIn: "2025-06-01", aOut: "2025-06-10", bIn: "2025-06-03", bOut: "2025-06-05", want: true},
		{name: "back to back stays do not overlap", aIn: "2025-06-01", aOut: "2025-06-03", bIn: "2025-06-03", bOut: "2025-06-05", want: false},
		{name: "disjoint ranges", aIn: "2025-06-01", aOut: "2025-06-03", bIn: "2025-06-10", bOut: "2025-06-12", want: false},
		{name: "single night inside", aIn: "2025-06-02", aOut: "2025-06-03", bIn: "2025-06-01", bOut: "2025-06-05", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Overlaps(date(tt.aIn), date(tt.aOut), date(tt.bIn), date(tt.bOut))
			assert.Equal(t, tt.want, got)

			// Overlap must be symmetric.
			mirrored := engine.Overlaps(date(tt.bIn), date(tt.bOut), date(tt.aIn), date(tt.aOut))
			assert.Equal(t, got, mirrored)
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 2, engine.Nights(date("2025-06-01"), date("2025-06-03")))
	assert.Equal(t, 1, engine.Nights(date("2025-06-01"), date("2025-06-02")))
	assert.Equal(t, 30, engine.Nights(date("2025-06-01"), date("2025-07-01")))
}
