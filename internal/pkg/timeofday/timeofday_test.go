package timeofday

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  TimeOfDay
	}{
		{"08:30:00", TimeOfDay{8, 30, 0}},
		{"08:30", TimeOfDay{8, 30, 0}},
		{"8:05", TimeOfDay{8, 5, 0}},
		{"08h30", TimeOfDay{8, 30, 0}},
		{"08h30:15", TimeOfDay{8, 30, 15}},
		{"08.30", TimeOfDay{8, 30, 0}},
		{"08.30.45", TimeOfDay{8, 30, 45}},
		{"  22:15  ", TimeOfDay{22, 15, 0}},
		{"08 : 30", TimeOfDay{8, 30, 0}},
		{"23:59:59", TimeOfDay{23, 59, 59}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "25:00", "08:61", "08-30", "0830", "08:30 pm"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, input, formatErr.Input)
		})
	}
}

func TestOrDefault(t *testing.T) {
	def := TimeOfDay{Hour: 8}
	assert.Equal(t, TimeOfDay{9, 15, 0}, OrDefault("09:15", def))
	assert.Equal(t, def, OrDefault("garbage", def))
}

func TestNew(t *testing.T) {
	_, err := New(24, 0, 0)
	assert.Error(t, err)

	got, err := New(6, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 6*3600, got.Seconds())
}

func TestBetween(t *testing.T) {
	from, to := MustParse("06:00"), MustParse("18:00")
	assert.True(t, MustParse("06:00").Between(from, to))
	assert.True(t, MustParse("18:00").Between(from, to))
	assert.False(t, MustParse("18:00:01").Between(from, to))
	assert.False(t, MustParse("05:59:59").Between(from, to))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, MustParse("18:00"), MustParse("18:00:59").Truncate())
	assert.Equal(t, MustParse("07:05"), MustParse("07:05").Truncate())
}

func TestOn(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	got := MustParse("07:45").On(date, loc)
	assert.Equal(t, time.Date(2026, 3, 14, 7, 45, 0, 0, loc), got)
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(MustParse("7h05"))
	require.NoError(t, err)
	assert.JSONEq(t, `"07:05:00"`, string(data))

	var got TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"21.30"`), &got))
	assert.Equal(t, TimeOfDay{21, 30, 0}, got)

	assert.Error(t, json.Unmarshal([]byte(`"later"`), &got))
}

func TestPgTime(t *testing.T) {
	v, err := MustParse("13:02:03").TimeValue()
	require.NoError(t, err)
	assert.Equal(t, pgtype.Time{Microseconds: (13*3600 + 2*60 + 3) * 1_000_000, Valid: true}, v)

	var got TimeOfDay
	require.NoError(t, got.ScanTime(v))
	assert.Equal(t, TimeOfDay{13, 2, 3}, got)

	assert.Error(t, got.ScanTime(pgtype.Time{}))
}
