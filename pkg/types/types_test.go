package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "with seconds", input: "17:23:59", want: "17:23"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "signed", input: "-1:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStringArithmetic(t *testing.T) {
	start := TimeString("17:23")

	end, err := start.AddMinutes(37)
	require.NoError(t, err)
	assert.Equal(t, TimeString("18:00"), end)

	_, err = TimeString("23:50").AddMinutes(20)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	assert.True(t, TimeString("09:00").IsBefore("09:05"))
	assert.False(t, TimeString("09:05").IsBefore("09:05"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("bad").IsBefore("10:00"))
	assert.False(t, TimeString("bad").IsAfter("10:00"))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:00:00")))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan("nonsense"))
	assert.Equal(t, TimeString("nonsense"), ts)
	assert.Error(t, ts.Validate())

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:15"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2025-10-13")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, "2025-10-13", d.String())

	var scanned Date
	require.NoError(t, scanned.Scan("2025-10-13"))
	assert.True(t, scanned.Equal(d))

	require.NoError(t, scanned.Scan(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)))
	assert.True(t, scanned.After(d))
	assert.True(t, d.Before(scanned))
	assert.True(t, d.AddDays(1).Equal(scanned))

	loc := time.FixedZone("UTC+3", 3*60*60)
	late := time.Date(2025, 10, 13, 1, 0, 0, 0, loc)
	assert.Equal(t, "2025-10-13", NewDate(late).String())

	value, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-10-13", value)
}
