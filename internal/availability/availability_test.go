package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// 2025-10-13 is a Monday
var monday = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func appt(start types.TimeString, duration int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestWeekdayOf(t *testing.T) {
	expected := []domain.Weekday{
		domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday,
		domain.Friday, domain.Saturday, domain.Sunday,
	}
	for i, want := range expected {
		assert.Equal(t, want, WeekdayOf(monday.AddDate(0, 0, i)), "day offset %d", i)
	}
}

func TestWindowFor(t *testing.T) {
	hours := domain.OpeningHours{
		domain.Monday:    {Start: "09:00", End: "12:00"},
		domain.Tuesday:   {Closed: true, Start: "09:00", End: "12:00"},
		domain.Wednesday: {Start: "18:00", End: "09:00"},
		domain.Thursday:  {Start: "9am", End: "17:00"},
	}
	policy := DefaultPolicy()

	tests := []struct {
		name       string
		date       time.Time
		policy     Policy
		wantWindow *Window
		wantRes    Resolution
		wantErr    error
	}{
		{
			name:       "configured day",
			date:       monday,
			policy:     policy,
			wantWindow: &Window{Start: "09:00", End: "12:00"},
			wantRes:    ResolvedConfigured,
		},
		{
			name:    "closed day ignores times",
			date:    monday.AddDate(0, 0, 1),
			policy:  policy,
			wantRes: ResolvedClosed,
		},
		{
			name:    "inverted window",
			date:    monday.AddDate(0, 0, 2),
			policy:  policy,
			wantRes: ResolvedConfigured,
			wantErr: ErrInvalidTimeValue,
		},
		{
			name:    "malformed window",
			date:    monday.AddDate(0, 0, 3),
			policy:  policy,
			wantRes: ResolvedConfigured,
			wantErr: ErrInvalidTimeValue,
		},
		{
			name:       "missing day falls back to default",
			date:       monday.AddDate(0, 0, 4),
			policy:     policy,
			wantWindow: &Window{Start: "09:00", End: "18:00"},
			wantRes:    ResolvedDefault,
		},
		{
			name:    "missing day closed when fail-open disabled",
			date:    monday.AddDate(0, 0, 4),
			policy:  Policy{FailOpenHours: false},
			wantRes: ResolvedClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, res, err := tt.policy.WindowFor(hours, tt.date)
			assert.Equal(t, tt.wantRes, res)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, window)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWindow, window)
		})
	}
}

func TestIsOpen(t *testing.T) {
	hours := domain.OpeningHours{
		domain.Monday:  {Start: "09:00", End: "12:00"},
		domain.Tuesday: {Closed: true},
	}
	policy := DefaultPolicy()

	assert.True(t, policy.IsOpen(hours, monday))
	assert.False(t, policy.IsOpen(hours, monday.AddDate(0, 0, 1)))
	assert.True(t, policy.IsOpen(hours, monday.AddDate(0, 0, 2)))
	assert.True(t, policy.IsOpen(nil, monday))
	assert.False(t, Policy{}.IsOpen(nil, monday))
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		step   int
		want   []types.TimeString
	}{
		{
			name:   "half hour grid",
			window: Window{Start: "09:00", End: "11:00"},
			step:   30,
			want:   []types.TimeString{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:   "end is exclusive even when aligned",
			window: Window{Start: "09:00", End: "10:00"},
			step:   20,
			want:   []types.TimeString{"09:00", "09:20", "09:40"},
		},
		{
			name:   "unaligned end",
			window: Window{Start: "09:00", End: "10:10"},
			step:   30,
			want:   []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:   "window shorter than step",
			window: Window{Start: "09:00", End: "09:20"},
			step:   30,
			want:   []types.TimeString{},
		},
		{
			name:   "window equal to step",
			window: Window{Start: "09:00", End: "09:30"},
			step:   30,
			want:   []types.TimeString{"09:00"},
		},
		{
			name:   "zero step",
			window: Window{Start: "09:00", End: "18:00"},
			step:   0,
			want:   []types.TimeString{},
		},
		{
			name:   "malformed window",
			window: Window{Start: "nine", End: "18:00"},
			step:   30,
			want:   []types.TimeString{},
		},
		{
			name:   "until midnight",
			window: Window{Start: "23:00", End: "24:00"},
			step:   30,
			want:   []types.TimeString{"23:00", "23:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlots(tt.window, tt.step))
		})
	}
}

func TestGenerateSlotsIsDeterministic(t *testing.T) {
	window := Window{Start: "09:00", End: "18:00"}

	first := GenerateSlots(window, 5)
	second := GenerateSlots(window, 5)

	assert.Equal(t, first, second)
	assert.Len(t, first, 108)
	assert.Equal(t, types.TimeString("17:55"), first[len(first)-1])
}

func TestAvailableSlotsHalfOpenOverlap(t *testing.T) {
	policy := DefaultPolicy()
	candidates := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}

	got, err := policy.AvailableSlots(candidates, 30, []*domain.Appointment{
		appt("09:30", 30, domain.StatusConfirmed),
	}, "12:00")
	require.NoError(t, err)

	// 09:00-09:30 touches the appointment start, 10:00 touches its end
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "10:30", "11:00"}, got)
}

func TestAvailableSlotsIgnoresCancelled(t *testing.T) {
	policy := DefaultPolicy()

	got, err := policy.AvailableSlots([]types.TimeString{"10:00"}, 30, []*domain.Appointment{
		appt("10:00", 60, domain.StatusCancelled),
	}, "12:00")
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00"}, got)
}

func TestAvailableSlotsPendingBlocks(t *testing.T) {
	policy := DefaultPolicy()

	got, err := policy.AvailableSlots([]types.TimeString{"10:00", "10:30"}, 30, []*domain.Appointment{
		appt("10:15", 10, domain.StatusPending),
	}, "12:00")
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:30"}, got)
}

func TestAvailableSlotsClosingBoundary(t *testing.T) {
	policy := DefaultPolicy()
	window := Window{Start: "09:00", End: "18:00"}

	got, err := policy.AvailableSlots(GenerateSlots(window, 5), 37, nil, window.End)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, types.TimeString("17:20"), got[len(got)-1])

	got, err = policy.AvailableSlots(GenerateSlots(window, 1), 37, nil, window.End)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("17:23"), got[len(got)-1])

	for _, slot := range got {
		m, err := slot.Minutes()
		require.NoError(t, err)
		assert.LessOrEqual(t, m+37, 18*60)
	}
}

func TestAvailableSlotsMalformedAppointments(t *testing.T) {
	candidates := []types.TimeString{"10:00", "11:00"}
	appointments := []*domain.Appointment{
		appt("10:xx", 60, domain.StatusConfirmed),
		appt("11:00", 0, domain.StatusConfirmed),
	}

	got, err := DefaultPolicy().AvailableSlots(candidates, 30, appointments, "12:00")
	require.NoError(t, err)
	assert.Equal(t, candidates, got)

	strict := DefaultPolicy()
	strict.SkipMalformedAppointments = false
	_, err = strict.AvailableSlots(candidates, 30, appointments, "12:00")
	assert.ErrorIs(t, err, ErrInvalidTimeValue)
}

func TestAvailableSlotsRejectsMalformedCandidate(t *testing.T) {
	got, err := DefaultPolicy().AvailableSlots([]types.TimeString{"10:00", "25:00", "bad"}, 30, nil, "12:00")
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00"}, got)
}

func TestAvailableSlotsInvalidInput(t *testing.T) {
	_, err := DefaultPolicy().AvailableSlots([]types.TimeString{"10:00"}, 0, nil, "12:00")
	assert.ErrorIs(t, err, ErrInvalidTimeValue)

	_, err = DefaultPolicy().AvailableSlots([]types.TimeString{"10:00"}, 30, nil, "noon")
	assert.ErrorIs(t, err, ErrInvalidTimeValue)
}

func TestAvailableSlotsKeepsInputOrder(t *testing.T) {
	got, err := DefaultPolicy().AvailableSlots([]types.TimeString{"11:00", "09:00", "10:00"}, 30, nil, "12:00")
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"11:00", "09:00", "10:00"}, got)
}

func TestMondayMorningScenario(t *testing.T) {
	policy := DefaultPolicy()
	hours := domain.OpeningHours{domain.Monday: {Start: "09:00", End: "12:00"}}

	window, res, err := policy.WindowFor(hours, monday)
	require.NoError(t, err)
	require.NotNil(t, window)
	assert.Equal(t, ResolvedConfigured, res)

	got, err := policy.AvailableSlots(GenerateSlots(*window, 30), 30, []*domain.Appointment{
		appt("10:00", 60, domain.StatusConfirmed),
	}, window.End)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "11:00", "11:30"}, got)
}

func TestCheckSlot(t *testing.T) {
	policy := DefaultPolicy()
	window := Window{Start: "09:00", End: "12:00"}
	existing := []*domain.Appointment{appt("10:00:00", 60, domain.StatusConfirmed)}

	assert.NoError(t, policy.CheckSlot(window, 30, 30, existing, "09:30"))
	assert.NoError(t, policy.CheckSlot(window, 30, 30, existing, "11:00:00"))
	assert.ErrorIs(t, policy.CheckSlot(window, 30, 30, existing, "10:30"), ErrSlotTaken)
	assert.ErrorIs(t, policy.CheckSlot(window, 30, 90, existing, "11:00"), ErrSlotTaken)
	assert.ErrorIs(t, policy.CheckSlot(window, 30, 30, existing, "09:15"), ErrNotOnGrid)
	assert.ErrorIs(t, policy.CheckSlot(window, 30, 30, existing, "12:00"), ErrNotOnGrid)
	assert.ErrorIs(t, policy.CheckSlot(window, 30, 30, existing, "9h"), ErrInvalidTimeValue)
}

func TestCheckInterval(t *testing.T) {
	policy := DefaultPolicy()
	existing := []*domain.Appointment{appt("14:00", 45, domain.StatusConfirmed)}

	assert.NoError(t, policy.CheckInterval("13:15", 45, existing))
	assert.NoError(t, policy.CheckInterval("14:45", 30, existing))
	assert.ErrorIs(t, policy.CheckInterval("14:30", 30, existing), ErrSlotTaken)
	assert.ErrorIs(t, policy.CheckInterval("14:30", 0, existing), ErrInvalidTimeValue)
	assert.ErrorIs(t, policy.CheckInterval("", 30, existing), ErrInvalidTimeValue)
}

func TestCheckIntervalStaysWithinDay(t *testing.T) {
	policy := DefaultPolicy()

	assert.NoError(t, policy.CheckInterval("23:00", 60, nil))
	assert.ErrorIs(t, policy.CheckInterval("23:00", 61, nil), ErrInvalidTimeValue)
	assert.ErrorIs(t, policy.CheckInterval("22:00", 180, nil), ErrInvalidTimeValue)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(0, 10, 5, 15))
	assert.True(t, Overlaps(5, 15, 0, 10))
	assert.True(t, Overlaps(0, 30, 10, 20))
	assert.False(t, Overlaps(0, 10, 10, 20))
	assert.False(t, Overlaps(10, 20, 0, 10))
}
