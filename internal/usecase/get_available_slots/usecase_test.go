package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	settingsRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/storagetest"
	settingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/settings"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type countingMetrics struct{ defaulted int }

func (m *countingMetrics) ObserveHoursDefaulted() { m.defaulted++ }

type fixture struct {
	db      *storagetest.DB
	uc      *UseCase
	metrics *countingMetrics
	salon   *domain.Salon
	service *domain.Service
}

// 2026-03-02 понедельник, 2026-03-03 вторник, 2026-03-08 воскресенье
func newFixture(t *testing.T, now time.Time, duration int) *fixture {
	t.Helper()
	db := storagetest.NewSQLite(t)

	salon := db.SeedSalon(t, domain.OpeningHours{
		domain.Monday:    {Start: "09:00", End: "12:00"},
		domain.Wednesday: {Start: "18:00", End: "09:00"},
		domain.Sunday:    {Closed: true},
	})
	service := db.SeedService(t, salon.ID, "Haircut", duration, 1500)

	settings := settingsService.NewService(
		settingsRepo.NewRepository(db.DB, db.Builder),
		salonRepo.NewRepository(db.DB, db.Builder),
		domain.BookingSettings{SlotStepMinutes: 30},
		logger.Nop(),
	)

	metrics := &countingMetrics{}
	uc := NewUseCase(
		appointmentRepo.NewRepository(db.DB, db.Builder),
		salonRepo.NewRepository(db.DB, db.Builder),
		settings,
		availability.DefaultPolicy(),
		metrics,
		logger.Nop(),
	).WithTimeProvider(fixedTime{now})

	return &fixture{db: db, uc: uc, metrics: metrics, salon: salon, service: service}
}

func date(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func (f *fixture) request(t *testing.T, day string) *Request {
	return &Request{SalonID: f.salon.ID, ServiceID: f.service.ID, Date: date(t, day)}
}

var sundayBefore = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestExecuteMondayExample(t *testing.T) {
	f := newFixture(t, sundayBefore, 30)
	f.db.SeedAppointment(t, &domain.Appointment{
		SalonID:         f.salon.ID,
		BookingDate:     date(t, "2026-03-02"),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	})

	resp, err := f.uc.Execute(context.Background(), f.request(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "11:00", "11:30"}, resp.Slots)
	assert.False(t, resp.HoursDefaulted)
	assert.False(t, resp.Closed)
	assert.Equal(t, 30, resp.StepMinutes)
	require.NotNil(t, resp.CloseTime)
	assert.Equal(t, types.TimeString("12:00"), *resp.CloseTime)
}

func TestExecuteIgnoresCancelledAppointments(t *testing.T) {
	f := newFixture(t, sundayBefore, 60)
	f.db.SeedAppointment(t, &domain.Appointment{
		SalonID:         f.salon.ID,
		BookingDate:     date(t, "2026-03-02"),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusCancelled,
	})

	resp, err := f.uc.Execute(context.Background(), f.request(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}, resp.Slots)
}

func TestExecuteClosedDay(t *testing.T) {
	f := newFixture(t, sundayBefore, 30)

	resp, err := f.uc.Execute(context.Background(), f.request(t, "2026-03-08"))
	require.NoError(t, err)
	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecuteDefaultedHours(t *testing.T) {
	f := newFixture(t, sundayBefore, 30)

	resp, err := f.uc.Execute(context.Background(), f.request(t, "2026-03-03"))
	require.NoError(t, err)
	assert.True(t, resp.HoursDefaulted)
	assert.Equal(t, 1, f.metrics.defaulted)
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[len(resp.Slots)-1])
}

func TestExecuteInvalidHours(t *testing.T) {
	f := newFixture(t, sundayBefore, 30)

	_, err := f.uc.Execute(context.Background(), f.request(t, "2026-03-04"))
	assert.ErrorIs(t, err, ErrInvalidTimeValue)
}

func TestExecuteTodayRespectsNotice(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 40, 0, 0, time.UTC)
	f := newFixture(t, now, 30)

	resp, err := f.uc.Execute(context.Background(), f.request(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "10:30", "11:00", "11:30"}, resp.Slots)
}

func TestExecuteDateValidation(t *testing.T) {
	f := newFixture(t, sundayBefore, 30)

	_, err := f.uc.Execute(context.Background(), f.request(t, "2026-02-28"))
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.withAdvanceLimit(t, 14).Execute(context.Background(), f.request(t, "2026-04-20"))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

// withAdvanceLimit сохраняет горизонт записи для салона фикстуры
func (f *fixture) withAdvanceLimit(t *testing.T, days int) *UseCase {
	t.Helper()
	_, err := settingsRepo.NewRepository(f.db.DB, f.db.Builder).Upsert(context.Background(), &domain.BookingSettings{
		SalonID:            f.salon.ID,
		SlotStepMinutes:    30,
		AdvanceBookingDays: days,
	})
	require.NoError(t, err)
	return f.uc
}

func TestExecuteNotFound(t *testing.T) {
	f := newFixture(t, sundayBefore, 30)

	_, err := f.uc.Execute(context.Background(), &Request{SalonID: uuid.New(), ServiceID: f.service.ID, Date: date(t, "2026-03-02")})
	assert.ErrorIs(t, err, ErrSalonNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{SalonID: f.salon.ID, ServiceID: uuid.New(), Date: date(t, "2026-03-02")})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteInvalidInput(t *testing.T) {
	f := newFixture(t, sundayBefore, 30)

	_, err := f.uc.Execute(context.Background(), &Request{SalonID: f.salon.ID, Date: date(t, "2026-03-02")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{SalonID: f.salon.ID, ServiceID: f.service.ID, UserID: ptr.Ptr(uuid.New())})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFilterByNotice(t *testing.T) {
	slots := []types.TimeString{"09:00", "09:30", "10:00", "10:30"}
	today := date(t, "2026-03-02")
	now := time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)

	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, filterByNotice(slots, today, now, 45))
	assert.Equal(t, []types.TimeString{"09:30", "10:00", "10:30"}, filterByNotice(slots, today, now, 0))
	assert.Equal(t, slots, filterByNotice(slots, date(t, "2026-03-03"), now, 600))
}
