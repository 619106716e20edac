package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*domain.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) GetByUserID(ctx context.Context, userID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	args := m.Called(ctx, userID, status)
	if a, ok := args.Get(0).([]*domain.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) GetBySalonWithFilter(ctx context.Context, filter domain.SalonAppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if a, ok := args.Get(0).([]*domain.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) Cancel(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockDirectory struct{ mock.Mock }

func (m *mockDirectory) GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.Salon); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type fixture struct {
	db      *storagetest.DB
	svc     *Service
	salon   *domain.Salon
	client  uuid.UUID
	booking *domain.Appointment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := storagetest.NewSQLite(t)
	salon := db.SeedSalon(t, nil)
	client := uuid.New()

	date, err := types.ParseDate("2026-03-02")
	require.NoError(t, err)
	booking := db.SeedAppointment(t, &domain.Appointment{
		SalonID:         salon.ID,
		UserID:          &client,
		ServiceName:     "Haircut",
		BookingDate:     date,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Price:           1500,
	})

	svc := NewService(
		appointmentRepo.NewRepository(db.DB, db.Builder),
		salonRepo.NewRepository(db.DB, db.Builder),
		logger.Nop(),
	).WithTimeProvider(fixedTime{time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)})

	return &fixture{db: db, svc: svc, salon: salon, client: client, booking: booking}
}

func TestCancelByClient(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelAppointmentRequest{UserID: f.client})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.Equal(t, "2026-03-01T12:00:00Z", *resp.CancelledAt)

	_, err = f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelAppointmentRequest{UserID: f.client})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancelBySalonOwner(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelAppointmentRequest{UserID: f.salon.OwnerID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestCancelByStrangerIsRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelAppointmentRequest{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrUnauthorized)

	saved, err := appointmentRepo.NewRepository(f.db.DB, f.db.Builder).GetByID(context.Background(), f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, saved.Status)
}

func TestCancelChecksAccessBeforeMutation(t *testing.T) {
	repo := &mockAppointmentRepo{}
	dir := &mockDirectory{}
	svc := NewService(repo, dir, logger.Nop())

	appointment := &domain.Appointment{
		ID:      uuid.New(),
		SalonID: uuid.New(),
		UserID:  ptr.Ptr(uuid.New()),
		Status:  domain.StatusConfirmed,
	}
	repo.On("GetByID", mock.Anything, appointment.ID).Return(appointment, nil)
	dir.On("GetByID", mock.Anything, appointment.SalonID).Return(&domain.Salon{ID: appointment.SalonID, OwnerID: uuid.New()}, nil)

	_, err := svc.Cancel(context.Background(), appointment.ID, &models.CancelAppointmentRequest{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrUnauthorized)
	repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelGuestAppointmentOnlyBySalonOwner(t *testing.T) {
	repo := &mockAppointmentRepo{}
	dir := &mockDirectory{}
	svc := NewService(repo, dir, logger.Nop())

	guest := &domain.Appointment{ID: uuid.New(), SalonID: uuid.New(), Status: domain.StatusPending}
	repo.On("GetByID", mock.Anything, guest.ID).Return(guest, nil)
	dir.On("GetByID", mock.Anything, guest.SalonID).Return(&domain.Salon{ID: guest.SalonID, OwnerID: uuid.New()}, nil)

	_, err := svc.Cancel(context.Background(), guest.ID, &models.CancelAppointmentRequest{UserID: uuid.Nil})
	assert.ErrorIs(t, err, ErrUnauthorized)
	repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), uuid.New(), &models.CancelAppointmentRequest{UserID: f.client})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetByID(context.Background(), f.booking.ID, f.client)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)

	_, err = f.svc.GetByID(context.Background(), f.booking.ID, f.salon.OwnerID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), f.booking.ID, uuid.New())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetUserAppointments(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{UserID: f.client})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, f.booking.ID, resp.Appointments[0].ID)

	resp, err = f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: f.client,
		Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Appointments)

	_, err = f.svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID: f.client,
		Status: ptr.Ptr("cancelled_by_user"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSalonAppointments(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
		UserID:  f.salon.OwnerID,
		SalonID: f.salon.ID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = f.svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
		UserID:  f.client,
		SalonID: f.salon.ID,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)

	from, _ := types.ParseDate("2026-03-05")
	to, _ := types.ParseDate("2026-03-01")
	_, err = f.svc.GetSalonAppointments(context.Background(), &models.GetSalonAppointmentsRequest{
		UserID:    f.salon.OwnerID,
		SalonID:   f.salon.ID,
		StartDate: &from,
		EndDate:   &to,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
