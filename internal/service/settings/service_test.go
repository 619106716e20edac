package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	settingsRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) Get(ctx context.Context, salonID uuid.UUID) (*domain.BookingSettings, error) {
	args := m.Called(ctx, salonID)
	if s, ok := args.Get(0).(*domain.BookingSettings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error) {
	args := m.Called(ctx, s)
	if saved, ok := args.Get(0).(*domain.BookingSettings); ok {
		return saved, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDirectory struct{ mock.Mock }

func (m *mockDirectory) GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.Salon); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

var defaults = domain.BookingSettings{
	SlotStepMinutes:         domain.DefaultSlotStepMinutes,
	AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
	MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	repo := &mockSettingsRepo{}
	svc := NewService(repo, &mockDirectory{}, defaults, logger.Nop())
	salonID := uuid.New()

	repo.On("Get", mock.Anything, salonID).Return(nil, settingsRepo.ErrSettingsNotFound)

	got, err := svc.Resolve(context.Background(), salonID)
	require.NoError(t, err)
	assert.Equal(t, salonID, got.SalonID)
	assert.Equal(t, domain.DefaultSlotStepMinutes, got.SlotStepMinutes)
}

func TestResolveRepositoryError(t *testing.T) {
	repo := &mockSettingsRepo{}
	svc := NewService(repo, &mockDirectory{}, defaults, logger.Nop())

	repo.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := svc.Resolve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGet(t *testing.T) {
	repo := &mockSettingsRepo{}
	dir := &mockDirectory{}
	svc := NewService(repo, dir, defaults, logger.Nop())
	salonID := uuid.New()

	dir.On("GetByID", mock.Anything, salonID).Return(&domain.Salon{ID: salonID}, nil)
	repo.On("Get", mock.Anything, salonID).Return(&domain.BookingSettings{
		SalonID:         salonID,
		SlotStepMinutes: 15,
		UpdatedAt:       time.Now(),
	}, nil)

	got, err := svc.Get(context.Background(), salonID)
	require.NoError(t, err)
	assert.Equal(t, 15, got.SlotStepMinutes)
	assert.False(t, got.IsDefault)
}

func TestGetSalonNotFound(t *testing.T) {
	dir := &mockDirectory{}
	svc := NewService(&mockSettingsRepo{}, dir, defaults, logger.Nop())

	dir.On("GetByID", mock.Anything, mock.Anything).Return(nil, salonRepo.ErrSalonNotFound)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestUpdate(t *testing.T) {
	ownerID := uuid.New()
	salonID := uuid.New()
	salon := &domain.Salon{ID: salonID, OwnerID: ownerID}

	t.Run("owner updates step", func(t *testing.T) {
		repo := &mockSettingsRepo{}
		dir := &mockDirectory{}
		svc := NewService(repo, dir, defaults, logger.Nop())

		dir.On("GetByID", mock.Anything, salonID).Return(salon, nil)
		repo.On("Get", mock.Anything, salonID).Return(nil, settingsRepo.ErrSettingsNotFound)
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.BookingSettings) bool {
			return s.SalonID == salonID && s.SlotStepMinutes == 30 && s.MinBookingNoticeMinutes == 0
		})).Return(&domain.BookingSettings{SalonID: salonID, SlotStepMinutes: 30, UpdatedAt: time.Now()}, nil)

		got, err := svc.Update(context.Background(), salonID, &models.UpdateSettingsRequest{
			UserID:          ownerID,
			SlotStepMinutes: ptr.Ptr(30),
		})
		require.NoError(t, err)
		assert.Equal(t, 30, got.SlotStepMinutes)
		repo.AssertExpectations(t)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		repo := &mockSettingsRepo{}
		dir := &mockDirectory{}
		svc := NewService(repo, dir, defaults, logger.Nop())

		dir.On("GetByID", mock.Anything, salonID).Return(salon, nil)

		_, err := svc.Update(context.Background(), salonID, &models.UpdateSettingsRequest{
			UserID:          uuid.New(),
			SlotStepMinutes: ptr.Ptr(30),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("invalid step", func(t *testing.T) {
		repo := &mockSettingsRepo{}
		dir := &mockDirectory{}
		svc := NewService(repo, dir, defaults, logger.Nop())

		dir.On("GetByID", mock.Anything, salonID).Return(salon, nil)
		repo.On("Get", mock.Anything, salonID).Return(nil, settingsRepo.ErrSettingsNotFound)

		_, err := svc.Update(context.Background(), salonID, &models.UpdateSettingsRequest{
			UserID:          ownerID,
			SlotStepMinutes: ptr.Ptr(0),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
