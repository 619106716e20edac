package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

const upsertSuffix = `ON CONFLICT (salon_id) DO UPDATE SET
	slot_step_minutes = excluded.slot_step_minutes,
	advance_booking_days = excluded.advance_booking_days,
	min_booking_notice_minutes = excluded.min_booking_notice_minutes,
	updated_at = excluded.updated_at`

// Repository репозиторий для работы с настройками бронирования салона
type Repository struct {
	db      DBExecutor
	builder psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor, builder psqlbuilder.Builder) *Repository {
	return &Repository{db: db, builder: builder}
}

// Get получает настройки салона
func (r *Repository) Get(ctx context.Context, salonID uuid.UUID) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(
		"salon_id",
		"slot_step_minutes",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"created_at",
		"updated_at",
	).
		From("booking_settings").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.BookingSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.SalonID,
		&settings.SlotStepMinutes,
		&settings.AdvanceBookingDays,
		&settings.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или обновляет настройки салона
func (r *Repository) Upsert(ctx context.Context, settings *domain.BookingSettings) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := r.builder.Insert("booking_settings").
		Columns(
			"salon_id",
			"slot_step_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
			"created_at",
			"updated_at",
		).
		Values(
			settings.SalonID,
			settings.SlotStepMinutes,
			settings.AdvanceBookingDays,
			settings.MinBookingNoticeMinutes,
			now,
			now,
		).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return r.Get(ctx, settings.SalonID)
}
