// Package storagetest поднимает SQLite базу с рабочей схемой для тестов репозиториев и use case'ов.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/database"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

// DB тестовая база
type DB struct {
	Raw     *sql.DB
	DB      *dbmetrics.DB
	Builder psqlbuilder.Builder
}

// NewSQLite создает файл базы во временной директории теста и применяет миграции
func NewSQLite(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	raw, dialect, err := database.Open(ctx, config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "salon.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	_, err = database.Migrate(ctx, raw, dialect)
	require.NoError(t, err)

	return &DB{
		Raw:     raw,
		DB:      dbmetrics.Wrap(raw, nil),
		Builder: psqlbuilder.New(dialect),
	}
}

// SeedSalon вставляет салон с расписанием
func (d *DB) SeedSalon(t *testing.T, hours domain.OpeningHours, methods ...domain.PaymentMethod) *domain.Salon {
	t.Helper()

	salon := &domain.Salon{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Name:         "Test salon",
		OpeningHours: hours,
	}
	if len(methods) > 0 {
		salon.PaymentMethods = methods
	}

	now := time.Now().UTC()
	_, err := d.Raw.Exec(
		`INSERT INTO salons (id, owner_id, name, opening_hours, payment_methods, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		salon.ID, salon.OwnerID, salon.Name, salon.OpeningHours, salon.PaymentMethods, now, now,
	)
	require.NoError(t, err)
	return salon
}

// SeedService вставляет услугу салона
func (d *DB) SeedService(t *testing.T, salonID uuid.UUID, name string, duration int, price float64) *domain.Service {
	t.Helper()

	service := &domain.Service{
		ID:              uuid.New(),
		SalonID:         salonID,
		Name:            name,
		DurationMinutes: duration,
		Price:           price,
	}

	now := time.Now().UTC()
	_, err := d.Raw.Exec(
		`INSERT INTO services (id, salon_id, name, duration_minutes, price, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		service.ID, service.SalonID, service.Name, service.DurationMinutes, service.Price, now, now,
	)
	require.NoError(t, err)
	return service
}

// SeedAppointment вставляет запись в обход use case'ов
func (d *DB) SeedAppointment(t *testing.T, appt *domain.Appointment) *domain.Appointment {
	t.Helper()

	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}
	if appt.Status == "" {
		appt.Status = domain.StatusConfirmed
	}
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	_, err := d.Raw.Exec(
		`INSERT INTO appointments (id, salon_id, user_id, service_id, deal_id, service_name, booking_date,
		 start_time, duration_minutes, price, status, payment_method, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		appt.ID, appt.SalonID, appt.UserID, appt.ServiceID, appt.DealID, appt.ServiceName, appt.BookingDate,
		appt.StartTime, appt.DurationMinutes, appt.Price, appt.Status, appt.PaymentMethod, now, now,
	)
	require.NoError(t, err)
	return appt
}

// SeedDeal вставляет активную сделку
func (d *DB) SeedDeal(t *testing.T, deal *domain.Deal) *domain.Deal {
	t.Helper()

	if deal.ID == uuid.Nil {
		deal.ID = uuid.New()
	}
	if deal.Status == "" {
		deal.Status = domain.DealActive
	}
	deal.CreatedAt = time.Now().UTC()

	_, err := d.Raw.Exec(
		`INSERT INTO deals (id, salon_id, service_id, service_name, original_price, discount_price, deal_date,
		 start_time, duration_minutes, status, staff_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		deal.ID, deal.SalonID, deal.ServiceID, deal.ServiceName, deal.OriginalPrice, deal.DiscountPrice,
		deal.DealDate, deal.StartTime, deal.DurationMinutes, deal.Status, deal.StaffID, deal.CreatedAt,
	)
	require.NoError(t, err)
	return deal
}
