package deal

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
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var columns = []string{
	"id",
	"salon_id",
	"service_id",
	"service_name",
	"original_price",
	"discount_price",
	"deal_date",
	"start_time",
	"duration_minutes",
	"status",
	"staff_id",
	"claimed_by",
	"claimed_at",
	"created_at",
}

// Repository репозиторий для работы со сделками (горящими слотами)
type Repository struct {
	db      DBExecutor
	builder psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория сделок
func NewRepository(db DBExecutor, builder psqlbuilder.Builder) *Repository {
	return &Repository{db: db, builder: builder}
}

// GetByID получает сделку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(columns...).
		From("deals").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	deal, err := scanDeal(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan deal: %v", ErrScanRow, err)
	}

	return deal, nil
}

// ListActive получает активные сделки салона.
// Если from задан, возвращает только сделки начиная с этой даты.
func (r *Repository) ListActive(ctx context.Context, salonID uuid.UUID, from *types.Date) ([]*domain.Deal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(columns...).
		From("deals").
		Where(squirrel.Eq{"salon_id": salonID, "status": domain.DealActive}).
		OrderBy("deal_date ASC", "start_time ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"deal_date": *from})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	deals := make([]*domain.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		deals = append(deals, deal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return deals, nil
}

// ClaimIfActive атомарно переводит сделку из active в claimed.
// Возвращает ErrDealNotActive, если сделку уже забрал кто-то другой.
func (r *Repository) ClaimIfActive(ctx context.Context, id uuid.UUID, userID *uuid.UUID, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Update("deals").
		Set("status", domain.DealClaimed).
		Set("claimed_by", userID).
		Set("claimed_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.DealActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClaimIfActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ClaimIfActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ClaimIfActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDealNotActive
	}

	return nil
}

// Release возвращает забранную сделку в статус active
func (r *Repository) Release(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Update("deals").
		Set("status", domain.DealActive).
		Set("claimed_by", nil).
		Set("claimed_at", nil).
		Where(squirrel.Eq{"id": id, "status": domain.DealClaimed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDealNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (*domain.Deal, error) {
	var deal domain.Deal
	var claimedAt, createdAt sql.NullTime

	err := row.Scan(
		&deal.ID,
		&deal.SalonID,
		&deal.ServiceID,
		&deal.ServiceName,
		&deal.OriginalPrice,
		&deal.DiscountPrice,
		&deal.DealDate,
		&deal.StartTime,
		&deal.DurationMinutes,
		&deal.Status,
		&deal.StaffID,
		&deal.ClaimedBy,
		&claimedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if claimedAt.Valid {
		deal.ClaimedAt = &claimedAt.Time
	}
	deal.CreatedAt = createdAt.Time

	return &deal, nil
}
