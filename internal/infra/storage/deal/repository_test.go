package deal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func seedDeal(t *testing.T, db *storagetest.DB, salonID uuid.UUID, date string) *domain.Deal {
	t.Helper()
	d, err := types.ParseDate(date)
	require.NoError(t, err)

	return db.SeedDeal(t, &domain.Deal{
		SalonID:         salonID,
		ServiceName:     "Manicure",
		OriginalPrice:   2000,
		DiscountPrice:   1200,
		DealDate:        d,
		StartTime:       "15:00",
		DurationMinutes: 45,
	})
}

func TestGetByID(t *testing.T) {
	db := storagetest.NewSQLite(t)
	repo := NewRepository(db.DB, db.Builder)
	salon := db.SeedSalon(t, nil)
	seeded := seedDeal(t, db, salon.ID, "2026-03-02")

	got, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, domain.DealActive, got.Status)
	assert.Equal(t, types.TimeString("15:00"), got.StartTime)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.InDelta(t, 1200, got.DiscountPrice, 0.001)
	assert.Nil(t, got.ClaimedBy)

	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDealNotFound)
}

func TestClaimAndRelease(t *testing.T) {
	db := storagetest.NewSQLite(t)
	repo := NewRepository(db.DB, db.Builder)
	salon := db.SeedSalon(t, nil)
	seeded := seedDeal(t, db, salon.ID, "2026-03-02")
	ctx := context.Background()

	user := uuid.New()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.ClaimIfActive(ctx, seeded.ID, &user, at))

	got, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DealClaimed, got.Status)
	require.NotNil(t, got.ClaimedBy)
	assert.Equal(t, user, *got.ClaimedBy)
	require.NotNil(t, got.ClaimedAt)

	assert.ErrorIs(t, repo.ClaimIfActive(ctx, seeded.ID, ptr.Ptr(uuid.New()), at), ErrDealNotActive)

	require.NoError(t, repo.Release(ctx, seeded.ID))
	got, err = repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DealActive, got.Status)
	assert.Nil(t, got.ClaimedBy)
	assert.Nil(t, got.ClaimedAt)

	assert.ErrorIs(t, repo.Release(ctx, seeded.ID), ErrDealNotFound)
}

func TestClaimIfActiveExactlyOnce(t *testing.T) {
	db := storagetest.NewSQLite(t)
	repo := NewRepository(db.DB, db.Builder)
	salon := db.SeedSalon(t, nil)
	seeded := seedDeal(t, db, salon.ID, "2026-03-02")

	const claimers = 8
	var wg sync.WaitGroup
	results := make(chan error, claimers)
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.ClaimIfActive(context.Background(), seeded.ID, ptr.Ptr(uuid.New()), time.Now().UTC())
		}()
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		if err == nil {
			won++
			continue
		}
		assert.ErrorIs(t, err, ErrDealNotActive)
		lost++
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, claimers-1, lost)
}

func TestListActive(t *testing.T) {
	db := storagetest.NewSQLite(t)
	repo := NewRepository(db.DB, db.Builder)
	salon := db.SeedSalon(t, nil)
	ctx := context.Background()

	seedDeal(t, db, salon.ID, "2026-03-01")
	later := seedDeal(t, db, salon.ID, "2026-03-05")
	claimed := seedDeal(t, db, salon.ID, "2026-03-04")
	require.NoError(t, repo.ClaimIfActive(ctx, claimed.ID, nil, time.Now().UTC()))

	all, err := repo.ListActive(ctx, salon.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	from, err := types.ParseDate("2026-03-02")
	require.NoError(t, err)
	upcoming, err := repo.ListActive(ctx, salon.ID, &from)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, later.ID, upcoming[0].ID)
}
