package rowwriter

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/dberrors"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
)

func TestInsertWritesRow(t *testing.T) {
	db := storagetest.NewSQLite(t)
	writer := NewWriter(db.DB, db.Builder)

	id := uuid.New()
	err := writer.Insert(context.Background(), "reviews", map[string]any{
		"id":         id,
		"rating":     4,
		"comment":    "nice",
		"created_at": time.Now().UTC(),
	})
	require.NoError(t, err)

	var rating int
	require.NoError(t, db.Raw.QueryRow(`SELECT rating FROM reviews WHERE id = ?`, id).Scan(&rating))
	assert.Equal(t, 4, rating)
}

func TestInsertClassifiesUnknownColumn(t *testing.T) {
	db := storagetest.NewSQLite(t)
	writer := NewWriter(db.DB, db.Builder)

	err := writer.Insert(context.Background(), "reviews", map[string]any{
		"id":     uuid.New(),
		"rating": 4,
		"mood":   "happy",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)

	schemaErr, ok := dberrors.AsSchemaError(err)
	require.True(t, ok)
	assert.Equal(t, "mood", schemaErr.Column)
}

func TestInsertEmptyRow(t *testing.T) {
	db := storagetest.NewSQLite(t)
	writer := NewWriter(db.DB, db.Builder)

	assert.ErrorIs(t, writer.Insert(context.Background(), "reviews", nil), ErrEmptyRow)
}

func TestInsertInsideTransactionSurvivesFailedAttempt(t *testing.T) {
	db := storagetest.NewSQLite(t)
	writer := NewWriter(db.DB, db.Builder)

	tx, err := db.DB.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	id := uuid.New()
	err = writer.Insert(ctx, "reviews", map[string]any{"id": id, "rating": 5, "mood": "happy"})
	require.Error(t, err)

	require.NoError(t, writer.Insert(ctx, "reviews", map[string]any{"id": id, "rating": 5}))
	require.NoError(t, tx.Commit())

	var count int
	require.NoError(t, db.Raw.QueryRow(`SELECT COUNT(*) FROM reviews WHERE id = ?`, id).Scan(&count))
	assert.Equal(t, 1, count)
}
