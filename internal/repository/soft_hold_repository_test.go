package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentiva/slot-reservation/internal/model"
)

var repoNow = time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC)

func holdFixture() *model.SoftHold {
	return &model.SoftHold{
		ID:                "b9ab6c4e-4f4e-4a86-a9c4-6f27e0f6a001",
		SessionID:         "S1",
		UnitID:            11,
		DeliveryCrewID:    21,
		PickupCrewID:      21,
		DeliveryVehicleID: 31,
		PickupVehicleID:   31,
		ServiceStart:      time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC),
		ServiceEnd:        time.Date(2025, 7, 10, 16, 0, 0, 0, time.UTC),
		DeliveryLegStart:  time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC),
		DeliveryLegEnd:    time.Date(2025, 7, 10, 16, 0, 0, 0, time.UTC),
		PickupLegStart:    time.Date(2025, 7, 10, 16, 0, 0, 0, time.UTC),
		PickupLegEnd:      time.Date(2025, 7, 10, 18, 30, 0, 0, time.UTC),
		ExpiresAt:         repoNow.Add(5 * time.Minute),
	}
}

func TestSoftHoldActiveBySessionMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM soft_holds WHERE session_id").
		WithArgs("S1", repoNow).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h, err := NewSoftHoldRepo(db).ActiveBySession(context.Background(), "S1", repoNow)
	require.NoError(t, err)
	assert.Nil(t, h, "no rows means no hold, not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftHoldUpsertTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := holdFixture()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO soft_holds").
		WithArgs(
			h.ID, h.SessionID, h.UnitID, h.DeliveryCrewID, h.PickupCrewID,
			h.DeliveryVehicleID, h.PickupVehicleID, h.ServiceStart, h.ServiceEnd,
			h.DeliveryLegStart, h.DeliveryLegEnd, h.PickupLegStart, h.PickupLegEnd,
			h.ExpiresAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, NewSoftHoldRepo(db).UpsertTx(context.Background(), tx, h))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftHoldUpsertTxRefreshAdoptsNewID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The duplicate-key update list must rewrite id, so the row a refresh
	// leaves behind carries the ID returned to the caller.
	h := holdFixture()
	mock.ExpectBegin()
	mock.ExpectExec(`ON DUPLICATE KEY UPDATE id = VALUES\(id\)`).
		WithArgs(
			h.ID, h.SessionID, h.UnitID, h.DeliveryCrewID, h.PickupCrewID,
			h.DeliveryVehicleID, h.PickupVehicleID, h.ServiceStart, h.ServiceEnd,
			h.DeliveryLegStart, h.DeliveryLegEnd, h.PickupLegStart, h.PickupLegEnd,
			h.ExpiresAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, NewSoftHoldRepo(db).UpsertTx(context.Background(), tx, h))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftHoldDeleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM soft_holds WHERE expires_at").
		WithArgs(repoNow).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewSoftHoldRepo(db).DeleteExpired(context.Background(), repoNow)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftHoldDeleteBySessionNoRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM soft_holds WHERE session_id").
		WithArgs("S9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := NewSoftHoldRepo(db).DeleteBySession(context.Background(), "S9")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftHoldCountUnitConflictsTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 10, 18, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	// Overlap predicate binds end against service_start and start against
	// pickup_leg_end; the session's own hold is excluded.
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM soft_holds`).
		WithArgs(uint64(11), "S1", repoNow, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	n, err := NewSoftHoldRepo(db).CountUnitConflictsTx(context.Background(), tx, 11, start, end, "S1", repoNow)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftHoldCountResourceConflictsTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 7, 10, 16, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 10, 18, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM soft_holds`).
		WithArgs(
			"S1", repoNow,
			uint64(31), uint64(31), end, start,
			uint64(31), uint64(31), end, start,
		).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	n, err := NewSoftHoldRepo(db).CountResourceConflictsTx(context.Background(), tx, 31, start, end, "S1", repoNow)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
