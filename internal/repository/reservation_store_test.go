package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockResourcesTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// IDs arrive unordered with duplicates; the lock must run once over
	// the deduplicated set in ascending order.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM ops_resources WHERE id IN \(\?,\?,\?\) ORDER BY id FOR UPDATE`).
		WithArgs(uint64(21), uint64(22), uint64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21).AddRow(22).AddRow(31))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, NewReservationStore(db).LockResourcesTx(context.Background(), tx, 31, 21, 22, 21, 31))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockResourcesTxMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM ops_resources WHERE id IN \(\?,\?\) ORDER BY id FOR UPDATE`).
		WithArgs(uint64(21), uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	err = NewReservationStore(db).LockResourcesTx(context.Background(), tx, 21, 99)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockResourcesTxNoIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, NewReservationStore(db).LockResourcesTx(context.Background(), tx, 0, 0))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
