package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotel-booking/pkg/utils"
)

func TestWithinTransaction_Commits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rooms").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	tr := NewTransactor(mock, zap.NewNop())
	err = tr.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, err := Conn(ctx, mock).Exec(ctx, "UPDATE rooms SET availability = false")
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransaction_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	want := errors.New("room taken")
	tr := NewTransactor(mock, zap.NewNop())
	err = tr.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return want
	})

	require.ErrorIs(t, err, want)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransaction_NestedReusesOuter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	tr := NewTransactor(mock, zap.NewNop())
	calls := 0
	err = tr.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return tr.WithinTransaction(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConn_FallsBackToPool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.Equal(t, Querier(mock), Conn(context.Background(), mock))
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "bookings_room_confirmed_key"}
	wrapped := fmt.Errorf("insert booking: %w", pgErr)

	assert.True(t, IsUniqueViolation(wrapped, "bookings_room_confirmed_key"))
	assert.True(t, IsUniqueViolation(wrapped, ""))
	assert.False(t, IsUniqueViolation(wrapped, "users_email_key"))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
}

func TestConnString(t *testing.T) {
	got := ConnString(utils.DatabaseConfig{Host: "db", Name: "hotels", User: "app", Password: "secret"})
	assert.Equal(t, "user=app password=secret dbname=hotels sslmode=disable host=db port=5432", got)
}
