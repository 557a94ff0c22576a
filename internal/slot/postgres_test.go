package slot

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgresRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresRepositoryGet(t *testing.T) {
	repo, mock := setupPostgresRepository(t)
	query := regexp.QuoteMeta("SELECT value FROM portal_slots")

	mock.ExpectQuery(query).
		WithArgs("visitor", "token").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("abc"))
	val, err := repo.Get(context.Background(), "visitor", "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", val)

	mock.ExpectQuery(query).
		WithArgs("visitor", "adminToken").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "visitor", "adminToken")
	assert.ErrorIs(t, err, ErrNotFound)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(query).
		WithArgs("visitor", "token").
		WillReturnError(dbErr)
	_, err = repo.Get(context.Background(), "visitor", "token")
	assert.ErrorIs(t, err, dbErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositorySetAndDelete(t *testing.T) {
	repo, mock := setupPostgresRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO portal_slots")).
		WithArgs("visitor", "token", "abc", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Set(context.Background(), "visitor", "token", "abc", time.Hour))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM portal_slots")).
		WithArgs("visitor", "token").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "visitor", "token"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
