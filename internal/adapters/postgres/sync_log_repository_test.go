package postgres_adapter

import (
	"context"
	"errors"
	"listing-bff/internal/core/domain"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresSyncLogRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo, err := NewPostgresSyncLogRepository(mock)
	require.NoError(t, err)
	return repo, mock
}

func sampleEntry() domain.SyncEntry {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return domain.NewSyncEntry("sid", "7", "u@example.com", true, now)
}

func TestRecord(t *testing.T) {
	repo, mock := newMockRepo(t)
	entry := sampleEntry()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorite_sync_log")).
		WithArgs(entry.ID, "sid", "7", "u@example.com", "add", "pending", "", entry.CreatedAt, entry.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Record(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestRecord_DuplicateIsSuccess(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorite_sync_log")).
		WithArgs(anyArgs(9)...).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	assert.NoError(t, repo.Record(context.Background(), sampleEntry()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_Error(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorite_sync_log")).
		WithArgs(anyArgs(9)...).
		WillReturnError(errors.New("connection reset"))

	err := repo.Record(context.Background(), sampleEntry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAndMarkFailed(t *testing.T) {
	repo, mock := newMockRepo(t)
	fixed := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	entry := sampleEntry()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorite_sync_log WHERE id = $1")).
		WithArgs(entry.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE favorite_sync_log SET status = $2")).
		WithArgs(entry.ID, "failed", "backend down", fixed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE favorite_sync_log SET status = $2")).
		WithArgs(entry.ID, "failed", "again", fixed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.Resolve(context.Background(), entry))
	require.NoError(t, repo.MarkFailed(context.Background(), entry, "backend down"))
	assert.ErrorIs(t, repo.MarkFailed(context.Background(), entry, "again"), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySession(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"id", "session_id", "listing_id", "email", "action", "status", "error", "created_at", "updated_at"}).
		AddRow(id.String(), "sid", "7", "u@example.com", "remove", "failed", "boom", created, created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM favorite_sync_log WHERE session_id = $1")).
		WithArgs("sid").
		WillReturnRows(rows)

	entries, err := repo.ListBySession(context.Background(), "sid")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, domain.FavoriteRemove, entries[0].Action)
	assert.Equal(t, domain.SyncFailed, entries[0].Status)
	assert.Equal(t, "boom", entries[0].Error)
}

func TestClearFailed(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorite_sync_log WHERE session_id = $1 AND status = $2")).
		WithArgs("sid", "failed").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.ClearFailed(context.Background(), "sid")

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRunMigrations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM schema_migrations")).
		WithArgs("0001_favorite_sync_log").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS favorite_sync_log")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations")).
		WithArgs("0001_favorite_sync_log").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, RunMigrations(context.Background(), mock, noopTestLogger{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_SkipsApplied(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM schema_migrations")).
		WithArgs("0001_favorite_sync_log").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	require.NoError(t, RunMigrations(context.Background(), mock, noopTestLogger{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
