package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB - часть *pgxpool.Pool, которой пользуется адаптер
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresSyncLogRepository - журнал сверки избранного в таблице favorite_sync_log.
type PostgresSyncLogRepository struct {
	db  DB
	now func() time.Time
}

// NewPostgresSyncLogRepository - конструктор.
func NewPostgresSyncLogRepository(db DB) (*PostgresSyncLogRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database pool cannot be nil")
	}
	return &PostgresSyncLogRepository{db: db, now: time.Now}, nil
}

func (r *PostgresSyncLogRepository) logger(ctx context.Context, method string, entry *domain.SyncEntry) port.LoggerPort {
	fields := port.Fields{
		"component": "PostgresSyncLogRepository",
		"method":    method,
	}
	if entry != nil {
		fields["sync_id"] = entry.ID
		fields["listing_id"] = entry.ListingID
	}
	return contextkeys.LoggerFromContext(ctx).WithFields(fields)
}

// Record сохраняет pending-запись. Повторная запись с тем же ID считается успешной.
func (r *PostgresSyncLogRepository) Record(ctx context.Context, entry domain.SyncEntry) error {
	repoLogger := r.logger(ctx, "Record", &entry)

	query := `INSERT INTO favorite_sync_log (id, session_id, listing_id, email, action, status, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.SessionID, entry.ListingID, entry.Email,
		string(entry.Action), string(entry.Status), entry.Error, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			repoLogger.Warn("Sync entry already recorded, operation considered successful.", nil)
			return nil
		}
		repoLogger.Error("Failed to record sync entry", err, port.Fields{"query": query})
		return fmt.Errorf("failed to record sync entry: %w", err)
	}

	repoLogger.Debug("Sync entry recorded.", nil)
	return nil
}

// Resolve удаляет запись после подтверждения бэкендом
func (r *PostgresSyncLogRepository) Resolve(ctx context.Context, entry domain.SyncEntry) error {
	repoLogger := r.logger(ctx, "Resolve", &entry)

	query := `DELETE FROM favorite_sync_log WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, entry.ID)
	if err != nil {
		repoLogger.Error("Failed to resolve sync entry", err, port.Fields{"query": query})
		return fmt.Errorf("failed to resolve sync entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to resolve a sync entry that did not exist.", nil)
	}
	return nil
}

// MarkFailed переводит запись в failed с текстом ошибки
func (r *PostgresSyncLogRepository) MarkFailed(ctx context.Context, entry domain.SyncEntry, reason string) error {
	repoLogger := r.logger(ctx, "MarkFailed", &entry)

	query := `UPDATE favorite_sync_log SET status = $2, error = $3, updated_at = $4 WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, entry.ID, string(domain.SyncFailed), reason, r.now().UTC())
	if err != nil {
		repoLogger.Error("Failed to mark sync entry as failed", err, port.Fields{"query": query})
		return fmt.Errorf("failed to mark sync entry as failed: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sync entry %s", domain.ErrNotFound, entry.ID)
	}
	return nil
}

// ListBySession - записи сессии от старых к новым
func (r *PostgresSyncLogRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.SyncEntry, error) {
	repoLogger := r.logger(ctx, "ListBySession", nil)

	query := `SELECT id::text, session_id, listing_id, email, action, status, error, created_at, updated_at
		FROM favorite_sync_log WHERE session_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		repoLogger.Error("Failed to query sync entries", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query sync entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.SyncEntry, 0)
	for rows.Next() {
		var (
			e                  domain.SyncEntry
			id, action, status string
		)
		if err := rows.Scan(&id, &e.SessionID, &e.ListingID, &e.Email, &action, &status, &e.Error, &e.CreatedAt, &e.UpdatedAt); err != nil {
			repoLogger.Error("Failed to scan sync entry row", err, nil)
			return nil, fmt.Errorf("failed to scan sync entry: %w", err)
		}
		parsedID, err := uuid.Parse(id)
		if err != nil {
			repoLogger.Error("Sync entry has malformed id", err, port.Fields{"raw_id": id})
			return nil, fmt.Errorf("malformed sync entry id %q: %w", id, err)
		}
		e.ID = parsedID
		e.Action = domain.FavoriteAction(action)
		e.Status = domain.SyncStatus(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during sync entries iteration", err, nil)
		return nil, fmt.Errorf("error during sync entries iteration: %w", err)
	}
	return entries, nil
}

// ClearFailed удаляет failed-записи сессии после полной перезагрузки избранного
func (r *PostgresSyncLogRepository) ClearFailed(ctx context.Context, sessionID string) (int64, error) {
	repoLogger := r.logger(ctx, "ClearFailed", nil)

	query := `DELETE FROM favorite_sync_log WHERE session_id = $1 AND status = $2`
	cmdTag, err := r.db.Exec(ctx, query, sessionID, string(domain.SyncFailed))
	if err != nil {
		repoLogger.Error("Failed to clear failed sync entries", err, port.Fields{"query": query})
		return 0, fmt.Errorf("failed to clear failed sync entries: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
