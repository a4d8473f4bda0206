package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"assetdesk/pkg/platform/sentinel"
)

// PostgresStore persists session entries in the session_kv table.
type PostgresStore struct {
	db    *sql.DB
	clock func() time.Time
}

// PostgresStoreOption configures a PostgresStore instance.
type PostgresStoreOption func(*PostgresStore)

// WithPostgresClock sets the clock function for testability.
func WithPostgresClock(clock func() time.Time) PostgresStoreOption {
	return func(s *PostgresStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewPostgresStore(db *sql.DB, opts ...PostgresStoreOption) *PostgresStore {
	s := &PostgresStore{db: db, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_kv WHERE key = $1 AND expires_at > $2`,
		key, s.clock(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session entry: %w", err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query := `
		INSERT INTO session_kv (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			expires_at = EXCLUDED.expires_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value, s.clock().Add(ttl)); err != nil {
		return fmt.Errorf("set session entry: %w", err)
	}
	return nil
}

// Delete removes all keys in one round trip. Expired rows are removed too but
// not counted.
func (s *PostgresStore) Delete(ctx context.Context, keys ...string) (int, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	var live int
	err := s.db.QueryRowContext(ctx, `
		WITH gone AS (
			DELETE FROM session_kv WHERE key = ANY($1) RETURNING expires_at
		)
		SELECT count(*) FROM gone WHERE expires_at > $2
	`, pq.Array(keys), s.clock()).Scan(&live)
	if err != nil {
		return 0, fmt.Errorf("delete session entries: %w", err)
	}
	return live, nil
}

// PurgeExpired deletes rows whose expiry has passed.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session_kv WHERE expires_at <= $1`, s.clock())
	if err != nil {
		return 0, fmt.Errorf("purge expired session entries: %w", err)
	}
	return res.RowsAffected()
}

// Run purges expired rows every interval until ctx is done.
func (s *PostgresStore) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				logger.WarnContext(ctx, "session purge failed", "error", err)
				continue
			}
			if n > 0 {
				logger.DebugContext(ctx, "purged expired session entries", "count", n)
			}
		}
	}
}
