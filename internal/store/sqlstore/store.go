package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"

	"banking-client/internal/errs"
	"banking-client/internal/models/history"
	"banking-client/internal/models/money"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "pgx"
)

type Store struct {
	conn    *sql.DB
	dialect Dialect
}

func NewStore(conn *sql.DB, dialect Dialect) *Store {
	return &Store{
		conn:    conn,
		dialect: dialect,
	}
}

// Open connects with the driver matching dialect and creates the tables.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Store, error) {
	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("unable open %s store: %w", dialect, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable connect %s store: %w", dialect, err)
	}

	s := NewStore(conn, dialect)

	if err := s.Bootstrap(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable bootstrap %s store: %w", dialect, err)
	}

	return s, nil
}

func (s *Store) Bootstrap(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS kv_store (
			name varchar(255) PRIMARY KEY,
			value text NOT NULL,
			updated_at timestamp NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id varchar(36) PRIMARY KEY,
			kind varchar(20) NOT NULL,
			counterparty varchar(255) NOT NULL,
			amount bigint NOT NULL,
			currency varchar(3) NOT NULL,
			idempotency_key varchar(64) NOT NULL,
			status varchar(20) NOT NULL,
			message text NOT NULL,
			created_at timestamp NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS history_idempotency_idx ON history (idempotency_key)`,
		`CREATE INDEX IF NOT EXISTS history_kind_idx ON history (kind, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("unable exec bootstrap: %w", err)
		}
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string

	row := s.conn.QueryRowContext(
		ctx,
		s.rebind(`SELECT
			value
		FROM
			kv_store
		WHERE
			name = ?`),
		key,
	)

	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errs.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("unable query: %w", err)
	}

	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.conn.ExecContext(
		ctx,
		s.rebind(`INSERT INTO kv_store
			(name, value, updated_at)
		VALUES
			(?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`),
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("unable save key '%s': %w", key, err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		_, err := s.conn.ExecContext(
			ctx,
			s.rebind(`DELETE FROM kv_store WHERE name = ?`),
			key,
		)
		if err != nil {
			return fmt.Errorf("unable delete key '%s': %w", key, err)
		}
	}

	return nil
}

func (s *Store) AddEntry(ctx context.Context, entry history.Entry) error {
	_, err := s.conn.ExecContext(
		ctx,
		s.rebind(`INSERT INTO history
			(id, kind, counterparty, amount, currency, idempotency_key, status, message, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		entry.ID, string(entry.Kind), entry.Counterparty, int64(entry.Amount), entry.Currency,
		entry.IdempotencyKey, string(entry.Status), entry.Message, entry.CreatedAt,
	)

	if isUniqueViolation(err) {
		return errs.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("unable add history entry: %w", err)
	}

	return nil
}

func (s *Store) UpdateEntryStatus(ctx context.Context, id string, status history.Status, message string) error {
	res, err := s.conn.ExecContext(
		ctx,
		s.rebind(`UPDATE history
		SET
			status = ?,
			message = ?
		WHERE
			id = ?`),
		string(status), message, id,
	)
	if err != nil {
		return fmt.Errorf("unable update history entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable update history entry: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("entry '%s' - %w", id, errs.ErrNotFound)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, kind history.Kind) ([]history.Entry, error) {
	result := make([]history.Entry, 0)

	query := `SELECT
			id,
			kind,
			counterparty,
			amount,
			currency,
			idempotency_key,
			status,
			message,
			created_at
		FROM
			history`
	args := []any{}

	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}

	query += ` ORDER BY created_at ASC`

	rows, err := s.conn.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return result, fmt.Errorf("unable query: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		var (
			entry          history.Entry
			kindValue      string
			statusValue    string
			amountInMinors int64
		)

		err = rows.Scan(&entry.ID, &kindValue, &entry.Counterparty, &amountInMinors, &entry.Currency,
			&entry.IdempotencyKey, &statusValue, &entry.Message, &entry.CreatedAt)
		if err != nil {
			return result, fmt.Errorf("unable to scan row: %w", err)
		}

		entry.Kind = history.Kind(kindValue)
		entry.Status = history.Status(statusValue)
		entry.Amount = money.Money(amountInMinors)

		result = append(result, entry)
	}

	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("cursor error: %w", err)
	}

	return result, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// rebind turns ? placeholders into $n for postgres.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}

	var b strings.Builder
	n := 0

	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
