package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// sqlRows releases the dedicated connection together with the result set.
type sqlRows struct {
	rows *sql.Rows
	conn *sql.Conn
}

func (r *sqlRows) Next() bool {
	return r.rows.Next()
}

func (r *sqlRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *sqlRows) Err() error {
	return r.rows.Err()
}

func (r *sqlRows) Close() error {
	return errors.Join(r.rows.Close(), r.conn.Close())
}

type sqlDB struct {
	db *sql.DB
}

func NewSQLDB(db *sql.DB) DB {
	return &sqlDB{db: db}
}

// QueryContext runs query on a connection taken from the pool for this query
// only. Closing the returned rows hands the connection back.
func (s *sqlDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &sqlRows{rows: rows, conn: conn}, nil
}
