package postgres

import (
	"context"
	"database/sql"
)

// Execer runs one statement, either on the pool or inside a transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type DB interface {
	Execer
	// InTx runs fn in a single transaction. It commits when fn returns nil
	// and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx Execer) error) error
}
