package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"bookings-insights-service/internal/bookings/core/domain"
	"bookings-insights-service/internal/bookings/core/ports"

	"github.com/lib/pq"
)

// fakeResult implements sql.Result for tests.
type fakeResult struct {
	rowsAffected int64
}

func (f *fakeResult) LastInsertId() (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeResult) RowsAffected() (int64, error) {
	return f.rowsAffected, nil
}

// fakeDB implements DB interface for tests. InTx hands fn a fakeTx that
// shares ExecFn and records how the transaction ended.
type fakeDB struct {
	ExecFn     func(ctx context.Context, query string, args ...any) (sql.Result, error)
	lastQuery  string
	lastArgs   []any
	execCalled bool

	tx         *fakeTx
	committed  bool
	rolledBack bool
}

type fakeTx struct {
	db    *fakeDB
	execs int
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t.execs++
	t.db.lastQuery = query
	t.db.lastArgs = args
	if t.db.ExecFn != nil {
		return t.db.ExecFn(ctx, query, args...)
	}
	return &fakeResult{rowsAffected: 1}, nil
}

func (f *fakeDB) InTx(ctx context.Context, fn func(tx Execer) error) error {
	f.tx = &fakeTx{db: f}
	if err := fn(f.tx); err != nil {
		f.rolledBack = true
		return err
	}
	f.committed = true
	return nil
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execCalled = true
	f.lastQuery = query
	f.lastArgs = args
	if f.ExecFn != nil {
		return f.ExecFn(ctx, query, args...)
	}
	return &fakeResult{rowsAffected: 1}, nil
}

func f64(v float64) *float64 { return &v }

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------

func TestBookingRepository_InsertBooking(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO bookings") {
				t.Fatalf("unexpected query: %s", query)
			}
			if strings.Contains(query, "ON CONFLICT") {
				t.Fatalf("bookings must not be deduplicated: %s", query)
			}
			return &fakeResult{rowsAffected: 1}, nil
		},
	}

	repo := NewBookingRepository(db)

	b := &domain.Booking{
		Date:          "2024-03-23",
		Time:          " 12:29:38 ",
		BookingID:     "CNR5884300",
		BookingStatus: "Success",
		VehicleType:   "eBike",
		BookingValue:  f64(237),
		CTAT:          nil,
	}

	if err := repo.InsertBooking(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.execCalled {
		t.Fatalf("expected ExecContext to be called")
	}
	if len(db.lastArgs) != 20 {
		t.Fatalf("expected 20 args, got %d", len(db.lastArgs))
	}
	if db.lastArgs[1] != " 12:29:38 " {
		t.Fatalf("expected raw time to be stored verbatim, got %v", db.lastArgs[1])
	}
	if db.lastArgs[9] != nil {
		t.Fatalf("expected NULL c_tat, got %v", db.lastArgs[9])
	}
	if db.lastArgs[14] != 237.0 {
		t.Fatalf("expected booking_value 237, got %v", db.lastArgs[14])
	}
	if db.lastArgs[10] != nil {
		t.Fatalf("expected blank cancellation stored as NULL, got %v", db.lastArgs[10])
	}
}

// ------------------------------------------------------------
// DB ERRORS
// ------------------------------------------------------------

func TestBookingRepository_InsertBooking_Error(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, errors.New("db error")
		},
	}

	repo := NewBookingRepository(db)

	if err := repo.InsertBooking(context.Background(), &domain.Booking{Date: "2024-01-01"}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestBookingRepository_InsertBooking_MissingTable(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, &pq.Error{Code: "42P01", Message: `relation "bookings" does not exist`}
		},
	}

	repo := NewBookingRepository(db)

	err := repo.InsertBooking(context.Background(), &domain.Booking{Date: "2024-01-01"})
	if !errors.Is(err, ports.ErrSchemaNotReady) {
		t.Fatalf("expected ports.ErrSchemaNotReady, got %v", err)
	}
}

// ------------------------------------------------------------
// BATCH
// ------------------------------------------------------------

func TestBookingRepository_InsertBookings_OneTransaction(t *testing.T) {
	db := &fakeDB{}
	repo := NewBookingRepository(db)

	batch := []domain.Booking{
		{Date: "2024-01-01", BookingID: "A"},
		{Date: "2024-01-01", BookingID: "B"},
		{Date: "2024-01-01", BookingID: "C"},
	}
	if err := repo.InsertBookings(context.Background(), batch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if db.execCalled {
		t.Fatalf("expected batch rows to bypass the pool")
	}
	if db.tx == nil || db.tx.execs != 3 {
		t.Fatalf("expected 3 inserts inside the transaction")
	}
	if !db.committed || db.rolledBack {
		t.Fatalf("expected commit without rollback")
	}
	if db.lastArgs[2] != "C" {
		t.Fatalf("expected last insert for C, got %v", db.lastArgs[2])
	}
}

func TestBookingRepository_InsertBookings_RollsBackOnFailure(t *testing.T) {
	boom := errors.New("connection reset")
	calls := 0
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			calls++
			if calls == 3 {
				return nil, boom
			}
			return &fakeResult{rowsAffected: 1}, nil
		},
	}
	repo := NewBookingRepository(db)

	batch := []domain.Booking{
		{Date: "2024-01-01", BookingID: "A"},
		{Date: "2024-01-01", BookingID: "B"},
		{Date: "2024-01-01", BookingID: "C"},
		{Date: "2024-01-01", BookingID: "D"},
	}
	err := repo.InsertBookings(context.Background(), batch)
	if !errors.Is(err, boom) {
		t.Fatalf("expected row error, got %v", err)
	}
	if !strings.Contains(err.Error(), "booking 2") {
		t.Fatalf("expected failing row index in error, got %v", err)
	}
	if !db.rolledBack || db.committed {
		t.Fatalf("expected rollback without commit")
	}
	if db.tx.execs != 3 {
		t.Fatalf("expected to stop at the failing row, got %d execs", db.tx.execs)
	}
}

func TestBookingRepository_InsertBookings_MissingTable(t *testing.T) {
	db := &fakeDB{
		ExecFn: func(ctx context.Context, query string, args ...any) (sql.Result, error) {
			return nil, &pq.Error{Code: "42P01", Message: `relation "bookings" does not exist`}
		},
	}
	repo := NewBookingRepository(db)

	err := repo.InsertBookings(context.Background(), []domain.Booking{{Date: "2024-01-01"}})
	if !errors.Is(err, ports.ErrSchemaNotReady) {
		t.Fatalf("expected ports.ErrSchemaNotReady, got %v", err)
	}
	if !db.rolledBack {
		t.Fatalf("expected rollback")
	}
}

func TestBookingRepository_InsertBookings_Empty(t *testing.T) {
	db := &fakeDB{}
	repo := NewBookingRepository(db)

	if err := repo.InsertBookings(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.tx != nil {
		t.Fatalf("expected no transaction for an empty batch")
	}
}
