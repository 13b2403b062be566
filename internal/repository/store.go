package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/flight-booking/internal/model"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by Queries.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Querier lists every statement the application runs against the store.
// Methods named ...ForUpdate take a row write lock and are only
// meaningful inside InTx.
type Querier interface {
	ListAirports(ctx context.Context) ([]model.Airport, error)
	GetAirportByID(ctx context.Context, id uint64) (model.Airport, error)
	GetAirportByIATA(ctx context.Context, code string) (model.Airport, error)

	GetAircraftByID(ctx context.Context, id uint64) (model.Aircraft, error)

	GetFlightByID(ctx context.Context, id uint64) (model.Flight, error)
	SearchFlights(ctx context.Context, fromAirportID, toAirportID uint64, start, end time.Time) ([]model.Flight, error)

	CountAvailableSeatsByClass(ctx context.Context, flightID uint64) (map[model.CabinClass]int, error)
	ListAvailableSeats(ctx context.Context, flightID uint64, class model.CabinClass) ([]model.Seat, error)
	CountSeats(ctx context.Context, flightID uint64) (int, error)
	InsertSeats(ctx context.Context, seats []model.Seat) error
	GetSeatByID(ctx context.Context, id uint64) (model.Seat, error)
	GetSeatForUpdate(ctx context.Context, flightID uint64, seatNumber string) (model.Seat, error)
	SetSeatAvailable(ctx context.Context, seatID uint64, available bool) error

	GetPassengerByID(ctx context.Context, id uint64) (model.Passenger, error)
	GetPassengerByEmailForUpdate(ctx context.Context, email string) (model.Passenger, error)
	InsertPassenger(ctx context.Context, p *model.Passenger) error
	UpdatePassenger(ctx context.Context, p model.Passenger) error

	InsertBooking(ctx context.Context, b *model.Booking) error
	GetBookingByReference(ctx context.Context, ref string) (model.Booking, error)
	GetBookingByReferenceForUpdate(ctx context.Context, ref string) (model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uint64, status model.BookingStatus) error
}

// Store is a Querier that can also run a function inside a transaction.
type Store interface {
	Querier
	InTx(ctx context.Context, fn func(q Querier) error) error
}

// Queries runs statements against a database handle or a transaction.
type Queries struct {
	db DBTX
}

// New returns Queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// SQLStore is the MySQL-backed Store.
type SQLStore struct {
	*Queries
	db *sql.DB
}

// NewStore constructs a SQLStore with the given DB handle.
func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{Queries: New(db), db: db}
}

// maxTxAttempts bounds how often InTx runs fn when MySQL picks the
// transaction as a deadlock victim.
const maxTxAttempts = 3

// InTx runs fn inside a REPEATABLE READ transaction.  The transaction
// is committed when fn returns nil and rolled back otherwise, including
// when ctx expires.  A transaction rolled back by deadlock detection is
// run again from the start, so fn must not keep state between calls
// other than its final result.
func (s *SQLStore) InTx(ctx context.Context, fn func(q Querier) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.runTx(ctx, fn)
		if !isDeadlock(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

func (s *SQLStore) runTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(New(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}
