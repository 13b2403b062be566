package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-booking/internal/model"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), mock
}

var seatRowColumns = []string{"id", "flight_id", "seat_number", "seat_class", "is_available", "price"}

func TestInTxCommitsOnSuccess(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM seats") + `(?s).*` + regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(uint64(7), "12A").
		WillReturnRows(sqlmock.NewRows(seatRowColumns).AddRow(3, 7, "12A", "ECONOMY", 1, "100.00"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seats SET is_available = ? WHERE id = ?")).
		WithArgs(false, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.InTx(context.Background(), func(q Querier) error {
		seat, err := q.GetSeatForUpdate(context.Background(), 7, "12A")
		if err != nil {
			return err
		}
		assert.True(t, seat.Available)
		assert.Equal(t, model.CabinEconomy, seat.Class)
		assert.Equal(t, "100.00", seat.Price.StringFixed(2))
		return q.SetSeatAvailable(context.Background(), seat.ID, false)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTxRollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(uint64(7), "99Z").
		WillReturnRows(sqlmock.NewRows(seatRowColumns))
	mock.ExpectRollback()

	err := store.InTx(context.Background(), func(q Querier) error {
		_, err := q.GetSeatForUpdate(context.Background(), 7, "99Z")
		return err
	})
	assert.ErrorIs(t, err, ErrSeatNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTxRetriesDeadlockVictim(t *testing.T) {
	store, mock := newMockStore(t)
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock; try restarting transaction"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seats")).WithArgs(false, uint64(3)).WillReturnError(deadlock)
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seats")).WithArgs(false, uint64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	calls := 0
	err := store.InTx(context.Background(), func(q Querier) error {
		calls++
		return q.SetSeatAvailable(context.Background(), 3, false)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTxGivesUpAfterRepeatedDeadlocks(t *testing.T) {
	store, mock := newMockStore(t)
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found"}
	for i := 0; i < maxTxAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE seats")).WillReturnError(deadlock)
		mock.ExpectRollback()
	}

	err := store.InTx(context.Background(), func(q Querier) error {
		return q.SetSeatAvailable(context.Background(), 3, false)
	})
	var me *mysql.MySQLError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, uint16(1213), me.Number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBookingMapsDuplicateKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want error
	}{
		{"reference", "Duplicate entry 'ABC123' for key 'bookings.uq_bookings_reference'", ErrDuplicateReference},
		{"active seat", "Duplicate entry '3' for key 'bookings.uq_bookings_active_seat'", ErrSeatTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
				WillReturnError(&mysql.MySQLError{Number: 1062, Message: tt.msg})

			b := &model.Booking{
				Reference:   "ABC123",
				FlightID:    1,
				PassengerID: 2,
				SeatID:      3,
				BookingDate: time.Now().UTC(),
				TotalPrice:  decimal.RequireFromString("85.00"),
				Status:      model.BookingPending,
			}
			err := store.InsertBooking(context.Background(), b)
			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInsertBookingPopulatesID(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs("ABC123", uint64(1), uint64(2), uint64(3), sqlmock.AnyArg(), sqlmock.AnyArg(), model.BookingPending).
		WillReturnResult(sqlmock.NewResult(42, 1))

	b := &model.Booking{Reference: "ABC123", FlightID: 1, PassengerID: 2, SeatID: 3,
		BookingDate: time.Now().UTC(), TotalPrice: decimal.NewFromInt(85), Status: model.BookingPending}
	require.NoError(t, store.InsertBooking(context.Background(), b))
	assert.Equal(t, uint64(42), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertPassengerMapsDuplicateEmail(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO passengers")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'passengers.uq_passengers_email'"})

	err := store.InsertPassenger(context.Background(), &model.Passenger{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestInsertPassengerPassesThroughOtherErrors(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO passengers")).WillReturnError(boom)

	err := store.InsertPassenger(context.Background(), &model.Passenger{Email: "a@b.c"})
	assert.ErrorIs(t, err, boom)
}

func TestCountAvailableSeatsByClassFillsMissingClasses(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY seat_class")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_class", "count"}).AddRow("ECONOMY", 120).AddRow("FIRST", 2))

	got, err := store.CountAvailableSeatsByClass(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, map[model.CabinClass]int{
		model.CabinEconomy:  120,
		model.CabinBusiness: 0,
		model.CabinFirst:    2,
	}, got)
}

func TestListAvailableSeatsFiltersByClass(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("AND seat_class = ?")).
		WithArgs(uint64(5), model.CabinBusiness).
		WillReturnRows(sqlmock.NewRows(seatRowColumns).AddRow(9, 5, "3C", "BUSINESS", 1, "250.00"))

	got, err := store.ListAvailableSeats(context.Background(), 5, model.CabinBusiness)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3C", got[0].SeatNumber)
}

func TestListAvailableSeatsReturnsEmptySlice(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM seats WHERE flight_id = ? AND is_available = TRUE ORDER BY id")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(seatRowColumns))

	got, err := store.ListAvailableSeats(context.Background(), 5, "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSetSeatAvailableUnknownSeat(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE seats")).
		WithArgs(true, uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, store.SetSeatAvailable(context.Background(), 404, true), ErrSeatNotFound)
}

func TestInsertSeatsBuildsOneStatement(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("VALUES (?, ?, ?, ?, ?),(?, ?, ?, ?, ?)")).
		WillReturnResult(sqlmock.NewResult(1, 2))

	err := store.InsertSeats(context.Background(), []model.Seat{
		{FlightID: 1, SeatNumber: "1A", Class: model.CabinFirst, Available: true, Price: decimal.NewFromInt(400)},
		{FlightID: 1, SeatNumber: "1B", Class: model.CabinFirst, Available: true, Price: decimal.NewFromInt(400)},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAirportByIATANotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM airports WHERE iata_code = ?")).
		WithArgs("XXX").
		WillReturnRows(sqlmock.NewRows([]string{"id", "iata_code", "name", "city", "country"}))

	_, err := store.GetAirportByIATA(context.Background(), "XXX")
	assert.ErrorIs(t, err, ErrAirportNotFound)
}

func TestSearchFlightsUsesUTCBounds(t *testing.T) {
	store, mock := newMockStore(t)
	loc := time.FixedZone("CET", 3600)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, loc)
	end := time.Date(2026, 3, 1, 23, 59, 59, 0, loc)
	dep := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("departure_time BETWEEN ? AND ?")).
		WithArgs(uint64(1), uint64(2), start.UTC(), end.UTC()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "flight_number", "departure_airport_id", "arrival_airport_id",
			"aircraft_id", "departure_time", "arrival_time", "base_price", "status"}).
			AddRow(10, "MA101", 1, 2, 3, dep, dep.Add(2*time.Hour), "100.00", "SCHEDULED"))

	got, err := store.SearchFlights(context.Background(), 1, 2, start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "MA101", got[0].FlightNumber)
	assert.Equal(t, model.FlightScheduled, got[0].Status)
	assert.True(t, got[0].BasePrice.Equal(decimal.NewFromInt(100)))
}
