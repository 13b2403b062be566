package repository // repository defines data access for bookings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/flight-booking/internal/model"
)

const bookingColumns = `id, booking_reference, flight_id, passenger_id, seat_id, booking_date, total_price, status`

// index names from db/schema.sql
const (
	bookingReferenceIndex  = "uq_bookings_reference"
	bookingActiveSeatIndex = "uq_bookings_active_seat"
)

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.Reference, &b.FlightID, &b.PassengerID, &b.SeatID, &b.BookingDate, &b.TotalPrice, &b.Status)
	return b, err
}

// InsertBooking persists a new booking.  On success b.ID is populated.
// A clash on the reference index returns ErrDuplicateReference; a clash
// on the one-live-booking-per-seat index returns ErrSeatTaken.
func (q *Queries) InsertBooking(ctx context.Context, b *model.Booking) error {
	const stmt = `INSERT INTO bookings (booking_reference, flight_id, passenger_id, seat_id, booking_date, total_price, status)
	              VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := q.db.ExecContext(ctx, stmt,
		b.Reference, b.FlightID, b.PassengerID, b.SeatID, b.BookingDate, b.TotalPrice, b.Status)
	if err != nil {
		if msg, dup := duplicateKey(err); dup {
			switch {
			case violates(msg, bookingReferenceIndex):
				return ErrDuplicateReference
			case violates(msg, bookingActiveSeatIndex):
				return ErrSeatTaken
			}
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetBookingByReference retrieves a booking by its public reference.
func (q *Queries) GetBookingByReference(ctx context.Context, ref string) (model.Booking, error) {
	b, err := scanBooking(q.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_reference = ?`, ref))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	return b, err
}

// GetBookingByReferenceForUpdate is GetBookingByReference with a row
// write lock, so concurrent confirm and cancel of one booking serialise.
func (q *Queries) GetBookingByReferenceForUpdate(ctx context.Context, ref string) (model.Booking, error) {
	b, err := scanBooking(q.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_reference = ? FOR UPDATE`, ref))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	return b, err
}

// UpdateBookingStatus sets the status of a booking.
func (q *Queries) UpdateBookingStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	res, err := q.db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireOneRow(res, ErrBookingNotFound)
}
