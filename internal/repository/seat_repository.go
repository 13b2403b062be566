package repository // repository defines data access for flight seats

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/flight-booking/internal/model"
)

const seatColumns = `id, flight_id, seat_number, seat_class, is_available, price`

func scanSeat(row interface{ Scan(...any) error }) (model.Seat, error) {
	var s model.Seat
	err := row.Scan(&s.ID, &s.FlightID, &s.SeatNumber, &s.Class, &s.Available, &s.Price)
	return s, err
}

// CountAvailableSeatsByClass returns the number of bookable seats per
// cabin.  Every cabin is present in the result, zero when it has none.
func (q *Queries) CountAvailableSeatsByClass(ctx context.Context, flightID uint64) (map[model.CabinClass]int, error) {
	const stmt = `SELECT seat_class, COUNT(*)
	              FROM seats
	              WHERE flight_id = ? AND is_available = TRUE
	              GROUP BY seat_class`
	rows, err := q.db.QueryContext(ctx, stmt, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.CabinClass]int, len(model.CabinClasses))
	for _, c := range model.CabinClasses {
		out[c] = 0
	}
	for rows.Next() {
		var (
			class model.CabinClass
			n     int
		)
		if err := rows.Scan(&class, &n); err != nil {
			return nil, err
		}
		out[class] = n
	}
	return out, rows.Err()
}

// ListAvailableSeats returns the bookable seats of a flight ordered by
// seat number.  An empty class returns seats of every cabin.
func (q *Queries) ListAvailableSeats(ctx context.Context, flightID uint64, class model.CabinClass) ([]model.Seat, error) {
	stmt := `SELECT ` + seatColumns + ` FROM seats WHERE flight_id = ? AND is_available = TRUE`
	args := []any{flightID}
	if class != "" {
		stmt += ` AND seat_class = ?`
		args = append(args, class)
	}
	stmt += ` ORDER BY id`

	rows, err := q.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Seat{}
	for rows.Next() {
		s, err := scanSeat(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountSeats returns how many seats exist on a flight, booked or not.
func (q *Queries) CountSeats(ctx context.Context, flightID uint64) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seats WHERE flight_id = ?`, flightID).Scan(&n)
	return n, err
}

// InsertSeats inserts multiple seats in a single statement.
func (q *Queries) InsertSeats(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO seats (flight_id, seat_number, seat_class, is_available, price) VALUES `)
	args := make([]any, 0, len(seats)*5)
	for i, s := range seats {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		args = append(args, s.FlightID, s.SeatNumber, s.Class, s.Available, s.Price)
	}
	_, err := q.db.ExecContext(ctx, sb.String(), args...)
	if _, dup := duplicateKey(err); dup {
		return ErrConflict
	}
	return err
}

// GetSeatByID retrieves a seat by primary key.
func (q *Queries) GetSeatByID(ctx context.Context, id uint64) (model.Seat, error) {
	s, err := scanSeat(q.db.QueryRowContext(ctx, `SELECT `+seatColumns+` FROM seats WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrSeatNotFound
	}
	return s, err
}

// GetSeatForUpdate retrieves a seat by flight and seat number and holds
// a write lock on the row until the surrounding transaction ends, so
// concurrent bookings of the same seat serialise here.
func (q *Queries) GetSeatForUpdate(ctx context.Context, flightID uint64, seatNumber string) (model.Seat, error) {
	const stmt = `SELECT ` + seatColumns + `
	              FROM seats
	              WHERE flight_id = ? AND seat_number = ?
	              FOR UPDATE`
	s, err := scanSeat(q.db.QueryRowContext(ctx, stmt, flightID, seatNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrSeatNotFound
	}
	return s, err
}

// SetSeatAvailable flips the availability flag of a seat.
func (q *Queries) SetSeatAvailable(ctx context.Context, seatID uint64, available bool) error {
	res, err := q.db.ExecContext(ctx, `UPDATE seats SET is_available = ? WHERE id = ?`, available, seatID)
	if err != nil {
		return err
	}
	return requireOneRow(res, ErrSeatNotFound)
}

// requireOneRow maps an update that matched nothing to notFound.  The
// DSN sets clientFoundRows so rows matched but left unchanged still count.
func requireOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
