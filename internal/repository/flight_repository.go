package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/flight-booking/internal/model"
)

const flightColumns = `id, flight_number, departure_airport_id, arrival_airport_id, aircraft_id,
	departure_time, arrival_time, base_price, status`

func scanFlight(row interface{ Scan(...any) error }) (model.Flight, error) {
	var f model.Flight
	err := row.Scan(&f.ID, &f.FlightNumber, &f.DepartureAirportID, &f.ArrivalAirportID, &f.AircraftID,
		&f.DepartureTime, &f.ArrivalTime, &f.BasePrice, &f.Status)
	return f, err
}

// GetFlightByID retrieves a flight by primary key.
func (q *Queries) GetFlightByID(ctx context.Context, id uint64) (model.Flight, error) {
	f, err := scanFlight(q.db.QueryRowContext(ctx,
		`SELECT `+flightColumns+` FROM flights WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return f, ErrFlightNotFound
	}
	return f, err
}

// SearchFlights returns flights from one airport to another whose
// departure lies in the closed interval [start, end], earliest first.
func (q *Queries) SearchFlights(ctx context.Context, fromAirportID, toAirportID uint64, start, end time.Time) ([]model.Flight, error) {
	const stmt = `SELECT ` + flightColumns + `
	              FROM flights
	              WHERE departure_airport_id = ? AND arrival_airport_id = ?
	                AND departure_time BETWEEN ? AND ?
	              ORDER BY departure_time, id`
	rows, err := q.db.QueryContext(ctx, stmt, fromAirportID, toAirportID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
