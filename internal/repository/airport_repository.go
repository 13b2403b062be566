package repository // repository defines data access for airports and aircraft

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/flight-booking/internal/model"
)

const airportColumns = `id, iata_code, name, city, country`

func scanAirport(row interface{ Scan(...any) error }) (model.Airport, error) {
	var a model.Airport
	err := row.Scan(&a.ID, &a.IATACode, &a.Name, &a.City, &a.Country)
	return a, err
}

// ListAirports returns every airport ordered by IATA code.
func (q *Queries) ListAirports(ctx context.Context) ([]model.Airport, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+airportColumns+` FROM airports ORDER BY iata_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Airport
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetAirportByID retrieves an airport by primary key.
func (q *Queries) GetAirportByID(ctx context.Context, id uint64) (model.Airport, error) {
	a, err := scanAirport(q.db.QueryRowContext(ctx,
		`SELECT `+airportColumns+` FROM airports WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAirportNotFound
	}
	return a, err
}

// GetAirportByIATA retrieves an airport by its three-letter code.
func (q *Queries) GetAirportByIATA(ctx context.Context, code string) (model.Airport, error) {
	a, err := scanAirport(q.db.QueryRowContext(ctx,
		`SELECT `+airportColumns+` FROM airports WHERE iata_code = ?`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAirportNotFound
	}
	return a, err
}

// GetAircraftByID retrieves an aircraft with its cabin layout.
func (q *Queries) GetAircraftByID(ctx context.Context, id uint64) (model.Aircraft, error) {
	const stmt = `SELECT id, model, registration_number, total_seats, economy_seats, business_seats, first_seats
	              FROM aircraft WHERE id = ?`
	var a model.Aircraft
	err := q.db.QueryRowContext(ctx, stmt, id).
		Scan(&a.ID, &a.Model, &a.Registration, &a.TotalSeats, &a.EconomySeats, &a.BusinessSeats, &a.FirstSeats)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAircraftNotFound
	}
	return a, err
}
