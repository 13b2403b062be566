package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/flight-booking/internal/model"
)

const passengerColumns = `id, first_name, last_name, email, phone_number, passport_number, date_of_birth`

func scanPassenger(row interface{ Scan(...any) error }) (model.Passenger, error) {
	var p model.Passenger
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.PassportNumber, &p.DateOfBirth)
	return p, err
}

// GetPassengerByID retrieves a passenger by primary key.
func (q *Queries) GetPassengerByID(ctx context.Context, id uint64) (model.Passenger, error) {
	p, err := scanPassenger(q.db.QueryRowContext(ctx,
		`SELECT `+passengerColumns+` FROM passengers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrPassengerNotFound
	}
	return p, err
}

// GetPassengerByEmailForUpdate looks a passenger up by exact email and
// locks the row.  The email column uses a binary collation so the
// comparison is case-sensitive.
func (q *Queries) GetPassengerByEmailForUpdate(ctx context.Context, email string) (model.Passenger, error) {
	p, err := scanPassenger(q.db.QueryRowContext(ctx,
		`SELECT `+passengerColumns+` FROM passengers WHERE email = ? FOR UPDATE`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrPassengerNotFound
	}
	return p, err
}

// InsertPassenger creates a passenger.  On success p.ID is populated.
func (q *Queries) InsertPassenger(ctx context.Context, p *model.Passenger) error {
	const stmt = `INSERT INTO passengers (first_name, last_name, email, phone_number, passport_number, date_of_birth)
	              VALUES (?, ?, ?, ?, ?, ?)`
	res, err := q.db.ExecContext(ctx, stmt, p.FirstName, p.LastName, p.Email, p.Phone, p.PassportNumber, p.DateOfBirth)
	if err != nil {
		if _, dup := duplicateKey(err); dup {
			return ErrDuplicateEmail
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// UpdatePassenger overwrites every mutable field of the passenger
// identified by p.ID.  Email is the identity and is never changed.
func (q *Queries) UpdatePassenger(ctx context.Context, p model.Passenger) error {
	const stmt = `UPDATE passengers
	              SET first_name = ?, last_name = ?, phone_number = ?, passport_number = ?, date_of_birth = ?
	              WHERE id = ?`
	res, err := q.db.ExecContext(ctx, stmt, p.FirstName, p.LastName, p.Phone, p.PassportNumber, p.DateOfBirth, p.ID)
	if err != nil {
		return err
	}
	return requireOneRow(res, ErrPassengerNotFound)
}
