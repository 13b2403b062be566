package service

import (
	"context"
	"errors"

	"github.com/iliyamo/flight-booking/internal/model"
	"github.com/iliyamo/flight-booking/internal/repository"
)

// PassengerRegistry upserts passengers keyed by email.
type PassengerRegistry struct{}

func NewPassengerRegistry() *PassengerRegistry { return &PassengerRegistry{} }

// Upsert overwrites the passenger registered under d.Email, or inserts a
// new one.  The email is matched exactly as supplied.  When a concurrent
// transaction inserts the same email first, the row it created is
// updated instead.
func (r *PassengerRegistry) Upsert(ctx context.Context, q repository.Querier, d PassengerDetails) (model.Passenger, error) {
	p, err := q.GetPassengerByEmailForUpdate(ctx, d.Email)
	switch {
	case err == nil:
		return r.overwrite(ctx, q, p, d)
	case !errors.Is(err, repository.ErrPassengerNotFound):
		return model.Passenger{}, err
	}

	p = model.Passenger{Email: d.Email}
	apply(&p, d)
	err = q.InsertPassenger(ctx, &p)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		existing, err := q.GetPassengerByEmailForUpdate(ctx, d.Email)
		if err != nil {
			return model.Passenger{}, err
		}
		return r.overwrite(ctx, q, existing, d)
	}
	if err != nil {
		return model.Passenger{}, err
	}
	return p, nil
}

func (r *PassengerRegistry) overwrite(ctx context.Context, q repository.Querier, p model.Passenger, d PassengerDetails) (model.Passenger, error) {
	apply(&p, d)
	if err := q.UpdatePassenger(ctx, p); err != nil {
		return model.Passenger{}, err
	}
	return p, nil
}

func apply(p *model.Passenger, d PassengerDetails) {
	p.FirstName = d.FirstName
	p.LastName = d.LastName
	p.Phone = d.PhoneNumber
	p.PassportNumber = d.PassportNumber
	p.DateOfBirth = d.DateOfBirth.Time
}
