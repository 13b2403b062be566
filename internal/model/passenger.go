package model

import "time"

// Passenger is the traveller named on a booking.  Email is the stable
// identity: a later booking with the same email overwrites the other
// fields in place.
//
// Fields:
//  ID             – primary key identifier.
//  FirstName      – given name.
//  LastName       – family name.
//  Email          – unique, compared as supplied.
//  Phone          – contact number.
//  PassportNumber – travel document number.
//  DateOfBirth    – calendar date, strictly in the past.
type Passenger struct {
	ID             uint64    // passengers.id
	FirstName      string    // passengers.first_name
	LastName       string    // passengers.last_name
	Email          string    // passengers.email
	Phone          string    // passengers.phone_number
	PassportNumber string    // passengers.passport_number
	DateOfBirth    time.Time // passengers.date_of_birth
}
