package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking reserves one seat on one flight for one passenger.
// Bookings start PENDING and move once to CONFIRMED or CANCELLED;
// a CONFIRMED booking may still be cancelled.
//
// Fields:
//  ID          – primary key identifier.
//  Reference   – six uppercase alphanumerics shown to the customer, unique.
//  FlightID    – booked flight.
//  PassengerID – travelling passenger.
//  SeatID      – reserved seat.
//  BookingDate – creation instant (UTC).
//  TotalPrice  – final fare, always positive.
//  Status      – lifecycle state.
type Booking struct {
	ID          uint64          // bookings.id
	Reference   string          // bookings.booking_reference
	FlightID    uint64          // bookings.flight_id
	PassengerID uint64          // bookings.passenger_id
	SeatID      uint64          // bookings.seat_id
	BookingDate time.Time       // bookings.booking_date
	TotalPrice  decimal.Decimal // bookings.total_price
	Status      BookingStatus   // bookings.status
}
