package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CabinClass selects the seat pool and price multiplier.
type CabinClass string

const (
	CabinEconomy  CabinClass = "ECONOMY"
	CabinBusiness CabinClass = "BUSINESS"
	CabinFirst    CabinClass = "FIRST"
)

// CabinClasses lists every cabin from the front of the aircraft to the back.
var CabinClasses = []CabinClass{CabinFirst, CabinBusiness, CabinEconomy}

// ParseCabinClass converts a wire value into a CabinClass.
func ParseCabinClass(s string) (CabinClass, error) {
	switch c := CabinClass(s); c {
	case CabinEconomy, CabinBusiness, CabinFirst:
		return c, nil
	}
	return "", fmt.Errorf("unknown cabin class %q", s)
}

// Seat is a sellable seat on one flight.  Available is the
// authoritative flag for whether the seat may be booked; it is false
// while a non-cancelled booking owns the seat.
//
// Fields:
//  ID         – primary key identifier.
//  FlightID   – flight the seat belongs to.
//  SeatNumber – row and letter, unique per flight (e.g. 12A).
//  Class      – cabin class.
//  Available  – whether the seat can be booked.
//  Price      – listed price of the seat.
type Seat struct {
	ID         uint64          // seats.id
	FlightID   uint64          // seats.flight_id
	SeatNumber string          // seats.seat_number
	Class      CabinClass      // seats.seat_class
	Available  bool            // seats.is_available
	Price      decimal.Decimal // seats.price
}
