package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlightStatus tracks the operational state of a flight.
type FlightStatus string

const (
	FlightScheduled FlightStatus = "SCHEDULED"
	FlightBoarding  FlightStatus = "BOARDING"
	FlightDeparted  FlightStatus = "DEPARTED"
	FlightArrived   FlightStatus = "ARRIVED"
	FlightCancelled FlightStatus = "CANCELLED"
	FlightDelayed   FlightStatus = "DELAYED"
)

// Flight is a single scheduled leg between two airports.  Related
// airports and aircraft are referenced by id and joined at query time.
//
// Fields:
//  ID                 – primary key identifier.
//  FlightNumber       – public flight number, unique (e.g. MA101).
//  DepartureAirportID – origin airport.
//  ArrivalAirportID   – destination airport; never equal to the origin.
//  AircraftID         – airframe operating the flight.
//  DepartureTime      – scheduled departure (UTC).
//  ArrivalTime        – scheduled arrival (UTC), after DepartureTime.
//  BasePrice          – non-negative economy fare before modifiers.
//  Status             – operational status.
type Flight struct {
	ID                 uint64          // flights.id
	FlightNumber       string          // flights.flight_number
	DepartureAirportID uint64          // flights.departure_airport_id
	ArrivalAirportID   uint64          // flights.arrival_airport_id
	AircraftID         uint64          // flights.aircraft_id
	DepartureTime      time.Time       // flights.departure_time
	ArrivalTime        time.Time       // flights.arrival_time
	BasePrice          decimal.Decimal // flights.base_price
	Status             FlightStatus    // flights.status
}
