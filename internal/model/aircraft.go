package model

// AircraftModel is the type designation of an airframe.
type AircraftModel string

const (
	AircraftA319_100  AircraftModel = "AIRBUS_A319_100"
	AircraftA320_200  AircraftModel = "AIRBUS_A320_200"
	AircraftA320Neo   AircraftModel = "AIRBUS_A320NEO"
	AircraftA321_100  AircraftModel = "AIRBUS_A321_100"
	AircraftA321_200  AircraftModel = "AIRBUS_A321_200"
	AircraftA321Neo   AircraftModel = "AIRBUS_A321_NEO"
	AircraftA330_300  AircraftModel = "AIRBUS_A330_300"
	AircraftA340_300  AircraftModel = "AIRBUS_A340_300"
	AircraftA340_600  AircraftModel = "AIRBUS_A340_600"
	AircraftA350_900  AircraftModel = "AIRBUS_A350_900"
	AircraftA350_1000 AircraftModel = "AIRBUS_A350_1000"
	AircraftA380_800  AircraftModel = "AIRBUS_A380_800"
	AircraftB747_400  AircraftModel = "BOEING_747_400"
	AircraftB747_8I   AircraftModel = "BOEING_747_8I"
	AircraftB777_9    AircraftModel = "BOEING_777_9"
	AircraftB787_9    AircraftModel = "BOEING_787_9"
)

// Aircraft is a registered airframe with a fixed cabin layout.  The
// per-class counts always add up to TotalSeats.
//
// Fields:
//  ID            – primary key identifier.
//  Model         – airframe type.
//  Registration  – tail number, unique (e.g. HA-LXA).
//  TotalSeats    – seat capacity.
//  EconomySeats  – seats in ECONOMY.
//  BusinessSeats – seats in BUSINESS.
//  FirstSeats    – seats in FIRST.
type Aircraft struct {
	ID            uint64        // aircraft.id
	Model         AircraftModel // aircraft.model
	Registration  string        // aircraft.registration_number
	TotalSeats    int           // aircraft.total_seats
	EconomySeats  int           // aircraft.economy_seats
	BusinessSeats int           // aircraft.business_seats
	FirstSeats    int           // aircraft.first_seats
}

// SeatsFor returns the configured seat count of the given cabin.
func (a Aircraft) SeatsFor(c CabinClass) int {
	switch c {
	case CabinFirst:
		return a.FirstSeats
	case CabinBusiness:
		return a.BusinessSeats
	case CabinEconomy:
		return a.EconomySeats
	}
	return 0
}
