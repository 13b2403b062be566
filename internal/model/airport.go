package model

// Airport is a departure or arrival point identified by its IATA code.
//
// Fields:
//  ID       – primary key identifier.
//  IATACode – three uppercase letters, unique (e.g. BUD).
//  Name     – airport name.
//  City     – city served.
//  Country  – country of the city.
type Airport struct {
	ID       uint64 // airports.id
	IATACode string // airports.iata_code
	Name     string // airports.name
	City     string // airports.city
	Country  string // airports.country
}
