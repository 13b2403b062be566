package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/flight-booking/internal/model"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a string in %s format", DateLayout)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date %q is not in %s format", s, DateLayout)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// amount renders a decimal as a JSON number with two fraction digits.
func amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// estimate renders a display price with at least two fraction digits
// and without rounding away any that are significant.
func estimate(d decimal.Decimal) json.Number {
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
		return json.Number(s)
	}
	return amount(d)
}

// SearchRequest is the body of POST /api/flights/search.  DepartureDate
// is a calendar day in the configured search time zone.
type SearchRequest struct {
	DepartureAirportCode string           `json:"departureAirportCode" validate:"required,len=3"`
	ArrivalAirportCode   string           `json:"arrivalAirportCode" validate:"required,len=3"`
	DepartureDate        Date             `json:"departureDate" validate:"required,future_date"`
	Passengers           int              `json:"passengers" validate:"min=1,max=9"`
	SeatClass            model.CabinClass `json:"seatClass,omitempty" validate:"omitempty,oneof=ECONOMY BUSINESS FIRST"`
}

// PassengerDetails identifies the traveller of a new booking.
type PassengerDetails struct {
	FirstName      string `json:"firstName" validate:"required,notblank"`
	LastName       string `json:"lastName" validate:"required,notblank"`
	Email          string `json:"email" validate:"required,notblank,email"`
	PhoneNumber    string `json:"phoneNumber" validate:"required,notblank"`
	PassportNumber string `json:"passportNumber" validate:"required,notblank"`
	DateOfBirth    Date   `json:"dateOfBirth" validate:"required,past_date"`
}

// CreateBookingInput is the body of POST /api/bookings.
type CreateBookingInput struct {
	FlightID         uint64           `json:"flightId" validate:"required"`
	SeatNumber       string           `json:"seatNumber" validate:"required,notblank"`
	PassengerDetails PassengerDetails `json:"passengerDetails" validate:"required"`
}

type AirportDTO struct {
	IATACode string `json:"iataCode"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

func airportDTO(a model.Airport) AirportDTO {
	return AirportDTO{IATACode: a.IATACode, Name: a.Name, City: a.City, Country: a.Country}
}

// FlightResponse describes a flight with live seat counts and display
// prices.  Prices only apply the class multiplier; the booked fare may
// differ.
type FlightResponse struct {
	ID               uint64                           `json:"id"`
	FlightNumber     string                           `json:"flightNumber"`
	DepartureAirport AirportDTO                       `json:"departureAirport"`
	ArrivalAirport   AirportDTO                       `json:"arrivalAirport"`
	DepartureTime    time.Time                        `json:"departureTime"`
	ArrivalTime      time.Time                        `json:"arrivalTime"`
	Status           model.FlightStatus               `json:"status"`
	AvailableSeats   map[model.CabinClass]int         `json:"availableSeats"`
	Prices           map[model.CabinClass]json.Number `json:"prices"`
}

type SeatDTO struct {
	ID          uint64           `json:"id"`
	SeatNumber  string           `json:"seatNumber"`
	SeatClass   model.CabinClass `json:"seatClass"`
	IsAvailable bool             `json:"isAvailable"`
	Price       json.Number      `json:"price"`
}

func seatDTO(s model.Seat) SeatDTO {
	return SeatDTO{ID: s.ID, SeatNumber: s.SeatNumber, SeatClass: s.Class, IsAvailable: s.Available, Price: amount(s.Price)}
}

type PassengerDTO struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	PassportNumber string `json:"passportNumber"`
	DateOfBirth    Date   `json:"dateOfBirth"`
}

func passengerDTO(p model.Passenger) PassengerDTO {
	return PassengerDTO{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		PhoneNumber:    p.Phone,
		PassportNumber: p.PassportNumber,
		DateOfBirth:    NewDate(p.DateOfBirth),
	}
}

type BookingResponse struct {
	BookingReference string              `json:"bookingReference"`
	Flight           FlightResponse      `json:"flight"`
	Passenger        PassengerDTO        `json:"passenger"`
	SeatNumber       string              `json:"seatNumber"`
	SeatClass        model.CabinClass    `json:"seatClass"`
	TotalPrice       json.Number         `json:"totalPrice"`
	Status           model.BookingStatus `json:"status"`
	BookingDate      time.Time           `json:"bookingDate"`
}
