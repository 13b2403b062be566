package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/flight-booking/internal/model"
	"github.com/iliyamo/flight-booking/internal/pricing"
	"github.com/iliyamo/flight-booking/internal/repository"
)

// FlightService answers flight search and lookup queries.
type FlightService struct {
	store repository.Store
	seats *SeatInventory
	loc   *time.Location
}

// NewFlightService returns a FlightService.  loc is the zone in which a
// search date names a calendar day; nil means UTC.
func NewFlightService(store repository.Store, seats *SeatInventory, loc *time.Location) *FlightService {
	if loc == nil {
		loc = time.UTC
	}
	return &FlightService{store: store, seats: seats, loc: loc}
}

// Location returns the search time zone.
func (s *FlightService) Location() *time.Location { return s.loc }

// Search lists flights between two airports departing on req's date,
// from 00:00:00 to 23:59:59 in the search zone.  Passengers and
// SeatClass are accepted for validation only and do not filter results.
func (s *FlightService) Search(ctx context.Context, req SearchRequest) ([]FlightResponse, error) {
	from, err := s.store.GetAirportByIATA(ctx, req.DepartureAirportCode)
	if err != nil {
		return nil, fail("search flights", airportNotFoundOr(err, req.DepartureAirportCode))
	}
	to, err := s.store.GetAirportByIATA(ctx, req.ArrivalAirportCode)
	if err != nil {
		return nil, fail("search flights", airportNotFoundOr(err, req.ArrivalAirportCode))
	}

	start, end := DayBounds(req.DepartureDate, s.loc)
	flights, err := s.store.SearchFlights(ctx, from.ID, to.ID, start, end)
	if err != nil {
		return nil, fail("search flights", err)
	}

	airports := map[uint64]model.Airport{from.ID: from, to.ID: to}
	out := make([]FlightResponse, 0, len(flights))
	for _, f := range flights {
		resp, err := s.project(ctx, s.store, f, airports)
		if err != nil {
			return nil, fail("search flights", err)
		}
		out = append(out, resp)
	}
	return out, nil
}

// DayBounds returns the first and last second of d's calendar day in loc.
func DayBounds(d Date, loc *time.Location) (time.Time, time.Time) {
	y, m, day := d.Date()
	start := time.Date(y, m, day, 0, 0, 0, 0, loc)
	end := time.Date(y, m, day, 23, 59, 59, 0, loc)
	return start, end
}

func (s *FlightService) GetFlightByID(ctx context.Context, id uint64) (FlightResponse, error) {
	f, err := s.store.GetFlightByID(ctx, id)
	if err != nil {
		return FlightResponse{}, fail("get flight", notFoundOr(err))
	}
	resp, err := s.project(ctx, s.store, f, nil)
	if err != nil {
		return FlightResponse{}, fail("get flight", err)
	}
	return resp, nil
}

// GetAvailableSeats lists the free seats of a flight, optionally
// restricted to one cabin.
func (s *FlightService) GetAvailableSeats(ctx context.Context, flightID uint64, class model.CabinClass) ([]SeatDTO, error) {
	if _, err := s.store.GetFlightByID(ctx, flightID); err != nil {
		return nil, fail("get available seats", notFoundOr(err))
	}
	seats, err := s.store.ListAvailableSeats(ctx, flightID, class)
	if err != nil {
		return nil, fail("get available seats", err)
	}
	out := make([]SeatDTO, 0, len(seats))
	for _, seat := range seats {
		out = append(out, seatDTO(seat))
	}
	return out, nil
}

// ListAirports returns every airport for search forms.
func (s *FlightService) ListAirports(ctx context.Context) ([]AirportDTO, error) {
	airports, err := s.store.ListAirports(ctx)
	if err != nil {
		return nil, fail("list airports", err)
	}
	out := make([]AirportDTO, 0, len(airports))
	for _, a := range airports {
		out = append(out, airportDTO(a))
	}
	return out, nil
}

// project builds the response of f using q, so callers inside a
// transaction see their own writes.  known may hold airports already
// loaded by the caller.
func (s *FlightService) project(ctx context.Context, q repository.Querier, f model.Flight, known map[uint64]model.Airport) (FlightResponse, error) {
	airport := func(id uint64) (model.Airport, error) {
		if a, ok := known[id]; ok {
			return a, nil
		}
		return q.GetAirportByID(ctx, id)
	}
	dep, err := airport(f.DepartureAirportID)
	if err != nil {
		return FlightResponse{}, err
	}
	arr, err := airport(f.ArrivalAirportID)
	if err != nil {
		return FlightResponse{}, err
	}
	counts, err := s.seats.AvailabilityByClass(ctx, q, f.ID)
	if err != nil {
		return FlightResponse{}, err
	}
	prices := make(map[model.CabinClass]json.Number, len(model.CabinClasses))
	for class, p := range pricing.DisplayPrices(f.BasePrice) {
		prices[class] = estimate(p)
	}
	return FlightResponse{
		ID:               f.ID,
		FlightNumber:     f.FlightNumber,
		DepartureAirport: airportDTO(dep),
		ArrivalAirport:   airportDTO(arr),
		DepartureTime:    f.DepartureTime.UTC(),
		ArrivalTime:      f.ArrivalTime.UTC(),
		Status:           f.Status,
		AvailableSeats:   counts,
		Prices:           prices,
	}, nil
}

// notFoundOr maps repository not-found sentinels to NotFound errors and
// returns any other error unchanged.
func notFoundOr(err error) error {
	for _, sentinel := range []error{
		repository.ErrFlightNotFound,
		repository.ErrSeatNotFound,
		repository.ErrBookingNotFound,
		repository.ErrAirportNotFound,
		repository.ErrAircraftNotFound,
		repository.ErrPassengerNotFound,
	} {
		if errors.Is(err, sentinel) {
			return NotFound(sentinel.Error())
		}
	}
	return err
}

func airportNotFoundOr(err error, code string) error {
	if errors.Is(err, repository.ErrAirportNotFound) {
		return NotFound(fmt.Sprintf("airport %s not found", code))
	}
	return err
}
