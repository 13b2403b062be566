package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/flight-booking/internal/model"
	"github.com/iliyamo/flight-booking/internal/pricing"
	"github.com/iliyamo/flight-booking/internal/repository"
)

// Seat letters per row.  Premium cabins are four abreast, economy six.
const (
	premiumSeatLetters = "ABCD"
	economySeatLetters = "ABCDEF"
)

// SeatInventory reads and flips seat availability.  FindSeat,
// MarkOccupied and MarkFree take the caller's transaction so the lock
// taken by FindSeat covers the flip.
type SeatInventory struct {
	store repository.Store
}

func NewSeatInventory(store repository.Store) *SeatInventory {
	return &SeatInventory{store: store}
}

// AvailabilityByClass counts bookable seats per cabin; every cabin is
// present in the result.
func (s *SeatInventory) AvailabilityByClass(ctx context.Context, q repository.Querier, flightID uint64) (map[model.CabinClass]int, error) {
	return q.CountAvailableSeatsByClass(ctx, flightID)
}

// FindSeat returns the seat with a write lock held until the end of the
// transaction q belongs to.
func (s *SeatInventory) FindSeat(ctx context.Context, q repository.Querier, flightID uint64, seatNumber string) (model.Seat, error) {
	seat, err := q.GetSeatForUpdate(ctx, flightID, seatNumber)
	if errors.Is(err, repository.ErrSeatNotFound) {
		return seat, NotFound(fmt.Sprintf("seat %s not found on flight %d", seatNumber, flightID))
	}
	return seat, err
}

func (s *SeatInventory) MarkOccupied(ctx context.Context, q repository.Querier, seatID uint64) error {
	return q.SetSeatAvailable(ctx, seatID, false)
}

func (s *SeatInventory) MarkFree(ctx context.Context, q repository.Querier, seatID uint64) error {
	return q.SetSeatAvailable(ctx, seatID, true)
}

// ProvisionSeats creates the seat inventory of a flight from its
// aircraft's cabin layout: FIRST rows first, then BUSINESS, then
// ECONOMY, numbered continuously from row 1.  Each seat is listed at the
// flight's base price times its class multiplier.  A flight that
// already has seats is a conflict.
func (s *SeatInventory) ProvisionSeats(ctx context.Context, flightID uint64) (int, error) {
	var created int
	err := s.store.InTx(ctx, func(q repository.Querier) error {
		flight, err := q.GetFlightByID(ctx, flightID)
		if err != nil {
			return notFoundOr(err)
		}
		aircraft, err := q.GetAircraftByID(ctx, flight.AircraftID)
		if err != nil {
			return notFoundOr(err)
		}
		n, err := q.CountSeats(ctx, flightID)
		if err != nil {
			return err
		}
		if n > 0 {
			return Conflict(fmt.Sprintf("flight %d already has %d seats", flightID, n))
		}
		seats := SeatLayout(flight, aircraft)
		if err := q.InsertSeats(ctx, seats); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return Conflict(fmt.Sprintf("flight %d already has seats", flightID))
			}
			return err
		}
		created = len(seats)
		return nil
	})
	if err != nil {
		return 0, fail("provision seats", err)
	}
	return created, nil
}

// SeatLayout generates the seats of a flight from the aircraft layout.
func SeatLayout(f model.Flight, a model.Aircraft) []model.Seat {
	seats := make([]model.Seat, 0, a.FirstSeats+a.BusinessSeats+a.EconomySeats)
	row := 1
	for _, class := range model.CabinClasses {
		letters := premiumSeatLetters
		if class == model.CabinEconomy {
			letters = economySeatLetters
		}
		price := f.BasePrice.Mul(pricing.Multiplier(class)).Round(2)
		count := a.SeatsFor(class)
		for i := 0; i < count; i++ {
			seats = append(seats, model.Seat{
				FlightID:   f.ID,
				SeatNumber: fmt.Sprintf("%d%c", row, letters[i%len(letters)]),
				Class:      class,
				Available:  true,
				Price:      price,
			})
			if i%len(letters) == len(letters)-1 {
				row++
			}
		}
		if count%len(letters) != 0 {
			row++
		}
	}
	return seats
}
