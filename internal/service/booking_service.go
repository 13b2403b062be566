package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/flight-booking/internal/model"
	"github.com/iliyamo/flight-booking/internal/pricing"
	"github.com/iliyamo/flight-booking/internal/queue"
	"github.com/iliyamo/flight-booking/internal/repository"
	"github.com/iliyamo/flight-booking/internal/utils"
)

// maxReferenceAttempts bounds how many fresh references CreateBooking
// tries when the generated one is already taken.
const maxReferenceAttempts = 5

// publishTimeout bounds event publishing after a commit.
const publishTimeout = 5 * time.Second

const defaultPaymentMethod = "card"

// EventPublisher receives booking lifecycle events after the change has
// been committed.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// BookingService creates, confirms and cancels bookings.  Every
// operation runs in one store transaction; the seat row is locked
// before its availability is read.
type BookingService struct {
	store      repository.Store
	flights    *FlightService
	seats      *SeatInventory
	passengers *PassengerRegistry
	events     EventPublisher
	log        logrus.FieldLogger

	now          func() time.Time
	newReference func() (string, error)
}

// NewBookingService wires the booking engine.  events may be nil, in
// which case no lifecycle events are published.
func NewBookingService(store repository.Store, flights *FlightService, seats *SeatInventory,
	passengers *PassengerRegistry, events EventPublisher, log logrus.FieldLogger) *BookingService {
	return &BookingService{
		store:        store,
		flights:      flights,
		seats:        seats,
		passengers:   passengers,
		events:       events,
		log:          log.WithField("component", "booking"),
		now:          time.Now,
		newReference: utils.NewBookingReference,
	}
}

// CreateBooking reserves in.SeatNumber on in.FlightID for the passenger
// and returns the PENDING booking.  The fare is priced at the moment of
// booking.  A seat that is not available is a conflict.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (BookingResponse, error) {
	var resp BookingResponse
	err := s.store.InTx(ctx, func(q repository.Querier) error {
		flight, err := q.GetFlightByID(ctx, in.FlightID)
		if err != nil {
			return notFoundOr(err)
		}
		// booking_date has second precision.
		now := s.now().UTC().Truncate(time.Second)
		if err := bookable(flight, now); err != nil {
			return err
		}

		seat, err := s.seats.FindSeat(ctx, q, flight.ID, in.SeatNumber)
		if err != nil {
			return err
		}
		if !seat.Available {
			return Conflict("seat already booked")
		}

		passenger, err := s.passengers.Upsert(ctx, q, in.PassengerDetails)
		if err != nil {
			return err
		}

		price := pricing.Calculate(flight.BasePrice, seat.Class, now, flight.DepartureTime)
		if !price.IsPositive() {
			return Conflict("flight has no fare")
		}

		if err := s.seats.MarkOccupied(ctx, q, seat.ID); err != nil {
			return err
		}

		booking := model.Booking{
			FlightID:    flight.ID,
			PassengerID: passenger.ID,
			SeatID:      seat.ID,
			BookingDate: now,
			TotalPrice:  price,
			Status:      model.BookingPending,
		}
		if err := s.insertWithFreshReference(ctx, q, &booking); err != nil {
			return err
		}

		resp, err = s.project(ctx, q, booking, flight, passenger, seat)
		return err
	})
	if err != nil {
		return BookingResponse{}, fail("create booking", err)
	}
	s.publish(ctx, queue.EventBookingCreated, resp, "")
	return resp, nil
}

// bookable rejects flights that can no longer be sold.
func bookable(f model.Flight, now time.Time) error {
	if f.Status == model.FlightCancelled {
		return Conflict("flight is cancelled")
	}
	if !f.DepartureTime.After(now) {
		return Conflict("flight has already departed")
	}
	return nil
}

// insertWithFreshReference draws references until one is free, up to
// maxReferenceAttempts.
func (s *BookingService) insertWithFreshReference(ctx context.Context, q repository.Querier, b *model.Booking) error {
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		ref, err := s.newReference()
		if err != nil {
			return fmt.Errorf("generate reference: %w", err)
		}
		b.Reference = ref
		err = q.InsertBooking(ctx, b)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrDuplicateReference):
			s.log.WithField("attempt", attempt).Debug("booking reference collision, retrying")
			continue
		case errors.Is(err, repository.ErrSeatTaken):
			return Conflict("seat already booked")
		default:
			return err
		}
	}
	return fmt.Errorf("no free booking reference after %d attempts", maxReferenceAttempts)
}

// ConfirmBooking moves a PENDING booking to CONFIRMED.  No payment is
// recorded, so the confirmation event carries no payment method.
func (s *BookingService) ConfirmBooking(ctx context.Context, ref string) (BookingResponse, error) {
	return s.confirm(ctx, ref, "")
}

// ConfirmPayment confirms the booking once the payment provider has
// accepted the payment.  The payment method is carried on the
// confirmation event for the customer email; an unnamed method is a card.
func (s *BookingService) ConfirmPayment(ctx context.Context, ref, paymentMethod string) (BookingResponse, error) {
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}
	return s.confirm(ctx, ref, paymentMethod)
}

func (s *BookingService) confirm(ctx context.Context, ref, paymentMethod string) (BookingResponse, error) {
	resp, err := s.transition(ctx, ref, func(ctx context.Context, q repository.Querier, b *model.Booking) error {
		if b.Status != model.BookingPending {
			return Conflict(fmt.Sprintf("booking %s is %s, only PENDING bookings can be confirmed", b.Reference, b.Status))
		}
		b.Status = model.BookingConfirmed
		return q.UpdateBookingStatus(ctx, b.ID, b.Status)
	})
	if err != nil {
		return BookingResponse{}, fail("confirm booking", err)
	}
	s.publish(ctx, queue.EventBookingConfirmed, resp, paymentMethod)
	return resp, nil
}

// CancelBooking voids a PENDING or CONFIRMED booking and returns its
// seat to inventory.  Cancelling twice is a conflict and changes nothing.
func (s *BookingService) CancelBooking(ctx context.Context, ref string) (BookingResponse, error) {
	resp, err := s.transition(ctx, ref, func(ctx context.Context, q repository.Querier, b *model.Booking) error {
		if b.Status == model.BookingCancelled {
			return Conflict(fmt.Sprintf("booking %s is already cancelled", b.Reference))
		}
		if err := s.seats.MarkFree(ctx, q, b.SeatID); err != nil {
			return err
		}
		b.Status = model.BookingCancelled
		return q.UpdateBookingStatus(ctx, b.ID, b.Status)
	})
	if err != nil {
		return BookingResponse{}, fail("cancel booking", err)
	}
	s.publish(ctx, queue.EventBookingCancelled, resp, "")
	return resp, nil
}

// transition locks the booking row, applies change and projects the
// result, all in one transaction.
func (s *BookingService) transition(ctx context.Context, ref string,
	change func(ctx context.Context, q repository.Querier, b *model.Booking) error) (BookingResponse, error) {
	var resp BookingResponse
	err := s.store.InTx(ctx, func(q repository.Querier) error {
		b, err := q.GetBookingByReferenceForUpdate(ctx, ref)
		if err != nil {
			return bookingNotFoundOr(err, ref)
		}
		if err := change(ctx, q, &b); err != nil {
			return err
		}
		resp, err = s.load(ctx, q, b)
		return err
	})
	return resp, err
}

// GetBookingByReference returns the current state of a booking.
func (s *BookingService) GetBookingByReference(ctx context.Context, ref string) (BookingResponse, error) {
	b, err := s.store.GetBookingByReference(ctx, ref)
	if err != nil {
		return BookingResponse{}, fail("get booking", bookingNotFoundOr(err, ref))
	}
	resp, err := s.load(ctx, s.store, b)
	if err != nil {
		return BookingResponse{}, fail("get booking", err)
	}
	return resp, nil
}

// load fetches the flight, passenger and seat of b and projects it.
func (s *BookingService) load(ctx context.Context, q repository.Querier, b model.Booking) (BookingResponse, error) {
	flight, err := q.GetFlightByID(ctx, b.FlightID)
	if err != nil {
		return BookingResponse{}, err
	}
	passenger, err := q.GetPassengerByID(ctx, b.PassengerID)
	if err != nil {
		return BookingResponse{}, err
	}
	seat, err := q.GetSeatByID(ctx, b.SeatID)
	if err != nil {
		return BookingResponse{}, err
	}
	return s.project(ctx, q, b, flight, passenger, seat)
}

func (s *BookingService) project(ctx context.Context, q repository.Querier, b model.Booking,
	f model.Flight, p model.Passenger, seat model.Seat) (BookingResponse, error) {
	flight, err := s.flights.project(ctx, q, f, nil)
	if err != nil {
		return BookingResponse{}, err
	}
	return BookingResponse{
		BookingReference: b.Reference,
		Flight:           flight,
		Passenger:        passengerDTO(p),
		SeatNumber:       seat.SeatNumber,
		SeatClass:        seat.Class,
		TotalPrice:       amount(b.TotalPrice),
		Status:           b.Status,
		BookingDate:      b.BookingDate.UTC(),
	}, nil
}

// publish emits a lifecycle event.  The booking is already committed,
// so failures are logged and never returned.
func (s *BookingService) publish(ctx context.Context, typ queue.EventType, b BookingResponse, paymentMethod string) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	ev := queue.BookingEvent{
		Type:             typ,
		BookingReference: b.BookingReference,
		Status:           string(b.Status),
		FlightNumber:     b.Flight.FlightNumber,
		DepartureCode:    b.Flight.DepartureAirport.IATACode,
		DepartureCity:    b.Flight.DepartureAirport.City,
		ArrivalCode:      b.Flight.ArrivalAirport.IATACode,
		ArrivalCity:      b.Flight.ArrivalAirport.City,
		DepartureTime:    b.Flight.DepartureTime,
		ArrivalTime:      b.Flight.ArrivalTime,
		PassengerName:    b.Passenger.FirstName + " " + b.Passenger.LastName,
		PassengerEmail:   b.Passenger.Email,
		SeatNumber:       b.SeatNumber,
		SeatClass:        string(b.SeatClass),
		TotalPrice:       b.TotalPrice.String(),
		PaymentMethod:    paymentMethod,
		OccurredAt:       s.now().UTC(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":     typ,
			"reference": b.BookingReference,
		}).Error("publish booking event failed")
	}
}

func bookingNotFoundOr(err error, ref string) error {
	if errors.Is(err, repository.ErrBookingNotFound) {
		return NotFound(fmt.Sprintf("booking %s not found", ref))
	}
	return err
}
